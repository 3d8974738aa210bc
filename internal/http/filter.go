package http

import (
	"strings"

	"github.com/mrlokans/librarydesk/internal/entities"
)

// containsFold reports whether any field contains query, ignoring case.
func containsFold(query string, fields ...string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// The filters below run over a freshly fetched full listing. An empty
// query keeps everything.

func filterBooks(books []entities.Book, query string) []entities.Book {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return books
	}
	matched := []entities.Book{}
	for _, b := range books {
		if containsFold(query, b.Title, b.Author, b.Category) {
			matched = append(matched, b)
		}
	}
	return matched
}

func filterMembers(members []entities.Member, query string) []entities.Member {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return members
	}
	matched := []entities.Member{}
	for _, m := range members {
		if containsFold(query, m.Name, m.Email, m.Phone) {
			matched = append(matched, m)
		}
	}
	return matched
}

func filterTransactions(views []entities.TransactionView, query string) []entities.TransactionView {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return views
	}
	matched := []entities.TransactionView{}
	for _, v := range views {
		if containsFold(query, v.BookTitle, v.MemberName, string(v.Status)) {
			matched = append(matched, v)
		}
	}
	return matched
}
