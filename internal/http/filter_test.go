package http

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/librarydesk/internal/entities"
)

func bookTitles(books []entities.Book) []string {
	titles := []string{}
	for _, b := range books {
		titles = append(titles, b.Title)
	}
	return titles
}

func TestFilterBooks(t *testing.T) {
	books := []entities.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi"},
		{ID: 2, Title: "Emma", Author: "Jane Austen", Category: "Classic"},
		{ID: 3, Title: "Foundation", Author: "Isaac Asimov", Category: "Sci-Fi"},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Dune", "Emma", "Foundation"}},
		{"da", []string{"Foundation"}},
		{"DUNE", []string{"Dune"}},
		{"sci-fi", []string{"Dune", "Foundation"}},
		{"austen", []string{"Emma"}},
		{"  emma  ", []string{"Emma"}},
		{"tolkien", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, bookTitles(filterBooks(books, tt.query)))
		})
	}
}

func TestFilterMembers(t *testing.T) {
	members := []entities.Member{
		{ID: 1, Name: "Ann Lee", Email: "ann@example.com", Phone: "555-0101"},
		{ID: 2, Name: "Bob Stone", Email: "bob@example.org", Phone: "555-0202"},
	}

	assert.Len(t, filterMembers(members, "example"), 2)
	assert.Len(t, filterMembers(members, ".ORG"), 1)
	assert.Len(t, filterMembers(members, "0101"), 1)
	assert.Equal(t, "Bob Stone", filterMembers(members, "stone")[0].Name)
	assert.Empty(t, filterMembers(members, "carol"))
}

func TestFilterTransactions(t *testing.T) {
	views := []entities.TransactionView{
		{Transaction: entities.Transaction{ID: 1, Status: entities.TransactionStatusBorrowed}, BookTitle: "Dune", MemberName: "Ann"},
		{Transaction: entities.Transaction{ID: 2, Status: entities.TransactionStatusReturned}, BookTitle: "Emma", MemberName: "Bob"},
		{Transaction: entities.Transaction{ID: 3, Status: entities.TransactionStatusBorrowed}},
	}

	assert.Len(t, filterTransactions(views, "borrowed"), 2)
	assert.Len(t, filterTransactions(views, "returned"), 1)
	assert.Len(t, filterTransactions(views, "bob"), 1)
	assert.Len(t, filterTransactions(views, "dune"), 1)
	assert.Len(t, filterTransactions(views, ""), 3)
}
