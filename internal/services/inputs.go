package services

import (
	"strings"
	"time"

	"github.com/mrlokans/librarydesk/internal/entities"
	"github.com/mrlokans/librarydesk/internal/security"
)

// BookInput carries the editable fields of a book from a form or JSON body.
// An empty Status means Available when adding.
type BookInput struct {
	Title    string `form:"title" json:"title"`
	Author   string `form:"author" json:"author"`
	Category string `form:"category" json:"category"`
	Status   string `form:"status" json:"status"`
}

// MemberInput is the unvalidated member data from a form or request.
type MemberInput struct {
	Name  string `form:"name" json:"name"`
	Email string `form:"email" json:"email"`
	Phone string `form:"phone" json:"phone"`
}

// TransactionInput carries a new borrowing. DueDate is a calendar date
// in YYYY-MM-DD form.
type TransactionInput struct {
	BookID   uint   `form:"book_id" json:"book_id"`
	MemberID uint   `form:"member_id" json:"member_id"`
	DueDate  string `form:"due_date" json:"due_date"`
}

func requireText(s *security.Sanitizer, field, value string) (string, error) {
	cleaned := s.Clean(value)
	if cleaned == "" {
		return "", invalid(field, "is required")
	}
	return cleaned, nil
}

func parseBookStatus(value string, fallback entities.BookStatus) (entities.BookStatus, error) {
	value = strings.TrimSpace(value)
	if value == "" && fallback != "" {
		return fallback, nil
	}
	status := entities.BookStatus(value)
	if !status.Valid() {
		return "", invalid("status", "must be Available or Borrowed")
	}
	return status, nil
}

// book validates the input. fallback is used when no status was given;
// an empty fallback makes status mandatory.
func (in BookInput) book(s *security.Sanitizer, fallback entities.BookStatus) (entities.Book, error) {
	var (
		book entities.Book
		err  error
	)
	if book.Title, err = requireText(s, "title", in.Title); err != nil {
		return book, err
	}
	if book.Author, err = requireText(s, "author", in.Author); err != nil {
		return book, err
	}
	if book.Category, err = requireText(s, "category", in.Category); err != nil {
		return book, err
	}
	if book.Status, err = parseBookStatus(in.Status, fallback); err != nil {
		return book, err
	}
	return book, nil
}

func (in MemberInput) member(s *security.Sanitizer) (entities.Member, error) {
	var (
		member entities.Member
		err    error
	)
	if member.Name, err = requireText(s, "name", in.Name); err != nil {
		return member, err
	}
	if member.Email, err = requireText(s, "email", in.Email); err != nil {
		return member, err
	}
	if member.Phone, err = requireText(s, "phone", in.Phone); err != nil {
		return member, err
	}
	return member, nil
}

// ParseDueDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDueDate(value string) (time.Time, error) {
	due, err := time.Parse(entities.DueDateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, invalid("due_date", "must be a date in YYYY-MM-DD format")
	}
	return due, nil
}

func (in TransactionInput) transaction(issuedAt time.Time) (entities.Transaction, error) {
	if in.BookID == 0 {
		return entities.Transaction{}, invalid("book_id", "is required")
	}
	if in.MemberID == 0 {
		return entities.Transaction{}, invalid("member_id", "is required")
	}
	due, err := ParseDueDate(in.DueDate)
	if err != nil {
		return entities.Transaction{}, err
	}
	return entities.Transaction{
		BookID:    in.BookID,
		MemberID:  in.MemberID,
		IssueDate: issuedAt,
		DueDate:   due,
		Status:    entities.TransactionStatusBorrowed,
	}, nil
}
