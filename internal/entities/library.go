package entities

import "time"

// BookStatus tells whether a book is on the shelf.
type BookStatus string

const (
	BookStatusAvailable BookStatus = "Available"
	BookStatusBorrowed  BookStatus = "Borrowed"
)

// Valid reports whether s is one of the enumerated book statuses.
func (s BookStatus) Valid() bool {
	return s == BookStatusAvailable || s == BookStatusBorrowed
}

// TransactionStatus is Borrowed until the book comes back.
type TransactionStatus string

const (
	TransactionStatusBorrowed TransactionStatus = "Borrowed"
	TransactionStatusReturned TransactionStatus = "Returned"
)

// DueDateLayout is the calendar date format accepted for due dates.
const DueDateLayout = "2006-01-02"

// Book is a catalog entry.
type Book struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Title    string     `gorm:"size:512;not null" json:"title"`
	Author   string     `gorm:"size:256;not null" json:"author"`
	Category string     `gorm:"size:128;not null" json:"category"`
	Status   BookStatus `gorm:"size:20;not null;default:'Available'" json:"status"`
}

func (Book) TableName() string {
	return "books"
}

// Member is a registered borrower.
type Member struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:256;not null" json:"name"`
	Email string `gorm:"size:256;not null" json:"email"`
	Phone string `gorm:"size:64;not null" json:"phone"`
}

func (Member) TableName() string {
	return "members"
}

// Transaction records one borrowing of a book by a member.
// BookID and MemberID are plain columns: deleting the referenced
// book or member leaves the reference dangling.
type Transaction struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	BookID     uint              `gorm:"index;not null" json:"book_id"`
	MemberID   uint              `gorm:"index;not null" json:"member_id"`
	IssueDate  time.Time         `gorm:"not null" json:"issue_date"`
	DueDate    time.Time         `gorm:"not null" json:"due_date"`
	ReturnDate *time.Time        `json:"return_date"`
	Status     TransactionStatus `gorm:"size:20;not null;index" json:"status"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// IsOpen reports whether the book has not been returned yet.
func (t Transaction) IsOpen() bool {
	return t.Status == TransactionStatusBorrowed
}

// TransactionView is a transaction joined with the title of its book and
// the name of its member. Both are empty when the reference is dangling.
type TransactionView struct {
	Transaction
	BookTitle  string `json:"book_title"`
	MemberName string `json:"member_name"`
}

// ReturnReceipt is the result of returning a transaction.
type ReturnReceipt struct {
	ID         uint              `json:"id"`
	Status     TransactionStatus `json:"status"`
	ReturnDate time.Time         `json:"return_date"`
}

// DashboardStats holds the counters shown on the dashboard.
type DashboardStats struct {
	TotalBooks    int `json:"total_books"`
	TotalMembers  int `json:"total_members"`
	BooksBorrowed int `json:"books_borrowed"`
}

// OverdueCutoff returns the start of now's UTC day. A borrowed book whose
// due date falls before the cutoff is overdue; one due today is not.
func OverdueCutoff(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
