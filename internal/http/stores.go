package http

import (
	"context"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/librarydesk/internal/entities"
	"github.com/mrlokans/librarydesk/internal/services"
)

// Each controller declares the slice of the library it needs;
// *services.Library satisfies all of them.

// BookService is the catalog part of the library used by handlers.
type BookService interface {
	ListBooks(ctx context.Context) []entities.Book
	FindBook(ctx context.Context, id uint) (entities.Book, bool)
	AddBook(ctx context.Context, input services.BookInput) (*entities.Book, error)
	UpdateBook(ctx context.Context, id uint, input services.BookInput) (*entities.Book, error)
	SetBookStatus(ctx context.Context, id uint, status entities.BookStatus) error
	DeleteBook(ctx context.Context, id uint) error
}

// MemberService manages members.
type MemberService interface {
	ListMembers(ctx context.Context) []entities.Member
	FindMember(ctx context.Context, id uint) (entities.Member, bool)
	AddMember(ctx context.Context, input services.MemberInput) (*entities.Member, error)
	UpdateMember(ctx context.Context, id uint, input services.MemberInput) (*entities.Member, error)
	DeleteMember(ctx context.Context, id uint) error
}

// TransactionService lends and returns books.
type TransactionService interface {
	ListTransactions(ctx context.Context) []entities.TransactionView
	ListOverdue(ctx context.Context, asOf time.Time) []entities.TransactionView
	AddTransaction(ctx context.Context, input services.TransactionInput) (*entities.Transaction, error)
	ReturnTransaction(ctx context.Context, id uint) (*entities.ReturnReceipt, error)
	BorrowBook(ctx context.Context, input services.TransactionInput) (*entities.Transaction, error)
	ReturnBook(ctx context.Context, id, bookID uint) (*entities.ReturnReceipt, error)
}

type StatsService interface {
	Stats(ctx context.Context) entities.DashboardStats
}

// LibraryService is everything the browser UI touches.
type LibraryService interface {
	BookService
	MemberService
	TransactionService
	StatsService
	AvailableBooks(ctx context.Context) []entities.Book
}

// AuditReader provides paginated access to the audit trail.
type AuditReader interface {
	GetEvents(ctx context.Context, entityType string, limit, offset int) ([]entities.AuditEvent, int64, error)
}

// TaskQueue enqueues maintenance tasks and reports on them.
type TaskQueue interface {
	Enqueue(task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// Pinger checks that the store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}
