package services

import (
	"context"
	"time"

	"github.com/mrlokans/librarydesk/internal/entities"
)

// BookStore is the books table as seen by the Library.
type BookStore interface {
	ListBooks(ctx context.Context) ([]entities.Book, error)
	CreateBook(ctx context.Context, book *entities.Book) error
	UpdateBook(ctx context.Context, book *entities.Book) (int64, error)
	UpdateBookStatus(ctx context.Context, id uint, status entities.BookStatus) (int64, error)
	DeleteBook(ctx context.Context, id uint) (int64, error)
}

// MemberStore is the members table as seen by the Library.
type MemberStore interface {
	ListMembers(ctx context.Context) ([]entities.Member, error)
	CreateMember(ctx context.Context, member *entities.Member) error
	UpdateMember(ctx context.Context, member *entities.Member) (int64, error)
	DeleteMember(ctx context.Context, id uint) (int64, error)
}

// TransactionStore is the transactions table as seen by the Library.
// BorrowBook and ReturnBook touch the books table too, in one unit of work.
type TransactionStore interface {
	ListTransactions(ctx context.Context) ([]entities.TransactionView, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]entities.TransactionView, error)
	GetTransactionByID(ctx context.Context, id uint) (*entities.Transaction, error)
	CreateTransaction(ctx context.Context, tx *entities.Transaction) error
	ReturnTransaction(ctx context.Context, id uint, returnedAt time.Time) (int64, error)
	BorrowBook(ctx context.Context, tx *entities.Transaction) error
	ReturnBook(ctx context.Context, id uint, returnedAt time.Time) (uint, error)
}

// AuditLogger records the outcome of write operations.
type AuditLogger interface {
	LogWrite(eventType entities.AuditEventType, entityType string, entityID *uint, description string, err error)
}

type nopAudit struct{}

func (nopAudit) LogWrite(entities.AuditEventType, string, *uint, string, error) {}
