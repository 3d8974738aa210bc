// Package transactions provides database operations for borrowing
// transactions, including the joined read used by listings and the
// single-unit borrow and return operations.
package transactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/librarydesk/internal/database"
	"github.com/mrlokans/librarydesk/internal/entities"
)

// ErrTransactionNotFound is returned by GetTransactionByID and the
// single-unit return when the transaction does not exist.
var ErrTransactionNotFound = errors.New("transaction not found")

const viewColumns = `t.id, t.book_id, t.member_id, t.issue_date, t.due_date, t.return_date, t.status,
	COALESCE(b.title, '') AS book_title, COALESCE(m.name, '') AS member_name`

// Repository provides database operations for borrowing transactions.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// viewQuery selects transactions joined with book title and member name.
// LEFT JOIN keeps rows whose book or member was deleted.
func viewQuery(conn *gorm.DB) *gorm.DB {
	return conn.Table("transactions AS t").
		Select(viewColumns).
		Joins("LEFT JOIN books AS b ON b.id = t.book_id").
		Joins("LEFT JOIN members AS m ON m.id = t.member_id")
}

// ListTransactions returns every transaction with joined fields, ordered by ID.
func (r *Repository) ListTransactions(ctx context.Context) ([]entities.TransactionView, error) {
	views := []entities.TransactionView{}
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		return viewQuery(conn).Order("t.id ASC").Scan(&views).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return views, nil
}

// ListOverdue returns borrowed transactions due before asOf, oldest due first.
func (r *Repository) ListOverdue(ctx context.Context, asOf time.Time) ([]entities.TransactionView, error) {
	views := []entities.TransactionView{}
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		return viewQuery(conn).
			Where("t.status = ? AND t.due_date < ?", entities.TransactionStatusBorrowed, asOf).
			Order("t.due_date ASC, t.id ASC").
			Scan(&views).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list overdue transactions: %w", err)
	}
	return views, nil
}

// GetTransactionByID returns ErrTransactionNotFound for an unknown ID.
func (r *Repository) GetTransactionByID(ctx context.Context, id uint) (*entities.Transaction, error) {
	var tx entities.Transaction
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		return conn.First(&tx, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return &tx, nil
}

// CreateTransaction inserts the transaction as given and sets its ID.
// The referenced book is not touched.
func (r *Repository) CreateTransaction(ctx context.Context, tx *entities.Transaction) error {
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		return conn.Create(tx).Error
	})
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ReturnTransaction marks the transaction returned at returnedAt. There is
// no check on the previous status, so repeating it re-stamps the date.
func (r *Repository) ReturnTransaction(ctx context.Context, id uint, returnedAt time.Time) (int64, error) {
	var affected int64
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		result := markReturned(conn, id, returnedAt)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, fmt.Errorf("return transaction %d: %w", id, err)
	}
	return affected, nil
}

func markReturned(conn *gorm.DB, id uint, returnedAt time.Time) *gorm.DB {
	return conn.Exec(
		`UPDATE transactions SET return_date = @return_date, status = @status WHERE id = @id`,
		map[string]any{
			"id":          id,
			"return_date": returnedAt,
			"status":      entities.TransactionStatusReturned,
		},
	)
}

func setBookStatus(conn *gorm.DB, bookID uint, status entities.BookStatus) error {
	return conn.Model(&entities.Book{}).Where("id = ?", bookID).Update("status", status).Error
}

// BorrowBook inserts the transaction and marks its book Borrowed in one
// database transaction. Either both changes are visible or neither is.
func (r *Repository) BorrowBook(ctx context.Context, tx *entities.Transaction) error {
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		return conn.Transaction(func(unit *gorm.DB) error {
			if err := unit.Create(tx).Error; err != nil {
				return err
			}
			return setBookStatus(unit, tx.BookID, entities.BookStatusBorrowed)
		})
	})
	if err != nil {
		tx.ID = 0
		return fmt.Errorf("borrow book %d: %w", tx.BookID, err)
	}
	return nil
}

// ReturnBook marks the transaction returned and its book Available in one
// database transaction. It returns the ID of the book that was released.
func (r *Repository) ReturnBook(ctx context.Context, id uint, returnedAt time.Time) (uint, error) {
	var bookID uint
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		return conn.Transaction(func(unit *gorm.DB) error {
			var tx entities.Transaction
			if err := unit.First(&tx, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTransactionNotFound
				}
				return err
			}
			if err := markReturned(unit, id, returnedAt).Error; err != nil {
				return err
			}
			bookID = tx.BookID
			return setBookStatus(unit, tx.BookID, entities.BookStatusAvailable)
		})
	})
	if err != nil {
		return 0, fmt.Errorf("return book for transaction %d: %w", id, err)
	}
	return bookID, nil
}
