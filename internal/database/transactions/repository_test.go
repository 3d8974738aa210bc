package transactions

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/librarydesk/internal/database"
	"github.com/mrlokans/librarydesk/internal/entities"
)

type fixture struct {
	repo   *Repository
	db     *gorm.DB
	book   entities.Book
	member entities.Member
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "transactions.db"), database.WithLogLevel("silent"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		repo:   NewRepository(db.DB),
		db:     db.DB,
		book:   entities.Book{Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi", Status: entities.BookStatusAvailable},
		member: entities.Member{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100"},
	}
	require.NoError(t, db.DB.Create(&f.book).Error)
	require.NoError(t, db.DB.Create(&f.member).Error)
	return f
}

func (f *fixture) newTransaction(due time.Time) *entities.Transaction {
	return &entities.Transaction{
		BookID:    f.book.ID,
		MemberID:  f.member.ID,
		IssueDate: time.Now().UTC(),
		DueDate:   due,
		Status:    entities.TransactionStatusBorrowed,
	}
}

func (f *fixture) bookStatus(t *testing.T) entities.BookStatus {
	var book entities.Book
	require.NoError(t, f.db.First(&book, f.book.ID).Error)
	return book.Status
}

func TestRepository_CreateAndList(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	tx := f.newTransaction(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, f.repo.CreateTransaction(ctx, tx))
	assert.NotZero(t, tx.ID)

	views, err := f.repo.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, tx.ID, views[0].ID)
	assert.Equal(t, "Dune", views[0].BookTitle)
	assert.Equal(t, "Ada Lovelace", views[0].MemberName)
	assert.Equal(t, entities.TransactionStatusBorrowed, views[0].Status)
	assert.Nil(t, views[0].ReturnDate)
	assert.True(t, views[0].DueDate.Equal(tx.DueDate))

	assert.Equal(t, entities.BookStatusAvailable, f.bookStatus(t))
}

func TestRepository_ListTransactions_DanglingReferences(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	tx := f.newTransaction(time.Now().UTC().AddDate(0, 0, 14))
	require.NoError(t, f.repo.CreateTransaction(ctx, tx))
	require.NoError(t, f.db.Delete(&entities.Book{}, f.book.ID).Error)
	require.NoError(t, f.db.Delete(&entities.Member{}, f.member.ID).Error)

	views, err := f.repo.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Empty(t, views[0].BookTitle)
	assert.Empty(t, views[0].MemberName)
	assert.Equal(t, f.book.ID, views[0].BookID)
}

func TestRepository_ListTransactions_OrderedByID(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, f.repo.CreateTransaction(ctx, f.newTransaction(time.Now().UTC())))
	}

	views, err := f.repo.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Less(t, views[0].ID, views[1].ID)
	assert.Less(t, views[1].ID, views[2].ID)
}

func TestRepository_ReturnTransaction(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	tx := f.newTransaction(time.Now().UTC().AddDate(0, 0, 7))
	require.NoError(t, f.repo.CreateTransaction(ctx, tx))

	first := time.Now().UTC().Truncate(time.Second)
	affected, err := f.repo.ReturnTransaction(ctx, tx.ID, first)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	stored, err := f.repo.GetTransactionByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TransactionStatusReturned, stored.Status)
	require.NotNil(t, stored.ReturnDate)
	assert.True(t, stored.ReturnDate.Equal(first))

	second := first.Add(time.Hour)
	_, err = f.repo.ReturnTransaction(ctx, tx.ID, second)
	require.NoError(t, err)

	stored, err = f.repo.GetTransactionByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.True(t, stored.ReturnDate.Equal(second))

	assert.Equal(t, entities.BookStatusAvailable, f.bookStatus(t))
}

func TestRepository_ListOverdue(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()

	overdue := f.newTransaction(now.AddDate(0, 0, -3))
	notDue := f.newTransaction(now.AddDate(0, 0, 3))
	returned := f.newTransaction(now.AddDate(0, 0, -5))
	for _, tx := range []*entities.Transaction{overdue, notDue, returned} {
		require.NoError(t, f.repo.CreateTransaction(ctx, tx))
	}
	_, err := f.repo.ReturnTransaction(ctx, returned.ID, now)
	require.NoError(t, err)

	views, err := f.repo.ListOverdue(ctx, now)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, overdue.ID, views[0].ID)
}

func TestRepository_BorrowBook(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	tx := f.newTransaction(time.Now().UTC().AddDate(0, 0, 14))
	require.NoError(t, f.repo.BorrowBook(ctx, tx))
	assert.NotZero(t, tx.ID)
	assert.Equal(t, entities.BookStatusBorrowed, f.bookStatus(t))
}

func TestRepository_ReturnBook(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	tx := f.newTransaction(time.Now().UTC().AddDate(0, 0, 14))
	require.NoError(t, f.repo.BorrowBook(ctx, tx))

	bookID, err := f.repo.ReturnBook(ctx, tx.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, f.book.ID, bookID)
	assert.Equal(t, entities.BookStatusAvailable, f.bookStatus(t))

	stored, err := f.repo.GetTransactionByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TransactionStatusReturned, stored.Status)

	t.Run("missing transaction", func(t *testing.T) {
		_, err := f.repo.ReturnBook(ctx, 999, time.Now().UTC())
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})
}

func TestRepository_GetTransactionByID_Missing(t *testing.T) {
	f := setupFixture(t)

	_, err := f.repo.GetTransactionByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}
