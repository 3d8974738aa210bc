// Package books provides database operations for the books table.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	list, err := repo.ListBooks(ctx)
package books

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/librarydesk/internal/database"
	"github.com/mrlokans/librarydesk/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBooks returns every book ordered by identity.
func (r *Repository) ListBooks(ctx context.Context) ([]entities.Book, error) {
	books := []entities.Book{}
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		return conn.Order("id ASC").Find(&books).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		return conn.First(&book, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook inserts the book and sets its store-assigned ID.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		return conn.Create(book).Error
	})
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// UpdateBook replaces title, author, category and status of the book with
// book.ID. Returns the number of affected rows.
func (r *Repository) UpdateBook(ctx context.Context, book *entities.Book) (int64, error) {
	var affected int64
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		result := conn.Exec(
			`UPDATE books SET title = @title, author = @author, category = @category, status = @status WHERE id = @id`,
			map[string]any{
				"id":       book.ID,
				"title":    book.Title,
				"author":   book.Author,
				"category": book.Category,
				"status":   book.Status,
			},
		)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, fmt.Errorf("update book %d: %w", book.ID, err)
	}
	return affected, nil
}

// UpdateBookStatus changes only the status column.
func (r *Repository) UpdateBookStatus(ctx context.Context, id uint, status entities.BookStatus) (int64, error) {
	var affected int64
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		result := conn.Model(&entities.Book{}).Where("id = ?", id).Update("status", status)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, fmt.Errorf("update book %d status: %w", id, err)
	}
	return affected, nil
}

// DeleteBook removes the book. Deleting a missing ID affects zero rows.
func (r *Repository) DeleteBook(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		result := conn.Delete(&entities.Book{}, id)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, fmt.Errorf("delete book %d: %w", id, err)
	}
	return affected, nil
}
