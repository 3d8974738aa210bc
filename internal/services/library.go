package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mrlokans/librarydesk/internal/database/transactions"
	"github.com/mrlokans/librarydesk/internal/entities"
	"github.com/mrlokans/librarydesk/internal/metrics"
	"github.com/mrlokans/librarydesk/internal/security"
)

// Library is the data access layer for books, members and transactions.
//
// Reads never fail: a store error is logged and an empty slice returned.
// Writes log the error and return it to the caller.
type Library struct {
	books        BookStore
	members      MemberStore
	transactions TransactionStore

	audit     AuditLogger
	metrics   metrics.Recorder
	sanitizer *security.Sanitizer
	now       func() time.Time
	atomic    bool
}

// LibraryOption configures a Library.
type LibraryOption func(*Library)

// WithClock replaces the clock used for issue and return dates.
func WithClock(now func() time.Time) LibraryOption {
	return func(l *Library) {
		l.now = now
	}
}

// WithAudit records every write outcome.
func WithAudit(audit AuditLogger) LibraryOption {
	return func(l *Library) {
		if audit != nil {
			l.audit = audit
		}
	}
}

// WithMetrics observes every store operation.
func WithMetrics(recorder metrics.Recorder) LibraryOption {
	return func(l *Library) {
		if recorder != nil {
			l.metrics = recorder
		}
	}
}

// WithAtomicCirculation makes BorrowBook and ReturnBook update the
// transaction and the book in one database transaction instead of two
// separate statements.
func WithAtomicCirculation(atomic bool) LibraryOption {
	return func(l *Library) {
		l.atomic = atomic
	}
}

// NewLibrary creates the data access core over the three stores.
func NewLibrary(books BookStore, members MemberStore, transactions TransactionStore, opts ...LibraryOption) *Library {
	l := &Library{
		books:        books,
		members:      members,
		transactions: transactions,
		audit:        nopAudit{},
		metrics:      metrics.Nop{},
		sanitizer:    security.NewSanitizer(),
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AtomicCirculation reports whether borrow and return run as one unit of work.
func (l *Library) AtomicCirculation() bool {
	return l.atomic
}

func (l *Library) observe(operation string, start time.Time, err error) {
	l.metrics.RecordOperation(operation, time.Since(start), err)
}

func idPtr(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}

// Books

// ListBooks returns every book ordered by ID. A store failure is logged
// and yields an empty list.
func (l *Library) ListBooks(ctx context.Context) []entities.Book {
	start := time.Now()
	books, err := l.books.ListBooks(ctx)
	l.observe("list_books", start, err)
	if err != nil {
		log.Printf("Error fetching books: %v", err)
		return []entities.Book{}
	}
	return books
}

// FindBook looks the book up in a fresh full listing.
func (l *Library) FindBook(ctx context.Context, id uint) (entities.Book, bool) {
	for _, book := range l.ListBooks(ctx) {
		if book.ID == id {
			return book, true
		}
	}
	return entities.Book{}, false
}

// AvailableBooks returns the books whose status is currently Available.
func (l *Library) AvailableBooks(ctx context.Context) []entities.Book {
	available := []entities.Book{}
	for _, book := range l.ListBooks(ctx) {
		if book.Status == entities.BookStatusAvailable {
			available = append(available, book)
		}
	}
	return available
}

// AddBook stores a new book. A missing status defaults to Available.
func (l *Library) AddBook(ctx context.Context, input BookInput) (*entities.Book, error) {
	book, err := input.book(l.sanitizer, entities.BookStatusAvailable)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	err = l.books.CreateBook(ctx, &book)
	l.observe("add_book", start, err)
	if err != nil {
		log.Printf("Error adding book: %v", err)
		l.audit.LogWrite(entities.AuditEventCreate, "book", nil, fmt.Sprintf("Add book %q", book.Title), err)
		return nil, err
	}

	l.audit.LogWrite(entities.AuditEventCreate, "book", idPtr(book.ID), fmt.Sprintf("Added book %q", book.Title), nil)
	return &book, nil
}

// UpdateBook replaces title, author, category and status. An unknown ID
// changes nothing and is not an error.
func (l *Library) UpdateBook(ctx context.Context, id uint, input BookInput) (*entities.Book, error) {
	book, err := input.book(l.sanitizer, "")
	if err != nil {
		return nil, err
	}
	book.ID = id

	start := time.Now()
	affected, err := l.books.UpdateBook(ctx, &book)
	l.observe("update_book", start, err)
	if err != nil {
		log.Printf("Error updating book: %v", err)
		l.audit.LogWrite(entities.AuditEventUpdate, "book", idPtr(id), fmt.Sprintf("Update book %d", id), err)
		return nil, err
	}

	if affected > 0 {
		l.audit.LogWrite(entities.AuditEventUpdate, "book", idPtr(id), fmt.Sprintf("Updated book %q", book.Title), nil)
	}
	return &book, nil
}

// SetBookStatus changes only the status of a book.
func (l *Library) SetBookStatus(ctx context.Context, id uint, status entities.BookStatus) error {
	if !status.Valid() {
		return invalid("status", "must be Available or Borrowed")
	}

	start := time.Now()
	_, err := l.books.UpdateBookStatus(ctx, id, status)
	l.observe("set_book_status", start, err)
	if err != nil {
		log.Printf("Error updating book: %v", err)
		l.audit.LogWrite(entities.AuditEventUpdate, "book", idPtr(id), fmt.Sprintf("Set book %d status to %s", id, status), err)
		return err
	}

	l.audit.LogWrite(entities.AuditEventUpdate, "book", idPtr(id), fmt.Sprintf("Set book %d status to %s", id, status), nil)
	return nil
}

// DeleteBook removes a book. Deleting an unknown ID is a no-op.
// Transactions referencing the book are kept.
func (l *Library) DeleteBook(ctx context.Context, id uint) error {
	start := time.Now()
	affected, err := l.books.DeleteBook(ctx, id)
	l.observe("delete_book", start, err)
	if err != nil {
		log.Printf("Error deleting book: %v", err)
		l.audit.LogWrite(entities.AuditEventDelete, "book", idPtr(id), fmt.Sprintf("Delete book %d", id), err)
		return err
	}

	if affected > 0 {
		l.audit.LogWrite(entities.AuditEventDelete, "book", idPtr(id), fmt.Sprintf("Deleted book %d", id), nil)
	}
	return nil
}

// Members

// ListMembers returns every member, or an empty list on failure.
func (l *Library) ListMembers(ctx context.Context) []entities.Member {
	start := time.Now()
	members, err := l.members.ListMembers(ctx)
	l.observe("list_members", start, err)
	if err != nil {
		log.Printf("Error fetching members: %v", err)
		return []entities.Member{}
	}
	return members
}

func (l *Library) FindMember(ctx context.Context, id uint) (entities.Member, bool) {
	for _, member := range l.ListMembers(ctx) {
		if member.ID == id {
			return member, true
		}
	}
	return entities.Member{}, false
}

// AddMember validates and stores a new member.
func (l *Library) AddMember(ctx context.Context, input MemberInput) (*entities.Member, error) {
	member, err := input.member(l.sanitizer)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	err = l.members.CreateMember(ctx, &member)
	l.observe("add_member", start, err)
	if err != nil {
		log.Printf("Error adding member: %v", err)
		l.audit.LogWrite(entities.AuditEventCreate, "member", nil, fmt.Sprintf("Add member %q", member.Name), err)
		return nil, err
	}

	l.audit.LogWrite(entities.AuditEventCreate, "member", idPtr(member.ID), fmt.Sprintf("Added member %q", member.Name), nil)
	return &member, nil
}

// UpdateMember replaces name, email and phone. An unknown ID changes
// nothing and is not an error.
func (l *Library) UpdateMember(ctx context.Context, id uint, input MemberInput) (*entities.Member, error) {
	member, err := input.member(l.sanitizer)
	if err != nil {
		return nil, err
	}
	member.ID = id

	start := time.Now()
	affected, err := l.members.UpdateMember(ctx, &member)
	l.observe("update_member", start, err)
	if err != nil {
		log.Printf("Error updating member: %v", err)
		l.audit.LogWrite(entities.AuditEventUpdate, "member", idPtr(id), fmt.Sprintf("Update member %d", id), err)
		return nil, err
	}

	if affected > 0 {
		l.audit.LogWrite(entities.AuditEventUpdate, "member", idPtr(id), fmt.Sprintf("Updated member %q", member.Name), nil)
	}
	return &member, nil
}

// DeleteMember removes the member. Their transactions stay behind.
func (l *Library) DeleteMember(ctx context.Context, id uint) error {
	start := time.Now()
	affected, err := l.members.DeleteMember(ctx, id)
	l.observe("delete_member", start, err)
	if err != nil {
		log.Printf("Error deleting member: %v", err)
		l.audit.LogWrite(entities.AuditEventDelete, "member", idPtr(id), fmt.Sprintf("Delete member %d", id), err)
		return err
	}

	if affected > 0 {
		l.audit.LogWrite(entities.AuditEventDelete, "member", idPtr(id), fmt.Sprintf("Deleted member %d", id), nil)
	}
	return nil
}

// Transactions

// ListTransactions returns every transaction with its book title and
// member name, ordered by ID. Dangling references yield empty names.
func (l *Library) ListTransactions(ctx context.Context) []entities.TransactionView {
	start := time.Now()
	views, err := l.transactions.ListTransactions(ctx)
	l.observe("list_transactions", start, err)
	if err != nil {
		log.Printf("Error fetching transactions: %v", err)
		return []entities.TransactionView{}
	}
	return views
}

// ListOverdue returns borrowed transactions due before asOf.
func (l *Library) ListOverdue(ctx context.Context, asOf time.Time) []entities.TransactionView {
	start := time.Now()
	views, err := l.transactions.ListOverdue(ctx, asOf)
	l.observe("list_overdue", start, err)
	if err != nil {
		log.Printf("Error fetching overdue transactions: %v", err)
		return []entities.TransactionView{}
	}
	return views
}

// AddTransaction records a borrowing issued now with status Borrowed.
// The book's status is left alone.
func (l *Library) AddTransaction(ctx context.Context, input TransactionInput) (*entities.Transaction, error) {
	tx, err := input.transaction(l.now())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	err = l.transactions.CreateTransaction(ctx, &tx)
	l.observe("add_transaction", start, err)
	if err != nil {
		log.Printf("Error adding transaction: %v", err)
		l.audit.LogWrite(entities.AuditEventBorrow, "transaction", nil, fmt.Sprintf("Lend book %d to member %d", tx.BookID, tx.MemberID), err)
		return nil, err
	}

	l.audit.LogWrite(entities.AuditEventBorrow, "transaction", idPtr(tx.ID), fmt.Sprintf("Lent book %d to member %d", tx.BookID, tx.MemberID), nil)
	return &tx, nil
}

// ReturnTransaction marks a transaction Returned as of now. It does not
// check the previous status; a second call re-stamps the return date.
// The book's status is left alone.
func (l *Library) ReturnTransaction(ctx context.Context, id uint) (*entities.ReturnReceipt, error) {
	returnedAt := l.now()

	start := time.Now()
	_, err := l.transactions.ReturnTransaction(ctx, id, returnedAt)
	l.observe("return_transaction", start, err)
	if err != nil {
		log.Printf("Error returning book: %v", err)
		l.audit.LogWrite(entities.AuditEventReturn, "transaction", idPtr(id), fmt.Sprintf("Return transaction %d", id), err)
		return nil, err
	}

	l.audit.LogWrite(entities.AuditEventReturn, "transaction", idPtr(id), fmt.Sprintf("Returned transaction %d", id), nil)
	return &entities.ReturnReceipt{
		ID:         id,
		Status:     entities.TransactionStatusReturned,
		ReturnDate: returnedAt,
	}, nil
}

// Circulation

// BorrowBook creates the transaction and marks the book Borrowed.
//
// By default these are two statements: if the second fails the
// transaction stays recorded while the book still shows Available, and the
// returned transaction is accompanied by the error. With atomic
// circulation both changes commit together or not at all.
func (l *Library) BorrowBook(ctx context.Context, input TransactionInput) (*entities.Transaction, error) {
	if !l.atomic {
		tx, err := l.AddTransaction(ctx, input)
		if err != nil {
			return nil, err
		}
		if err := l.SetBookStatus(ctx, tx.BookID, entities.BookStatusBorrowed); err != nil {
			return tx, err
		}
		return tx, nil
	}

	tx, err := input.transaction(l.now())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	err = l.transactions.BorrowBook(ctx, &tx)
	l.observe("borrow_book", start, err)
	if err != nil {
		log.Printf("Error adding transaction: %v", err)
		l.audit.LogWrite(entities.AuditEventBorrow, "transaction", nil, fmt.Sprintf("Lend book %d to member %d", tx.BookID, tx.MemberID), err)
		return nil, err
	}

	l.audit.LogWrite(entities.AuditEventBorrow, "transaction", idPtr(tx.ID), fmt.Sprintf("Lent book %d to member %d", tx.BookID, tx.MemberID), nil)
	return &tx, nil
}

// ErrUnknownTransaction is returned by ReturnBook when the book to release
// cannot be determined because the transaction does not exist.
var ErrUnknownTransaction = errors.New("transaction not found")

// ReturnBook marks the transaction Returned and its book Available.
// bookID names the book to release; zero means look it up from the
// transaction. With atomic circulation the book is always taken from the
// transaction and both changes commit together.
func (l *Library) ReturnBook(ctx context.Context, id, bookID uint) (*entities.ReturnReceipt, error) {
	if l.atomic {
		returnedAt := l.now()

		start := time.Now()
		_, err := l.transactions.ReturnBook(ctx, id, returnedAt)
		l.observe("return_book", start, err)
		if err != nil {
			log.Printf("Error returning book: %v", err)
			if errors.Is(err, transactions.ErrTransactionNotFound) {
				err = fmt.Errorf("%w: %d", ErrUnknownTransaction, id)
			}
			l.audit.LogWrite(entities.AuditEventReturn, "transaction", idPtr(id), fmt.Sprintf("Return transaction %d", id), err)
			return nil, err
		}

		l.audit.LogWrite(entities.AuditEventReturn, "transaction", idPtr(id), fmt.Sprintf("Returned transaction %d", id), nil)
		return &entities.ReturnReceipt{ID: id, Status: entities.TransactionStatusReturned, ReturnDate: returnedAt}, nil
	}

	if bookID == 0 {
		start := time.Now()
		tx, err := l.transactions.GetTransactionByID(ctx, id)
		if err != nil {
			l.observe("return_book", start, err)
			log.Printf("Error returning book: %v", err)
			if errors.Is(err, transactions.ErrTransactionNotFound) {
				err = fmt.Errorf("%w: %d", ErrUnknownTransaction, id)
			}
			l.audit.LogWrite(entities.AuditEventReturn, "transaction", idPtr(id), fmt.Sprintf("Return transaction %d", id), err)
			return nil, err
		}
		bookID = tx.BookID
	}

	receipt, err := l.ReturnTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := l.SetBookStatus(ctx, bookID, entities.BookStatusAvailable); err != nil {
		return receipt, err
	}
	return receipt, nil
}

// Stats recomputes the dashboard counters from three full listings.
func (l *Library) Stats(ctx context.Context) entities.DashboardStats {
	stats := entities.DashboardStats{
		TotalBooks:   len(l.ListBooks(ctx)),
		TotalMembers: len(l.ListMembers(ctx)),
	}
	for _, tx := range l.ListTransactions(ctx) {
		if tx.Status == entities.TransactionStatusBorrowed {
			stats.BooksBorrowed++
		}
	}
	return stats
}
