// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, schema creation, scoped connections
//	├── books/           # Book CRUD
//	├── members/         # Member CRUD
//	├── transactions/    # Borrowing transactions, joined reads, circulation
//	└── audit/           # Audit event log
//
// # Scoped connections
//
// Every repository operation acquires its own connection through
// WithConnection, issues one statement and releases the connection before
// returning. With the default of zero idle connections, a released
// connection is closed rather than kept for the next operation:
//
//	db, err := database.NewDatabase("./library.db")
//	repo := books.NewRepository(db.DB)
//	list, err := repo.ListBooks(ctx)
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Wrap each statement in database.WithConnection
//  5. Add compile-time interface check in internal/interfaces
package database
