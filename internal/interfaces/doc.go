// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore, MemberStore, TransactionStore: one table each, implemented
//     by the repositories under internal/database (internal/services/interfaces.go)
//   - AuditLogger: records the outcome of every write (internal/services/interfaces.go)
//
// ## HTTP Interfaces
//
//   - BookService, MemberService, TransactionService, StatsService: the part
//     of the library each controller uses (internal/http/stores.go)
//   - LibraryService: everything the browser UI touches
//   - AuditReader, TaskQueue, Pinger: optional collaborators of the router
//
// ## Background Work Interfaces
//
//   - OverdueLister, AuditEventCleaner, MaintenanceLogger: what the task
//     processors need (internal/tasks)
//   - Enqueuer: what the maintenance scheduler needs (internal/scheduler)
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., reservations):
//
//  1. Create sub-package: internal/database/reservations/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Acquire a connection per operation with database.WithConnection
//
//  4. Add compile-time check:
//
//     var _ services.ReservationStore = (*reservations.Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
