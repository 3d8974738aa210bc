package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/librarydesk/internal/audit"
	"github.com/mrlokans/librarydesk/internal/database"
	"github.com/mrlokans/librarydesk/internal/database/books"
	"github.com/mrlokans/librarydesk/internal/database/members"
	"github.com/mrlokans/librarydesk/internal/database/transactions"
	"github.com/mrlokans/librarydesk/internal/http"
	"github.com/mrlokans/librarydesk/internal/metrics"
	"github.com/mrlokans/librarydesk/internal/scheduler"
	"github.com/mrlokans/librarydesk/internal/services"
	"github.com/mrlokans/librarydesk/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.BookStore = (*books.Repository)(nil)
var _ services.MemberStore = (*members.Repository)(nil)
var _ services.TransactionStore = (*transactions.Repository)(nil)

// The library serves every HTTP controller and the overdue scan
var _ http.LibraryService = (*services.Library)(nil)
var _ tasks.OverdueLister = (*services.Library)(nil)

var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

var _ services.AuditLogger = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ tasks.MaintenanceLogger = (*audit.Service)(nil)

// =============================================================================
// Metrics
// =============================================================================

var _ metrics.Recorder = (*metrics.Collector)(nil)
var _ metrics.Recorder = metrics.Nop{}
var _ http.StatusRecorder = (*metrics.Collector)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
