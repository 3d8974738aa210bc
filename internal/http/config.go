package http

import (
	"net/http"

	"github.com/mrlokans/librarydesk/internal/security"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Library  LibraryService
	Database Pinger

	// Audit trail (optional)
	AuditService AuditReader

	// Task queue (optional)
	TaskQueue TaskQueue

	// Browser sessions (optional; without them the UI forgets its state)
	SessionManager *security.SessionManager

	// CSRF protection is enabled when a secret is set
	CSRFSecret    []byte
	SecureCookies bool

	// Reject every write with 403
	ReadOnly bool

	// Write rate limiting (optional)
	RateLimiter *security.RateLimiter

	// Proxies allowed to set X-Forwarded-For; nil trusts none
	TrustedProxies []string

	// Metrics (optional)
	StatusRecorder StatusRecorder
	MetricsHandler http.Handler

	// UI paths; empty uses the embedded copies
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string
}
