package security

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// SessionConfig configures the browser session cookie.
type SessionConfig struct {
	Lifetime      time.Duration
	SecureCookies bool
}

// SessionManager wraps scs.SessionManager backed by the sessions table.
type SessionManager struct {
	*scs.SessionManager
	store *sqlite3store.SQLite3Store
}

// NewSessionManager creates a configured session manager.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, cfg SessionConfig) (*SessionManager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	if cfg.Lifetime <= 0 {
		cfg.Lifetime = 24 * time.Hour
	}

	sm := scs.New()

	store := sqlite3store.New(sqlDB)
	sm.Store = store

	sm.Lifetime = cfg.Lifetime
	sm.IdleTimeout = cfg.Lifetime / 2

	sm.Cookie.Name = "librarydesk_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm, store: store}, nil
}

// Close stops the background cleanup of expired sessions.
func (sm *SessionManager) Close() {
	sm.store.StopCleanup()
}
