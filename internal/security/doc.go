// Package security holds the HTTP hardening pieces shared by every route:
// CSRF protection for browser forms, response security headers, per-client
// rate limiting of writes, markup stripping of free-text input, and the
// cookie session store backing the UI state.
package security
