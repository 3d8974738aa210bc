// Package readonly puts the desk in a mode where records can be looked up
// but not changed, e.g. while a stocktake is running.
package readonly

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKey marks requests served while read-only mode is on.
const ContextKey = "read_only"

const blockedMessage = "The library is in read-only mode. Changes are disabled."

// Middleware blocks write operations when enabled. GET, HEAD and OPTIONS
// always pass, as do the health and metrics endpoints.
type Middleware struct {
	enabled bool
}

// NewMiddleware creates a read-only middleware. When disabled its
// handler lets every request through.
func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that rejects writes with 403.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKey, m.enabled)

		if !m.enabled || isSafeMethod(c.Request.Method) || isAllowedPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		respondBlocked(c)
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func isAllowedPath(path string) bool {
	return path == "/health" || path == "/ping" || path == "/metrics"
}

// respondBlocked answers HTMX with a flash swapped into the page, API
// clients with JSON and everything else with plain text.
func respondBlocked(c *gin.Context) {
	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Retarget", "#flash")
		c.Header("HX-Reswap", "innerHTML")
		c.Data(http.StatusForbidden, "text/html; charset=utf-8",
			[]byte(`<div class="flash flash-error">`+blockedMessage+`</div>`))
		c.Abort()
		return
	}

	if strings.HasPrefix(c.Request.URL.Path, "/api/") || strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     blockedMessage,
			"code":      "read_only",
			"read_only": true,
		})
		return
	}

	c.String(http.StatusForbidden, blockedMessage)
	c.Abort()
}

// Enabled reports whether the request was served in read-only mode.
func Enabled(c *gin.Context) bool {
	return c.GetBool(ContextKey)
}
