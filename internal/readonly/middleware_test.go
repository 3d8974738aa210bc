package readonly

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(enabled bool) *gin.Engine {
	router := gin.New()
	router.Use(NewMiddleware(enabled).Handler())
	ok := func(c *gin.Context) {
		c.String(http.StatusOK, "read_only=%t", Enabled(c))
	}
	router.GET("/books", ok)
	router.POST("/ui/books", ok)
	router.POST("/api/books", ok)
	router.DELETE("/api/books/:id", ok)
	router.POST("/ping", ok)
	return router
}

func serve(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestNewMiddleware(t *testing.T) {
	assert.True(t, NewMiddleware(true).IsEnabled())
	assert.False(t, NewMiddleware(false).IsEnabled())
}

func TestMiddleware_Disabled(t *testing.T) {
	router := newRouter(false)

	w := serve(router, http.MethodPost, "/api/books", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "read_only=false", w.Body.String())
}

func TestMiddleware_AllowsReads(t *testing.T) {
	router := newRouter(true)

	w := serve(router, http.MethodGet, "/books", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "read_only=true", w.Body.String())
}

func TestMiddleware_BlocksWrites(t *testing.T) {
	router := newRouter(true)

	tests := []struct {
		name        string
		method      string
		path        string
		headers     map[string]string
		contentType string
	}{
		{"api post", http.MethodPost, "/api/books", nil, "application/json"},
		{"api delete", http.MethodDelete, "/api/books/1", nil, "application/json"},
		{"htmx form", http.MethodPost, "/ui/books", map[string]string{"HX-Request": "true"}, "text/html"},
		{"plain form", http.MethodPost, "/ui/books", nil, "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, tt.method, tt.path, tt.headers)

			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), tt.contentType)
			assert.Contains(t, w.Body.String(), "read-only mode")
		})
	}
}

func TestMiddleware_HTMXRetargetsFlash(t *testing.T) {
	router := newRouter(true)

	w := serve(router, http.MethodPost, "/ui/books", map[string]string{"HX-Request": "true"})

	assert.Equal(t, "#flash", w.Header().Get("HX-Retarget"))
	assert.Contains(t, w.Body.String(), `class="flash flash-error"`)
}

func TestMiddleware_AllowsHealthEndpoints(t *testing.T) {
	router := newRouter(true)

	w := serve(router, http.MethodPost, "/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}
