package security

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-key-32-bytes-long!!!")

func init() {
	gin.SetMode(gin.TestMode)
}

func newCSRFRouter(handled *bool) *gin.Engine {
	router := gin.New()
	router.Use(CSRFMiddleware(testSecret, false))
	router.GET("/form", func(c *gin.Context) {
		c.String(http.StatusOK, GetCSRFToken(c))
	})
	handler := func(c *gin.Context) {
		*handled = true
		c.Status(http.StatusOK)
	}
	router.POST("/ui/books", handler)
	router.POST("/api/books", handler)
	return router
}

func TestCSRFMiddleware_AllowsGET(t *testing.T) {
	var handled bool
	router := newCSRFRouter(&handled)

	req := httptest.NewRequest(http.MethodGet, "/form", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
}

func TestCSRFMiddleware_BlocksPOSTWithoutToken(t *testing.T) {
	var handled bool
	router := newCSRFRouter(&handled)

	req := httptest.NewRequest(http.MethodPost, "/ui/books", strings.NewReader("title=Dune"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, handled)
}

func TestCSRFMiddleware_AcceptsPOSTWithToken(t *testing.T) {
	var handled bool
	router := newCSRFRouter(&handled)

	getReq := httptest.NewRequest(http.MethodGet, "/form", nil)
	getRR := httptest.NewRecorder()
	router.ServeHTTP(getRR, getReq)
	token := getRR.Body.String()
	require.NotEmpty(t, token)

	form := url.Values{CSRFFieldName: {token}, "title": {"Dune"}}
	req := httptest.NewRequest(http.MethodPost, "/ui/books", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range getRR.Result().Cookies() {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, handled)
}

func TestCSRFMiddleware_SkipsJSONAPI(t *testing.T) {
	var handled bool
	router := newCSRFRouter(&handled)

	req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(`{"title":"Dune"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, handled)
}

func TestCSRFMiddleware_FormPostToAPIStillChecked(t *testing.T) {
	var handled bool
	router := newCSRFRouter(&handled)

	req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader("title=Dune"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, handled)
}

func TestGetCSRFToken(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetCSRFToken(c))

	c.Set(csrfTokenKey, "test-token-123")
	assert.Equal(t, "test-token-123", GetCSRFToken(c))
}

func TestCSRFErrorHandler(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Accept", "application/json")

		csrfErrorHandler(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	})

	t.Run("html", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)

		csrfErrorHandler(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "expired")
	})
}

func TestResolveSecret(t *testing.T) {
	t.Run("hex", func(t *testing.T) {
		secret, err := ResolveSecret("00ff")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x00, 0xff}, secret)
	})

	t.Run("raw", func(t *testing.T) {
		secret, err := ResolveSecret("not-hex-secret")
		require.NoError(t, err)
		assert.Equal(t, []byte("not-hex-secret"), secret)
	})

	t.Run("generated", func(t *testing.T) {
		first, err := ResolveSecret("")
		require.NoError(t, err)
		second, err := ResolveSecret("")
		require.NoError(t, err)
		assert.Len(t, first, 32)
		assert.NotEqual(t, first, second)
	})
}
