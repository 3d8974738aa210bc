package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/librarydesk/internal/database"
	"github.com/mrlokans/librarydesk/internal/database/books"
	"github.com/mrlokans/librarydesk/internal/database/members"
	"github.com/mrlokans/librarydesk/internal/database/transactions"
	"github.com/mrlokans/librarydesk/internal/entities"
	"github.com/mrlokans/librarydesk/internal/security"
	"github.com/mrlokans/librarydesk/internal/services"
)

type jsonBody map[string]any

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

type testServer struct {
	router  *gin.Engine
	library *services.Library
	db      *database.Database
	cookies map[string]*http.Cookie
}

type serverOption func(*RouterConfig)

func withCSRF(secret string) serverOption {
	return func(cfg *RouterConfig) {
		cfg.CSRFSecret = []byte(secret)
	}
}

func newTestServer(t *testing.T, libOpts []services.LibraryOption, opts ...serverOption) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "library.db"), database.WithLogLevel("silent"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sessions, err := security.NewSessionManager(sqlDB, security.SessionConfig{})
	require.NoError(t, err)
	t.Cleanup(sessions.Close)

	library := services.NewLibrary(
		books.NewRepository(db.DB),
		members.NewRepository(db.DB),
		transactions.NewRepository(db.DB),
		libOpts...,
	)

	cfg := RouterConfig{
		Library:        library,
		Database:       db,
		SessionManager: sessions,
		Version:        "test",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	router, err := NewRouter(cfg)
	require.NoError(t, err)

	return &testServer{
		router:  router,
		library: library,
		db:      db,
		cookies: map[string]*http.Cookie{},
	}
}

// do sends the request with the cookies collected so far and keeps the
// ones the response sets, like a browser would.
func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	for _, cookie := range s.cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	for _, cookie := range w.Result().Cookies() {
		s.cookies[cookie.Name] = cookie
	}
	return w
}

func (s *testServer) get(path string, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return s.do(req)
}

func (s *testServer) postForm(path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return s.do(req)
}

func (s *testServer) sendJSON(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

func (s *testServer) addBook(t *testing.T, title, author, category string) *entities.Book {
	t.Helper()
	book, err := s.library.AddBook(context.Background(), services.BookInput{Title: title, Author: author, Category: category})
	require.NoError(t, err)
	return book
}

func (s *testServer) addMember(t *testing.T, name, email string) *entities.Member {
	t.Helper()
	member, err := s.library.AddMember(context.Background(), services.MemberInput{Name: name, Email: email, Phone: "555-0100"})
	require.NoError(t, err)
	return member
}

func (s *testServer) bookStatus(t *testing.T, id uint) entities.BookStatus {
	t.Helper()
	book, ok := s.library.FindBook(context.Background(), id)
	require.True(t, ok)
	return book.Status
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
