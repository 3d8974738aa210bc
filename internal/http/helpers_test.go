package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/librarydesk/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseIDParam_Valid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	id, ok := parseIDParam(c, "id")

	assert.True(t, ok)
	assert.Equal(t, uint(123), id)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseIDParam_Invalid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	id, ok := parseIDParam(c, "id")

	assert.False(t, ok)
	assert.Equal(t, uint(0), id)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid id")
}

func TestParseIDParam_Negative(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "-1"}}

	_, ok := parseIDParam(c, "id")

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseOptionalQueryID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID uint
		wantOK bool
	}{
		{"present", "/?book_id=456", 456, true},
		{"missing", "/", 0, true},
		{"malformed", "/?book_id=x", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", tt.url, nil)

			id, ok := parseOptionalQueryID(c, "book_id")

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		url                 string
		page, limit, offset int
	}{
		{"/", 1, 50, 0},
		{"/?page=3&limit=10", 3, 10, 20},
		{"/?page=0&limit=1000", 1, 50, 0},
		{"/?page=abc", 1, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", tt.url, nil)

			page, limit, offset := parsePagination(c, 50, 200)

			assert.Equal(t, tt.page, page)
			assert.Equal(t, tt.limit, limit)
			assert.Equal(t, tt.offset, offset)
		})
	}
}

func TestIsHTMXRequest(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected bool
	}{
		{"HTMX request", "true", true},
		{"Non-HTMX request", "", false},
		{"Invalid header", "false", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("HX-Request", tt.header)
			}

			assert.Equal(t, tt.expected, isHTMXRequest(c))
		})
	}
}

func TestRespondHTMXOrJSON_JSON(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	respondHTMXOrJSON(c, http.StatusOK, "unused-template", gin.H{"message": "test"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"test"`)
}

func TestRespondWriteError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"validation", &services.ValidationError{Field: "title", Message: "is required"}, http.StatusBadRequest, `"error":"title is required"`},
		{"unknown transaction", fmt.Errorf("%w: 9", services.ErrUnknownTransaction), http.StatusNotFound, `"error":"transaction not found"`},
		{"store failure", errors.New("database is locked"), http.StatusInternalServerError, `"error":"internal server error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondWriteError(c, tt.err, "test")

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.NotContains(t, w.Body.String(), "database is locked")
		})
	}
}
