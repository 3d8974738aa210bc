package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestIDMiddleware stamps every response with X-Request-ID, reusing
// the caller's ID when it sent one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// StatusRecorder counts responses by method and status code.
type StatusRecorder interface {
	RecordHTTPStatus(method string, statusCode int)
}

// MetricsMiddleware counts responses by method and status code.
func MetricsMiddleware(recorder StatusRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		recorder.RecordHTTPStatus(c.Request.Method, c.Writer.Status())
	}
}
