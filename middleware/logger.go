package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// Logger tags every request with an id (taken from X-Request-ID when the
// caller sends one) and logs method, path, status and latency.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		c.Next()

		status := c.Writer.Status()
		prefix := "➡️ "
		if status >= 500 {
			prefix = "❌"
		} else if status >= 400 {
			prefix = "⚠️ "
		}
		log.Printf("%s [%s] %s %s %s %d %s", prefix, id, c.Request.Method, c.Request.URL.Path, c.ClientIP(), status, time.Since(start))
	}
}
