package middleware

import (
	"bytes"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cms-extensions/utilities"
)

const RequestIDHeader = "X-Request-ID"

// RequestDumpMiddleware tags every request with an id and, when debug
// logging is on, dumps it.
func RequestDumpMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		if !utilities.DebugEnabled() {
			c.Next()
			return
		}

		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		utilities.Debug(
			"[Request %s]\n"+
				"\tMethod: %s\n"+
				"\tURL: %s\n"+
				"\tHeaders: %v\n"+
				"\tBody: %s",
			id,
			c.Request.Method,
			c.Request.URL.String(),
			c.Request.Header,
			string(bodyBytes),
		)

		c.Next()
	}
}
