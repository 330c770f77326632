package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"school-reservations/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the response recorded by httperr when a handler
// registered an error without writing a body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if !err.IsType(gin.ErrorTypePublic) {
				continue
			}
			switch meta := err.Meta.(type) {
			case httperr.Response:
				c.JSON(meta.Status, meta)
				return
			case httperr.Payload:
				c.JSON(meta.Status, meta.Body)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Internal server error"}})
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic",
					"error", err,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
					"stack", panicFrames(8),
				)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"

				c.JSON(http.StatusInternalServerError, resp)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// panicFrames keeps the first n lines of the goroutine stack.
func panicFrames(n int) []string {
	lines := strings.Split(strings.TrimSpace(string(debug.Stack())), "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}
