//go:build unit

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"school-reservations/internal/domain/user"
	"school-reservations/internal/pkg/config"
	"school-reservations/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	teacherID := uuid.New()

	newRouter := func(buf *bytes.Buffer) *gin.Engine {
		r := gin.New()
		r.Use(RequestLogger(captureLogger(buf), "/health"))
		r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
		r.GET("/api/reservations/:id", func(c *gin.Context) {
			SetActor(c, shared.Actor{UserID: uuid.New(), Role: user.RoleTeacher, TeacherID: &teacherID})
			c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
		})
		r.GET("/boom", func(c *gin.Context) {
			_ = c.Error(errors.New("database down"))
			c.Status(http.StatusInternalServerError)
		})
		return r
	}

	t.Run("logs route, actor and generated request id", func(t *testing.T) {
		var buf bytes.Buffer
		rec := httptest.NewRecorder()
		newRouter(&buf).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reservations/42", nil))

		id := rec.Header().Get("X-Request-ID")
		require.NotEmpty(t, id)

		entry := lastLine(t, &buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, id, entry["request_id"])
		assert.Equal(t, "/api/reservations/:id", entry["route"])
		assert.Equal(t, teacherID.String(), entry["teacher_id"])
		assert.EqualValues(t, 200, entry["status_code"])
	})

	t.Run("keeps a well-formed upstream request id", func(t *testing.T) {
		var buf bytes.Buffer
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-ID", "edge-1234abcd")
		rec := httptest.NewRecorder()
		newRouter(&buf).ServeHTTP(rec, req)

		assert.Equal(t, "edge-1234abcd", rec.Header().Get("X-Request-ID"))
		assert.Equal(t, "DEBUG", lastLine(t, &buf)["level"])
	})

	t.Run("replaces a malformed upstream id", func(t *testing.T) {
		var buf bytes.Buffer
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-ID", "bad id\nwith newline")
		rec := httptest.NewRecorder()
		newRouter(&buf).ServeHTTP(rec, req)

		assert.NotEqual(t, "bad id\nwith newline", rec.Header().Get("X-Request-ID"))
	})

	t.Run("server errors log at error level with a stack", func(t *testing.T) {
		var buf bytes.Buffer
		rec := httptest.NewRecorder()
		newRouter(&buf).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

		entry := lastLine(t, &buf)
		assert.Equal(t, "ERROR", entry["level"])
		assert.Contains(t, entry["errors"], "database down")
		assert.NotEmpty(t, entry["stack"])
	})
}

func TestNewLoggerFormatsTimeInZone(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LogConfig{
		Level:      "warn",
		TimeZone:   "America/Santiago",
		TimeFormat: "2006-01-02",
	}, &buf, true)

	logger.Info("hidden")
	logger.Warn("shown")

	entry := lastLine(t, &buf)
	assert.Equal(t, "shown", entry["msg"])
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, entry["time"])
	assert.NotContains(t, buf.String(), "hidden")
}
