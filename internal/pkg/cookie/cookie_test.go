//go:build unit

package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"school-reservations/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseCookie(t *testing.T, fn func(*gin.Context)) *http.Cookie {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	fn(c)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSetAccessToken(t *testing.T) {
	t.Run("Lax既定でHttpOnly", func(t *testing.T) {
		got := responseCookie(t, func(c *gin.Context) {
			SetAccessToken(c, config.CookieConfig{}, "tok", time.Hour)
		})
		assert.Equal(t, "tok", got.Value)
		assert.Equal(t, "/api", got.Path)
		assert.Equal(t, 3600, got.MaxAge)
		assert.True(t, got.HttpOnly)
		assert.False(t, got.Secure)
		assert.Equal(t, http.SameSiteLaxMode, got.SameSite)
	})

	t.Run("SameSite=NoneはSecureを強制", func(t *testing.T) {
		got := responseCookie(t, func(c *gin.Context) {
			SetAccessToken(c, config.CookieConfig{SameSite: "None"}, "tok", time.Hour)
		})
		assert.True(t, got.Secure)
		assert.Equal(t, http.SameSiteNoneMode, got.SameSite)
	})
}

func TestClearAccessToken(t *testing.T) {
	got := responseCookie(t, func(c *gin.Context) {
		ClearAccessToken(c, config.CookieConfig{SameSite: "strict"})
	})
	assert.Empty(t, got.Value)
	assert.Equal(t, -1, got.MaxAge)
	assert.Equal(t, http.SameSiteStrictMode, got.SameSite)
}
