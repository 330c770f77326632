package cookie

import (
	"net/http"
	"strings"
	"time"

	"school-reservations/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookieName = "access_token"
	// every authenticated route lives under /api
	cookiePath = "/api"
)

func SetAccessToken(c *gin.Context, cfg config.CookieConfig, token string, expiry time.Duration) {
	http.SetCookie(c.Writer, accessCookie(cfg, token, int(expiry.Seconds()), time.Now().Add(expiry)))
}

func ClearAccessToken(c *gin.Context, cfg config.CookieConfig) {
	http.SetCookie(c.Writer, accessCookie(cfg, "", -1, time.Unix(0, 0)))
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

func accessCookie(cfg config.CookieConfig, value string, maxAge int, expires time.Time) *http.Cookie {
	sameSite := parseSameSite(cfg.SameSite)
	return &http.Cookie{
		Name:     AccessTokenCookieName,
		Value:    value,
		Path:     cookiePath,
		Domain:   cfg.Domain,
		MaxAge:   maxAge,
		Expires:  expires.UTC(),
		HttpOnly: true,
		// browsers drop SameSite=None cookies that are not Secure
		Secure:   cfg.Secure || sameSite == http.SameSiteNoneMode,
		SameSite: sameSite,
	}
}

func parseSameSite(sameSite string) http.SameSite {
	switch strings.ToLower(sameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
