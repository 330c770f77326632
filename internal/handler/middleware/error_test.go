//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"school-reservations/internal/handler/httperr"
	"school-reservations/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorRouter(h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CustomRecovery())
	r.Use(middleware.ErrorHandler())
	r.GET("/", h)
	return r
}

func serve(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestErrorHandler(t *testing.T) {
	t.Run("記録されたPayloadを書き出す", func(t *testing.T) {
		r := newErrorRouter(func(c *gin.Context) {
			_ = c.Error(gin.Error{
				Err:  errors.New("modules taken"),
				Type: gin.ErrorTypePublic,
				Meta: httperr.Payload{Status: http.StatusConflict, Body: gin.H{"kind": "modules-unavailable"}},
			})
		})

		w := serve(r)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"kind":"modules-unavailable"}`, w.Body.String())
	})

	t.Run("記録されたResponseを書き出す", func(t *testing.T) {
		resp := httperr.Response{Status: http.StatusNotFound}
		resp.Error.Message = "Reservation not found"
		r := newErrorRouter(func(c *gin.Context) {
			_ = c.Error(gin.Error{Err: errors.New("missing"), Type: gin.ErrorTypePublic, Meta: resp})
		})

		w := serve(r)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":{"message":"Reservation not found"}}`, w.Body.String())
	})

	t.Run("AbortWithBodyはそのまま返す", func(t *testing.T) {
		r := newErrorRouter(func(c *gin.Context) {
			httperr.AbortWithBody(c, http.StatusUnprocessableEntity, errors.New("bad date"), gin.H{"ok": false})
		})

		w := serve(r)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.JSONEq(t, `{"ok":false}`, w.Body.String())
	})

	t.Run("エラーなしでnilを渡すとpanicし500になる", func(t *testing.T) {
		r := newErrorRouter(func(c *gin.Context) {
			httperr.AbortWithBody(c, http.StatusConflict, nil, gin.H{})
		})

		w := serve(r)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal server error")
	})
}
