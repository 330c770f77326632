//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"school-reservations/internal/pkg/cookie"
	"school-reservations/tests/common/builder"
	"school-reservations/tests/common/dbtest"
	"school-reservations/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	body := builder.NewAuthBuilder().WithEmail(email).WithPassword(password).BuildDTO()
	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login", body, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	accessCookie := httptest.ExtractCookie(w, cookie.AccessTokenCookieName)
	require.NotNil(t, accessCookie, "Access token not found in cookies")
	require.NotEmpty(t, accessCookie.Value, "Access token cookie is empty")

	return accessCookie.Value
}

// CreateAndLogin provisions an account and returns its token. Teacher
// accounts pass the teacher they act for; admins pass nil.
func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, email, role string, teacherID *uuid.UUID) string {
	t.Helper()
	dbtest.CreateTestUser(t, db, email, role, teacherID)
	return LoginUser(t, router, email, dbtest.DefaultPassword)
}

func LogoutUser(t *testing.T, router *gin.Engine, cookies []*http.Cookie) {
	t.Helper()

	w := httptest.PerformRequestWithCookies(t, router, http.MethodPost, "/api/auth/logout", nil, cookies, "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}
