//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"school-reservations/internal/domain/user"
	"school-reservations/internal/handler/dto/request"
	resdto "school-reservations/internal/handler/dto/response"
	"school-reservations/internal/usecase/queries"
	"school-reservations/tests/common/authtest"
	"school-reservations/tests/common/dbtest"
	"school-reservations/tests/common/httptest"
	"school-reservations/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL  = "/api/auth/login"
	logoutURL = "/api/auth/logout"
	meURL     = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	teacherID := dbtest.LookupTeacher(s.T(), s.DB, dbtest.DefaultTeacherEmail)
	dbtest.CreateTestUser(s.T(), s.DB, "admin@school.cl", string(user.RoleAdmin), nil)
	dbtest.CreateTestUser(s.T(), s.DB, "teacher@school.cl", string(user.RoleTeacher), &teacherID)
	dbtest.CreateTestUser(s.T(), s.DB, "inactive@school.cl", string(user.RoleTeacher), &teacherID)

	_, err := s.DB.Exec(s.T().Context(), "UPDATE users SET is_active = false WHERE email = 'inactive@school.cl'")
	require.NoError(s.T(), err)
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
		description    string
	}{
		{
			name:           "正常なログイン",
			email:          "teacher@school.cl",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusOK,
			description:    "有効な認証情報でログインできること",
		},
		{
			name:           "存在しないユーザー",
			email:          "nobody@school.cl",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusUnauthorized,
			description:    "存在しないユーザーでログインできないこと",
		},
		{
			name:           "間違ったパスワード",
			email:          "teacher@school.cl",
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
			description:    "間違ったパスワードでログインできないこと",
		},
		{
			name:           "非アクティブユーザー",
			email:          "inactive@school.cl",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusForbidden,
			description:    "非アクティブユーザーはログインできないこと",
		},
		{
			name:           "空のメールアドレス",
			email:          "",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusBadRequest,
			description:    "空のメールアドレスは拒否されること",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			reqBody := request.LoginRequest{Email: tt.email, Password: tt.password}
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)

			if tt.expectedStatus == http.StatusOK {
				var loginRes resdto.LoginResponse
				require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &loginRes))
				require.NotEmpty(t, loginRes.AccessToken, "アクセストークンが空")
				require.NotNil(t, loginRes.User.TeacherID, "教員アカウントにteacher_idがない")

				var lastLogin any
				err := s.DB.QueryRow(t.Context(), "SELECT last_login FROM users WHERE email = $1", tt.email).Scan(&lastLogin)
				require.NoError(t, err)
				require.NotNil(t, lastLogin, "last_loginが更新されていない")
			}
		})
	}
}

func (s *authSuite) TestLogout() {
	s.Run("Cookieが削除される", func() {
		t := s.T()

		token := authtest.LoginUser(t, s.Router, "teacher@school.cl", dbtest.DefaultPassword)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, logoutURL, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)
	})

	s.Run("トークンなし", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, logoutURL, nil, "")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestMe() {
	tests := []struct {
		name           string
		setupToken     func() string
		expectedStatus int
		expectedEmail  string
	}{
		{
			name:           "管理者ユーザーの情報取得",
			setupToken:     func() string { return authtest.LoginUser(s.T(), s.Router, "admin@school.cl", dbtest.DefaultPassword) },
			expectedStatus: http.StatusOK,
			expectedEmail:  "admin@school.cl",
		},
		{
			name:           "教員ユーザーの情報取得",
			setupToken:     func() string { return authtest.LoginUser(s.T(), s.Router, "teacher@school.cl", dbtest.DefaultPassword) },
			expectedStatus: http.StatusOK,
			expectedEmail:  "teacher@school.cl",
		},
		{
			name:           "無効なトークン",
			setupToken:     func() string { return "invalid-token" },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "トークンなし",
			setupToken:     func() string { return "" },
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, tt.setupToken())
			require.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var me queries.AuthorizedUserView
				require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &me))
				require.Equal(t, tt.expectedEmail, me.Email)
				require.NotContains(t, w.Body.String(), "password")
			}
		})
	}
}

func (s *authSuite) TestTokenExpiry() {
	s.Run("期限切れトークンの拒否", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "expiry@school.cl", string(user.RoleAdmin), nil)
		expiredToken := s.jwtHelper.CreateExpiredToken(t, userID, user.RoleAdmin, nil)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, expiredToken)
		require.Equal(t, http.StatusUnauthorized, w.Code, "期限切れトークンは拒否されるべき")
	})

	s.Run("別の秘密鍵で署名されたトークンの拒否", func() {
		t := s.T()

		cfg := s.Config.JWT
		cfg.Secret = "another-secret"
		token := authtest.NewJWTHelper(cfg).GenerateToken(t, uuid.New(), user.RoleAdmin, nil)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestConcurrentLogin() {
	s.Run("同時ログイン", func() {
		t := s.T()

		token1 := authtest.LoginUser(t, s.Router, "teacher@school.cl", dbtest.DefaultPassword)
		token2 := authtest.LoginUser(t, s.Router, "teacher@school.cl", dbtest.DefaultPassword)
		require.NotEqual(t, token1, token2, "同時ログインで同じトークンが返された")

		for _, token := range []string{token1, token2} {
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
			require.Equal(t, http.StatusOK, w.Code)
		}
	})
}
