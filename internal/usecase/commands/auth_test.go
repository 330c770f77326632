//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"school-reservations/internal/domain/user"
	"school-reservations/internal/pkg/password"
	"school-reservations/internal/usecase/commands"
	"school-reservations/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers struct {
	byEmail map[string]*queries.AuthorizedUserView
	hash    string
}

func (s stubUsers) FindByID(context.Context, uuid.UUID) (*queries.AuthorizedUserView, error) {
	return nil, errors.New("not used")
}

func (s stubUsers) FindByEmail(_ context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, "", errNotFound
	}
	return u, s.hash, nil
}

type stubIssuer struct {
	err error
}

func (s stubIssuer) GenerateToken(userID uuid.UUID, role user.Role, _ *uuid.UUID) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return string(role) + ":" + userID.String(), nil
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := password.Hash("password123")
	require.NoError(t, err)

	teacherID := uuid.New()
	active := &queries.AuthorizedUserView{ID: uuid.New(), Email: "teacher@school.cl", Role: "teacher", TeacherID: &teacherID, IsActive: true}
	inactive := &queries.AuthorizedUserView{ID: uuid.New(), Email: "gone@school.cl", Role: "teacher", IsActive: false}
	users := stubUsers{
		byEmail: map[string]*queries.AuthorizedUserView{active.Email: active, inactive.Email: inactive},
		hash:    hash,
	}

	tests := []struct {
		name     string
		email    string
		password string
		issuer   stubIssuer
		wantErr  error
	}{
		{name: "正常系: ログイン成功", email: active.Email, password: "password123"},
		{name: "異常系: パスワード不一致", email: active.Email, password: "password124", wantErr: commands.ErrInvalidCredentials},
		{name: "異常系: 存在しないユーザー", email: "nobody@school.cl", password: "password123", wantErr: commands.ErrInvalidCredentials},
		{name: "異常系: 非アクティブユーザー", email: inactive.Email, password: "password123", wantErr: commands.ErrUserInactive},
		{name: "異常系: 不正なメールアドレス", email: "not-an-email", password: "password123", wantErr: commands.ErrAuthenticationFailed},
		{name: "異常系: トークン生成失敗", email: active.Email, password: "password123", issuer: stubIssuer{err: errors.New("signing failed")}, wantErr: commands.ErrTokenGeneration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			cmds := commands.NewAuthCommands(&memUoW{store: store}, users, tt.issuer)

			result, err := cmds.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, store.lastLogins)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, active.ID, result.UserID)
			assert.Equal(t, user.RoleTeacher, result.Role)
			assert.Equal(t, &teacherID, result.TeacherID)
			assert.Equal(t, "teacher:"+active.ID.String(), result.Token)
			assert.Equal(t, 1, store.lastLogins[active.ID])
		})
	}
}
