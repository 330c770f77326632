//go:build unit || e2e

package builder

import (
	"school-reservations/internal/domain/user"
	reqdto "school-reservations/internal/handler/dto/request"
	"school-reservations/tests/common/dbtest"
)

// AuthBuilder defaults to the password every dbtest fixture account shares.
type AuthBuilder struct {
	Email    string
	Password string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		Email:    "teacher@school.cl",
		Password: dbtest.DefaultPassword,
	}
}

func (a *AuthBuilder) WithEmail(email string) *AuthBuilder {
	a.Email = email
	return a
}

func (a *AuthBuilder) WithPassword(password string) *AuthBuilder {
	a.Password = password
	return a
}

func (a *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    a.Email,
		Password: a.Password,
	}
}

func (a *AuthBuilder) BuildCredentials() (user.Credentials, error) {
	return user.NewCredentials(a.Email, a.Password)
}
