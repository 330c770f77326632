//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"school-reservations/internal/domain/user"
	"school-reservations/internal/pkg/config"
	"school-reservations/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens with the app's own secret so tests can skip the
// login round trip.
type JWTHelper struct {
	secret   string
	duration time.Duration
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	d, err := time.ParseDuration(cfg.Duration)
	if err != nil {
		d = time.Hour
	}
	return &JWTHelper{secret: cfg.Secret, duration: d}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role, teacherID *uuid.UUID) string {
	t.Helper()
	return h.sign(t, h.duration, userID, role, teacherID)
}

// CreateExpiredToken returns a token that expired well beyond the validator's
// clock-skew leeway.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role, teacherID *uuid.UUID) string {
	t.Helper()
	return h.sign(t, -time.Hour, userID, role, teacherID)
}

func (h *JWTHelper) sign(t *testing.T, ttl time.Duration, userID uuid.UUID, role user.Role, teacherID *uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewService(h.secret, ttl).GenerateToken(userID, role, teacherID)
	require.NoError(t, err)
	return token
}
