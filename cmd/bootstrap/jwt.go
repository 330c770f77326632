package bootstrap

import (
	"fmt"
	"time"

	"school-reservations/internal/pkg/config"
	"school-reservations/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	ttl, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_DURATION %q: %w", cfg.JWT.Duration, err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("JWT_DURATION must be positive, got %s", ttl)
	}
	return jwt.NewService(cfg.JWT.Secret, ttl), nil
}
