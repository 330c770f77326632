package bootstrap

import (
	"context"
	"log/slog"

	"school-reservations/internal/infra/cache"
	"school-reservations/internal/pkg/config"
	"school-reservations/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
		NewOccupancyCache,
	),
)

// NewRedis returns a nil client when REDIS_ADDR is unset.
func NewRedis(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*redis.Client, error) {
	rdb, err := cache.NewClient(cfg.Redis)
	if err != nil {
		return nil, err
	}
	if rdb == nil {
		logger.Warn("redis disabled: occupancy cache and rate limiting are off")
		return nil, nil
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})

	return rdb, nil
}

func NewOccupancyCache(rdb *redis.Client, cfg config.Config) shared.OccupancyCache {
	return cache.NewOccupancyCache(rdb, cfg.Redis.OccupancyTTL)
}
