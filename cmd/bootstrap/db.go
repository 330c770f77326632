package bootstrap

import (
	"context"
	"log/slog"
	"os"

	"school-reservations/internal/infra/db"
	"school-reservations/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// NewDB opens the pool eagerly so a bad DSN fails the app before the server starts.
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := pool.Ping(ctx); err != nil {
				return err
			}
			if cfg.DB.AutoMigrate {
				applied, err := db.Migrate(ctx, pool, os.DirFS(cfg.DB.MigrationsDir))
				if err != nil {
					return err
				}
				logger.Info("migrations applied", "dir", cfg.DB.MigrationsDir, "count", len(applied))
			}
			stat := pool.Stat()
			logger.Info("database ready",
				"host", cfg.DB.Host,
				"name", cfg.DB.DBName,
				"max_conns", stat.MaxConns(),
			)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return pool, nil
}
