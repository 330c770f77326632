package bootstrap

import (
	"log/slog"

	"school-reservations/internal/handler/middleware"
	"school-reservations/internal/pkg/config"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

func NewLogger(cfg config.Config) *slog.Logger {
	return middleware.NewLogger(cfg.Log).With("service", "school-reservations")
}

// NewFxLogger routes fx lifecycle events through the application logger at
// debug level so they stay out of normal output.
func NewFxLogger(logger *slog.Logger) fxevent.Logger {
	l := &fxevent.SlogLogger{Logger: logger.With("component", "fx")}
	l.UseLogLevel(slog.LevelDebug)
	return l
}
