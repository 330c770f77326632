package bootstrap

import (
	"log/slog"
	"time"

	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)

// SchoolModule derives the calendar the module clock runs on from Config.
var SchoolModule = fx.Module("school",
	fx.Provide(
		NewSchoolLocation,
		NewBookingPolicy,
	),
	fx.Invoke(logSchoolCalendar),
)

func NewSchoolLocation(cfg config.Config) *time.Location {
	return cfg.School.Location()
}

func NewBookingPolicy(cfg config.Config) reservation.BookingPolicy {
	return reservation.BookingPolicy{
		HorizonDays:   cfg.School.BookingHorizonDays,
		MaxSeriesDays: cfg.School.MaxSeriesDays,
	}
}

func logSchoolCalendar(logger *slog.Logger, loc *time.Location, policy reservation.BookingPolicy) {
	logger.Info("school calendar",
		"timezone", loc.String(),
		"first_module", reservation.FirstModule.Start(),
		"last_module_end", reservation.LastModule.End(),
		"booking_horizon_days", policy.HorizonDays,
		"max_series_days", policy.MaxSeriesDays,
	)
}
