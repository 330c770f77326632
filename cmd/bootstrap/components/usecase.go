package components

import (
	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/pkg/clock"
	"school-reservations/internal/pkg/jwt"
	"school-reservations/internal/usecase"
	"school-reservations/internal/usecase/commands"
	"school-reservations/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	reservation.NewAssembler,
	NewTokenIssuer,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewReservationCommands,
		commands.NewEquipmentCommands,
		commands.NewTeacherCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewReservationQueries,
		queries.NewAvailabilityQueries,
		queries.NewEquipmentQueries,
		queries.NewTeacherQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewTokenIssuer(s *jwt.Service) commands.TokenIssuer {
	return s
}
