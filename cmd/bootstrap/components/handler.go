package components

import (
	"school-reservations/internal/handler"
	"school-reservations/internal/handler/api"
	"school-reservations/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewReservationHandler,
		api.NewAvailabilityHandler,
		api.NewEquipmentHandler,
		api.NewTeacherHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

type handlerParams struct {
	fx.In

	Auth         *api.AuthHandler
	Reservation  *api.ReservationHandler
	Availability *api.AvailabilityHandler
	Equipment    *api.EquipmentHandler
	Teacher      *api.TeacherHandler
}

func NewHandlers(p handlerParams) handler.Handlers {
	return handler.Handlers{
		Auth:         p.Auth,
		Reservation:  p.Reservation,
		Availability: p.Availability,
		Equipment:    p.Equipment,
		Teacher:      p.Teacher,
	}
}
