//go:build unit || e2e

package builder

import (
	"time"

	"school-reservations/internal/domain/reservation"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID           uuid.UUID
	EquipmentID  uuid.UUID
	TeacherID    uuid.UUID
	Date         reservation.Date
	Modules      []int
	Status       reservation.Status
	Series       *reservation.Series
	Observations string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now()
	return &ReservationBuilder{
		ID:          uuid.New(),
		EquipmentID: uuid.New(),
		TeacherID:   uuid.New(),
		Date:        reservation.MustDate(2025, time.October, 7),
		Modules:     []int{3, 4},
		Status:      reservation.StatusConfirmed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	modules, _ := reservation.ParseModules(b.Modules)
	observations, _ := reservation.NewObservations(b.Observations)
	return reservation.ReconstructReservation(
		b.ID, b.EquipmentID, b.TeacherID,
		b.Date, modules, b.Status, b.Series, observations,
		b.CreatedAt, b.UpdatedAt,
	)
}

func (b *ReservationBuilder) BuildSingleRequest() reservation.SingleRequest {
	return reservation.SingleRequest{
		EquipmentID:  b.EquipmentID,
		TeacherID:    b.TeacherID,
		Date:         b.Date,
		Modules:      b.Modules,
		Status:       b.Status,
		Observations: b.Observations,
	}
}

// Fluent builder methods
func (b *ReservationBuilder) WithEquipmentID(id uuid.UUID) *ReservationBuilder {
	b.EquipmentID = id
	return b
}

func (b *ReservationBuilder) WithTeacherID(id uuid.UUID) *ReservationBuilder {
	b.TeacherID = id
	return b
}

func (b *ReservationBuilder) WithDate(d reservation.Date) *ReservationBuilder {
	b.Date = d
	return b
}

func (b *ReservationBuilder) WithModules(modules ...int) *ReservationBuilder {
	b.Modules = modules
	return b
}

func (b *ReservationBuilder) WithStatus(status reservation.Status) *ReservationBuilder {
	b.Status = status
	return b
}

func (b *ReservationBuilder) WithSeries(id uuid.UUID, freq reservation.Frequency, end reservation.Date) *ReservationBuilder {
	b.Series = &reservation.Series{ID: id, Frequency: freq, EndDate: end}
	return b
}

func (b *ReservationBuilder) WithObservations(s string) *ReservationBuilder {
	b.Observations = s
	return b
}

func (b *ReservationBuilder) AsCancelled() *ReservationBuilder {
	b.Status = reservation.StatusCancelled
	return b
}

func (b *ReservationBuilder) AsPending() *ReservationBuilder {
	b.Status = reservation.StatusPending
	return b
}
