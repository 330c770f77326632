package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus       = errors.New("invalid reservation status")
	ErrInvalidFrequency    = errors.New("invalid recurrence frequency")
	ErrInvalidTransition   = errors.New("invalid reservation status transition")
	ErrReservationCanceled = errors.New("reservation is already cancelled")
	ErrObservationsTooLong = errors.New("observations too long")
)

type Reservation struct {
	id           uuid.UUID
	equipmentID  uuid.UUID
	teacherID    uuid.UUID
	date         Date
	modules      ModuleSet
	status       Status
	series       *Series
	observations Observations
	createdAt    time.Time
	updatedAt    time.Time
}

func newReservation(
	equipmentID, teacherID uuid.UUID,
	date Date,
	modules ModuleSet,
	status Status,
	series *Series,
	observations Observations,
	now time.Time,
) *Reservation {
	return &Reservation{
		id:           uuid.New(),
		equipmentID:  equipmentID,
		teacherID:    teacherID,
		date:         date,
		modules:      modules,
		status:       status,
		series:       series,
		observations: observations,
		createdAt:    now,
		updatedAt:    now,
	}
}

func ReconstructReservation(
	id, equipmentID, teacherID uuid.UUID,
	date Date,
	modules ModuleSet,
	status Status,
	series *Series,
	observations Observations,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:           id,
		equipmentID:  equipmentID,
		teacherID:    teacherID,
		date:         date,
		modules:      modules,
		status:       status,
		series:       series,
		observations: observations,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

func (r *Reservation) IsRecurring() bool {
	return r.series != nil
}

// Occupies reports whether r blocks modules of equipmentID on date.
func (r *Reservation) Occupies(equipmentID uuid.UUID, date Date) bool {
	return !r.IsCancelled() && r.equipmentID == equipmentID && r.date.Equal(date)
}

func (r *Reservation) Confirm(now time.Time) error {
	return r.transition(StatusConfirmed, now)
}

func (r *Reservation) Cancel(now time.Time) error {
	return r.transition(StatusCancelled, now)
}

func (r *Reservation) ChangeStatus(next Status, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	return r.transition(next, now)
}

func (r *Reservation) transition(next Status, now time.Time) error {
	if r.status == StatusCancelled {
		return ErrReservationCanceled
	}
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	r.status = next
	r.updatedAt = now
	return nil
}

func (r *Reservation) reschedule(teacherID uuid.UUID, date Date, modules ModuleSet, observations Observations, now time.Time) {
	r.teacherID = teacherID
	r.date = date
	r.modules = modules
	r.observations = observations
	r.updatedAt = now
}

func (r *Reservation) ID() uuid.UUID              { return r.id }
func (r *Reservation) EquipmentID() uuid.UUID     { return r.equipmentID }
func (r *Reservation) TeacherID() uuid.UUID       { return r.teacherID }
func (r *Reservation) Date() Date                 { return r.date }
func (r *Reservation) Modules() ModuleSet         { return r.modules }
func (r *Reservation) Status() Status             { return r.status }
func (r *Reservation) Series() *Series            { return r.series }
func (r *Reservation) Observations() Observations { return r.observations }
func (r *Reservation) CreatedAt() time.Time       { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time       { return r.updatedAt }

func (r *Reservation) SeriesID() *uuid.UUID {
	if r.series == nil {
		return nil
	}
	id := r.series.ID
	return &id
}
