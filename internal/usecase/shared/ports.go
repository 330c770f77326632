package shared

import (
	"context"
	"time"

	"school-reservations/internal/domain/reservation"

	"github.com/google/uuid"
)

// OccupancyCache memoises the occupied modules of an equipment day.
//
// Writers read Version before loading from the database and pass it to Set.
// Set stores nothing when Invalidate ran for the key in between, so a read
// that raced a commit never repopulates the cache with the old occupancy.
type OccupancyCache interface {
	Get(ctx context.Context, key SlotKey) (reservation.ModuleSet, bool, error)
	Version(ctx context.Context, key SlotKey) (int64, error)
	Set(ctx context.Context, key SlotKey, version int64, modules reservation.ModuleSet) error
	Invalidate(ctx context.Context, keys ...SlotKey) error
}

type EventType string

const (
	EventReservationCreated       EventType = "reservation.created"
	EventReservationSeriesCreated EventType = "reservation.series_created"
	EventReservationUpdated       EventType = "reservation.updated"
	EventReservationStatusChanged EventType = "reservation.status_changed"
	EventReservationCancelled     EventType = "reservation.cancelled"
	EventReservationSeriesCancel  EventType = "reservation.series_cancelled"
	EventReservationDeleted       EventType = "reservation.deleted"
)

type ReservationEvent struct {
	Type           EventType          `json:"type"`
	ReservationIDs []uuid.UUID        `json:"reservation_ids"`
	SeriesID       *uuid.UUID         `json:"series_id,omitempty"`
	EquipmentID    uuid.UUID          `json:"equipment_id"`
	Dates          []reservation.Date `json:"dates"`
	Status         string             `json:"status,omitempty"`
	OccurredAt     time.Time          `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
}
