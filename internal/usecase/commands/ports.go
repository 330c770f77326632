package commands

import (
	"context"
	"log/slog"

	"school-reservations/internal/usecase/shared"
)

// sideEffects runs after a reservation transaction commits. Failures are
// logged and never reach the caller; the database is already consistent.
type sideEffects struct {
	cache  shared.OccupancyCache
	events shared.EventPublisher
}

// The request context is detached from cancellation: a client that hangs up
// after the commit must not leave stale occupancy behind.
func (s sideEffects) afterCommit(ctx context.Context, keys []shared.SlotKey, event shared.ReservationEvent) {
	ctx = context.WithoutCancel(ctx)
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		slog.Warn("failed to invalidate occupancy cache", "keys", len(keys), "error", err.Error())
	}
	if err := s.events.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish reservation event", "type", string(event.Type), "error", err.Error())
	}
}
