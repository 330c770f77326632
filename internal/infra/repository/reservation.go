package repository

import (
	"context"
	"time"

	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/infra"
	"school-reservations/internal/infra/pgsql"
	"school-reservations/internal/infra/repository/converter"
	"school-reservations/internal/pkg/pgconv"
	"school-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, db pgsql.DBTX, arg pgsql.CreateReservationParams) error
	InsertReservationSlots(ctx context.Context, db pgsql.DBTX, arg pgsql.InsertReservationSlotsParams) (int64, error)
	DeleteReservationSlots(ctx context.Context, db pgsql.DBTX, reservationID uuid.UUID) error
	UpdateReservation(ctx context.Context, db pgsql.DBTX, arg pgsql.UpdateReservationParams) (int64, error)
	UpdateReservationStatus(ctx context.Context, db pgsql.DBTX, arg pgsql.UpdateReservationStatusParams) (int64, error)
	CancelReservationsBySeries(ctx context.Context, db pgsql.DBTX, arg pgsql.CancelReservationsBySeriesParams) ([]pgsql.CancelReservationsBySeriesRow, error)
	DeleteReservationSlotsBySeries(ctx context.Context, db pgsql.DBTX, seriesID uuid.UUID) error
	DeleteReservation(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (int64, error)
}

// ReservationRepository keeps reservation_slots in step with the reservation
// rows: a non-cancelled reservation owns one slot per module.
type ReservationRepository struct {
	queries ReservationWriteQueries
	db      pgsql.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db pgsql.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, tx pgsql.DBTX, res *reservation.Reservation) error {
	if err := r.queries.CreateReservation(ctx, tx, converter.ReservationToInfra(res)); err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	if res.IsCancelled() {
		return nil
	}
	if _, err := r.queries.InsertReservationSlots(ctx, tx, converter.SlotsOf(res)); err != nil {
		return infra.WrapRepoErr("failed to claim reservation slots", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, tx pgsql.DBTX, res *reservation.Reservation) error {
	affected, err := r.queries.UpdateReservation(ctx, tx, converter.ReservationToUpdateParams(res))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}

	if err := r.queries.DeleteReservationSlots(ctx, tx, res.ID()); err != nil {
		return infra.WrapRepoErr("failed to release reservation slots", err)
	}
	if _, err := r.queries.InsertReservationSlots(ctx, tx, converter.SlotsOf(res)); err != nil {
		return infra.WrapRepoErr("failed to claim reservation slots", err)
	}
	return nil
}

// UpdateStatus persists a status change and releases the slots when the
// reservation was cancelled.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, tx pgsql.DBTX, res *reservation.Reservation) error {
	affected, err := r.queries.UpdateReservationStatus(ctx, tx, pgsql.UpdateReservationStatusParams{
		ID:        res.ID(),
		Status:    res.Status().String(),
		UpdatedAt: pgconv.TimeToPgtype(res.UpdatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}

	if res.IsCancelled() {
		if err := r.queries.DeleteReservationSlots(ctx, tx, res.ID()); err != nil {
			return infra.WrapRepoErr("failed to release reservation slots", err)
		}
	}
	return nil
}

// CancelSeries cancels every live occurrence of the series and returns the
// ones it changed. Already cancelled occurrences are left alone.
func (r *ReservationRepository) CancelSeries(ctx context.Context, tx pgsql.DBTX, seriesID uuid.UUID, at time.Time) ([]shared.CancelledReservation, error) {
	if err := r.queries.DeleteReservationSlotsBySeries(ctx, tx, seriesID); err != nil {
		return nil, infra.WrapRepoErr("failed to release series slots", err)
	}

	rows, err := r.queries.CancelReservationsBySeries(ctx, tx, pgsql.CancelReservationsBySeriesParams{
		SeriesID:  seriesID,
		UpdatedAt: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to cancel series", err)
	}

	cancelled := make([]shared.CancelledReservation, len(rows))
	for i, row := range rows {
		cancelled[i] = shared.CancelledReservation{
			ID: row.ID,
			SlotKey: shared.SlotKey{
				EquipmentID: row.EquipmentID,
				Date:        converter.DateFromPgtype(row.Date),
			},
		}
	}
	return cancelled, nil
}

// Delete removes the row; its slots go with it through the foreign key.
func (r *ReservationRepository) Delete(ctx context.Context, tx pgsql.DBTX, id uuid.UUID) error {
	affected, err := r.queries.DeleteReservation(ctx, tx, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}
