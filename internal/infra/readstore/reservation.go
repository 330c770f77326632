package readstore

import (
	"context"

	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/infra"
	"school-reservations/internal/infra/pgsql"
	"school-reservations/internal/infra/repository/converter"
	"school-reservations/internal/pkg/pgconv"
	"school-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationViewQueries interface {
	GetReservationByID(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.ReservationDetailRow, error)
	ListReservationDetails(ctx context.Context, db pgsql.DBTX, arg pgsql.ListReservationDetailsParams) ([]pgsql.ReservationDetailRow, error)
	GetReservationForUpdate(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.Reservation, error)
	ListReservationsForEquipment(ctx context.Context, db pgsql.DBTX, arg pgsql.ListReservationsForEquipmentParams) ([]pgsql.Reservation, error)
	ListActiveReservationsByDate(ctx context.Context, db pgsql.DBTX, arg pgsql.ListActiveReservationsByDateParams) ([]pgsql.Reservation, error)
	ListReservationsBySeries(ctx context.Context, db pgsql.DBTX, seriesID uuid.UUID) ([]pgsql.Reservation, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      pgsql.DBTX
}

func NewReservationReadStore(queries ReservationViewQueries, db pgsql.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return rowToReservationView(row), nil
}

// List returns up to limit rows matching filter, newest first, starting after
// the keyset when one is given.
func (r *ReservationReadStore) List(ctx context.Context, filter queries.ReservationFilter, after *queries.Keyset, limit int32) ([]*queries.ReservationView, error) {
	params := pgsql.ListReservationDetailsParams{
		EquipmentID: pgconv.UUIDPtrToPgtype(filter.EquipmentID),
		TeacherID:   pgconv.UUIDPtrToPgtype(filter.TeacherID),
		DateFrom:    converter.DateToPgtype(filter.From),
		DateTo:      converter.DateToPgtype(filter.To),
		SeriesID:    pgconv.UUIDPtrToPgtype(filter.SeriesID),
		Limit:       limit,
	}
	if filter.Status != nil {
		params.Status = pgconv.StringToPgtype(filter.Status.String())
	}
	if after != nil {
		params.AfterCreatedAt = pgconv.TimeToPgtype(after.CreatedAt)
		params.AfterID = pgconv.UUIDToPgtype(after.ID)
	}

	rows, err := r.queries.ListReservationDetails(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}

	result := make([]*queries.ReservationView, len(rows))
	for i, row := range rows {
		result[i] = rowToReservationView(row)
	}
	return result, nil
}

// FindForUpdate loads the entity and, inside a transaction, locks its row.
func (r *ReservationReadStore) FindForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load reservation", err)
	}
	return converter.ReservationFromInfra(row), nil
}

func (r *ReservationReadStore) FindForEquipment(ctx context.Context, equipmentID uuid.UUID, from, to reservation.Date) ([]*reservation.Reservation, error) {
	rows, err := r.queries.ListReservationsForEquipment(ctx, r.db, pgsql.ListReservationsForEquipmentParams{
		EquipmentID: equipmentID,
		DateFrom:    converter.DateToPgtype(from),
		DateTo:      converter.DateToPgtype(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list equipment reservations", err)
	}
	return converter.ReservationsFromInfra(rows), nil
}

// FindActiveByDate returns the non-cancelled reservations of date, for one
// equipment or for all of them when equipmentID is nil.
func (r *ReservationReadStore) FindActiveByDate(ctx context.Context, date reservation.Date, equipmentID *uuid.UUID) ([]*reservation.Reservation, error) {
	rows, err := r.queries.ListActiveReservationsByDate(ctx, r.db, pgsql.ListActiveReservationsByDateParams{
		Date:        converter.DateToPgtype(date),
		EquipmentID: pgconv.UUIDPtrToPgtype(equipmentID),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by date", err)
	}
	return converter.ReservationsFromInfra(rows), nil
}

func (r *ReservationReadStore) FindBySeries(ctx context.Context, seriesID uuid.UUID) ([]*reservation.Reservation, error) {
	rows, err := r.queries.ListReservationsBySeries(ctx, r.db, seriesID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list series reservations", err)
	}
	return converter.ReservationsFromInfra(rows), nil
}

func rowToReservationView(row pgsql.ReservationDetailRow) *queries.ReservationView {
	modules := converter.ModulesFromInfra(row.Modules)
	view := &queries.ReservationView{
		ID:            row.ID,
		EquipmentID:   row.EquipmentID,
		EquipmentName: row.EquipmentName,
		TeacherID:     row.TeacherID,
		TeacherName:   row.TeacherName,
		Date:          converter.DateFromPgtype(row.Date),
		Modules:       modules.Ints(),
		Schedule:      reservation.ScheduleLabel(modules),
		Status:        row.Status,
		IsRecurring:   row.SeriesID.Valid,
		SeriesID:      pgconv.UUIDPtrFromPgtype(row.SeriesID),
		Frequency:     pgconv.StringPtrFromPgtype(row.Frequency),
		Observations:  pgconv.StringPtrFromPgtype(row.Observations),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
	}
	if row.SeriesEndDate.Valid {
		end := converter.DateFromPgtype(row.SeriesEndDate)
		view.SeriesEndDate = &end
	}
	return view
}

