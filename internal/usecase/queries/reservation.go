package queries

import (
	"context"

	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/infra"
	"school-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrReservationNotFound = errs.New("reservation not found")

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, filter ReservationFilter, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error)
	ListGrouped(ctx context.Context, filter ReservationFilter) ([]*ReservationGroupView, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, filter ReservationFilter, after *Keyset, limit int32) ([]*ReservationView, error)
	FindForEquipment(ctx context.Context, equipmentID uuid.UUID, from, to reservation.Date) ([]*reservation.Reservation, error)
	FindActiveByDate(ctx context.Context, date reservation.Date, equipmentID *uuid.UUID) ([]*reservation.Reservation, error)
}

type reservationQueriesImpl struct {
	readStore ReservationReadStore
}

func NewReservationQueries(readStore ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{readStore: readStore}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return view, nil
}

// List pages newest first. One extra row is fetched to know whether a next
// page exists.
func (q *reservationQueriesImpl) List(ctx context.Context, filter ReservationFilter, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error) {
	if err := filter.validate(); err != nil {
		return nil, nil, err
	}
	limit = ValidateLimit(limit)

	var after *Keyset
	if cursor != nil && cursor.After != "" {
		k, err := DecodeAfterCursor(cursor.After)
		if err != nil {
			return nil, nil, errs.Mark(err, ErrInvalidCursor)
		}
		after = &k
	}

	rows, err := q.readStore.List(ctx, filter, after, int32(limit+1))
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(Keyset{CreatedAt: last.CreatedAt, ID: last.ID})}
		rows = rows[:limit]
	}
	return rows, next, nil
}

// ListGrouped returns the matching reservations bucketed by series, at most
// MaxListLimit rows.
func (q *reservationQueriesImpl) ListGrouped(ctx context.Context, filter ReservationFilter) ([]*ReservationGroupView, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}

	rows, err := q.readStore.List(ctx, filter, nil, MaxListLimit)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*ReservationView, len(rows))
	entities := make([]*reservation.Reservation, 0, len(rows))
	for _, v := range rows {
		byID[v.ID] = v
		entities = append(entities, v.toEntity())
	}

	groups := reservation.GroupBySeries(entities)
	out := make([]*ReservationGroupView, 0, len(groups))
	for _, g := range groups {
		members := make([]*ReservationView, len(g.Reservations))
		for i, r := range g.Reservations {
			members[i] = byID[r.ID()]
		}
		out = append(out, &ReservationGroupView{
			Key:          g.Key,
			SeriesID:     g.SeriesID,
			Frequency:    members[0].Frequency,
			FirstDate:    members[0].Date,
			LastDate:     members[len(members)-1].Date,
			Reservations: members,
		})
	}
	return out, nil
}

func (f ReservationFilter) validate() error {
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return errs.Mark(errs.New("from must not be after to"), ErrInvalidFilter)
	}
	if f.Status != nil && !f.Status.IsValid() {
		return errs.Mark(errs.Newf("unknown status %q", f.Status.String()), ErrInvalidFilter)
	}
	return nil
}

// toEntity rebuilds the fields grouping looks at.
func (v *ReservationView) toEntity() *reservation.Reservation {
	var series *reservation.Series
	if v.SeriesID != nil {
		series = &reservation.Series{ID: *v.SeriesID}
		if v.Frequency != nil {
			series.Frequency = reservation.Frequency(*v.Frequency)
		}
		if v.SeriesEndDate != nil {
			series.EndDate = *v.SeriesEndDate
		}
	}
	modules, _ := reservation.ParseModules(v.Modules)
	return reservation.ReconstructReservation(
		v.ID, v.EquipmentID, v.TeacherID,
		v.Date, modules, reservation.Status(v.Status), series,
		reservation.Observations{}, v.CreatedAt, v.UpdatedAt,
	)
}
