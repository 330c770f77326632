package queries

import (
	"context"

	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/infra"
	"school-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrEquipmentNotFound = errs.New("equipment not found")

type EquipmentQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*EquipmentView, error)
	List(ctx context.Context, available *bool) ([]*EquipmentView, error)
	Stats(ctx context.Context, id uuid.UUID, from, to reservation.Date) (*EquipmentStatsView, error)
}

type EquipmentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*EquipmentView, error)
	List(ctx context.Context, available *bool) ([]*EquipmentView, error)
}

type equipmentQueriesImpl struct {
	readStore    EquipmentReadStore
	reservations ReservationReadStore
}

func NewEquipmentQueries(readStore EquipmentReadStore, reservations ReservationReadStore) EquipmentQueries {
	return &equipmentQueriesImpl{
		readStore:    readStore,
		reservations: reservations,
	}
}

func (q *equipmentQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*EquipmentView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *equipmentQueriesImpl) List(ctx context.Context, available *bool) ([]*EquipmentView, error) {
	return q.readStore.List(ctx, available)
}

// Stats summarises confirmed usage of one equipment between from and to.
func (q *equipmentQueriesImpl) Stats(ctx context.Context, id uuid.UUID, from, to reservation.Date) (*EquipmentStatsView, error) {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errs.Mark(errs.New("from must not be after to"), ErrInvalidFilter)
	}
	if _, err := q.GetByID(ctx, id); err != nil {
		return nil, err
	}

	rows, err := q.reservations.FindForEquipment(ctx, id, from, to)
	if err != nil {
		return nil, err
	}

	stats := reservation.ComputeEquipmentStats(id, rows, from, to)
	return &EquipmentStatsView{
		EquipmentID:       stats.EquipmentID,
		From:              stats.From,
		To:                stats.To,
		TotalReservations: stats.TotalReservations,
		TotalModules:      stats.TotalModules,
		DistinctDays:      stats.DistinctDays,
		DistinctTeachers:  stats.DistinctTeachers,
		AverageModules:    stats.AverageModules,
	}, nil
}
