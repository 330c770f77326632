package readstore

import (
	"context"

	"school-reservations/internal/infra"
	"school-reservations/internal/infra/pgsql"
	"school-reservations/internal/pkg/pgconv"
	"school-reservations/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type EquipmentViewQueries interface {
	GetEquipmentByID(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.Equipment, error)
	ListEquipment(ctx context.Context, db pgsql.DBTX, available pgtype.Bool) ([]pgsql.Equipment, error)
}

type EquipmentReadStore struct {
	queries EquipmentViewQueries
	db      pgsql.DBTX
}

func NewEquipmentReadStore(queries EquipmentViewQueries, db pgsql.DBTX) *EquipmentReadStore {
	return &EquipmentReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *EquipmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.EquipmentView, error) {
	row, err := r.queries.GetEquipmentByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("equipment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find equipment by ID", err)
	}
	return toEquipmentView(row), nil
}

func (r *EquipmentReadStore) List(ctx context.Context, available *bool) ([]*queries.EquipmentView, error) {
	rows, err := r.queries.ListEquipment(ctx, r.db, pgconv.BoolPtrToPgtype(available))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list equipment", err)
	}

	result := make([]*queries.EquipmentView, len(rows))
	for i, row := range rows {
		result[i] = toEquipmentView(row)
	}
	return result, nil
}

func toEquipmentView(row pgsql.Equipment) *queries.EquipmentView {
	return &queries.EquipmentView{
		ID:          row.ID,
		Name:        row.Name,
		Description: pgconv.StringPtrFromPgtype(row.Description),
		Location:    pgconv.StringPtrFromPgtype(row.Location),
		Available:   row.Available,
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
