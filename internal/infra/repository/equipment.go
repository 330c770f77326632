package repository

import (
	"context"

	"school-reservations/internal/domain/equipment"
	"school-reservations/internal/infra"
	"school-reservations/internal/infra/pgsql"
	"school-reservations/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type EquipmentWriteQueries interface {
	CreateEquipment(ctx context.Context, db pgsql.DBTX, arg pgsql.CreateEquipmentParams) error
	UpdateEquipment(ctx context.Context, db pgsql.DBTX, arg pgsql.UpdateEquipmentParams) (int64, error)
	DeleteEquipment(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (int64, error)
}

type EquipmentRepository struct {
	queries EquipmentWriteQueries
	db      pgsql.DBTX
}

func NewEquipmentRepository(queries EquipmentWriteQueries, db pgsql.DBTX) *EquipmentRepository {
	return &EquipmentRepository{
		queries: queries,
		db:      db,
	}
}

func (r *EquipmentRepository) Create(ctx context.Context, tx pgsql.DBTX, e *equipment.Equipment) error {
	if err := r.queries.CreateEquipment(ctx, tx, converter.EquipmentToInfra(e)); err != nil {
		return infra.WrapRepoErr("failed to create equipment", err)
	}
	return nil
}

func (r *EquipmentRepository) Update(ctx context.Context, tx pgsql.DBTX, e *equipment.Equipment) error {
	affected, err := r.queries.UpdateEquipment(ctx, tx, converter.EquipmentToUpdateParams(e))
	if err != nil {
		return infra.WrapRepoErr("failed to update equipment", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("equipment not found", nil, infra.KindNotFound)
	}
	return nil
}

// Delete fails with KindForeignKeyViolated while reservations reference the
// equipment.
func (r *EquipmentRepository) Delete(ctx context.Context, tx pgsql.DBTX, id uuid.UUID) error {
	affected, err := r.queries.DeleteEquipment(ctx, tx, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete equipment", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("equipment not found", nil, infra.KindNotFound)
	}
	return nil
}
