package commands

import (
	"context"

	"school-reservations/internal/domain/equipment"
	"school-reservations/internal/infra"
	"school-reservations/internal/pkg/clock"
	"school-reservations/internal/pkg/errs"
	"school-reservations/internal/pkg/patch"
	"school-reservations/internal/usecase/queries"
	"school-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateEquipmentRequest struct {
	Name        string
	Description string
	Location    string
	Available   bool
}

type UpdateEquipmentRequest struct {
	Name        *string
	Description *string
	Location    *string
	Available   *bool
}

type EquipmentCommands interface {
	Create(ctx context.Context, req CreateEquipmentRequest) (*queries.EquipmentView, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateEquipmentRequest) (*queries.EquipmentView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type equipmentCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.EquipmentReadStore
	clock     clock.Clock
}

func NewEquipmentCommands(uow shared.UnitOfWork, readStore queries.EquipmentReadStore, clk clock.Clock) EquipmentCommands {
	return &equipmentCommandsImpl{
		uow:       uow,
		readStore: readStore,
		clock:     clk,
	}
}

func (uc *equipmentCommandsImpl) Create(ctx context.Context, req CreateEquipmentRequest) (*queries.EquipmentView, error) {
	e, err := equipment.NewEquipment(req.Name, req.Description, req.Location, req.Available, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return equipmentStorageErr(tx.Equipment().Create(ctx, tx.DB(), e))
	})
	if err != nil {
		return nil, err
	}

	return uc.readBack(ctx, e.ID())
}

func (uc *equipmentCommandsImpl) Update(ctx context.Context, id uuid.UUID, req UpdateEquipmentRequest) (*queries.EquipmentView, error) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := uc.readStore.FindByID(ctx, id)
		if err != nil {
			return notFoundAs(err, errs.ErrEquipmentNotFound)
		}

		description := patch.Deref(current.Description)
		location := patch.Deref(current.Location)
		e := equipment.ReconstructEquipment(current.ID, current.Name, description, location, current.Available, current.CreatedAt, current.UpdatedAt)
		err = e.Update(
			patch.Text(req.Name, current.Name),
			patch.Text(req.Description, description),
			patch.Text(req.Location, location),
			patch.Coalesce(req.Available, current.Available),
			uc.clock.Now(),
		)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		return equipmentStorageErr(tx.Equipment().Update(ctx, tx.DB(), e))
	})
	if err != nil {
		return nil, err
	}

	return uc.readBack(ctx, id)
}

// Delete refuses equipment that still has reservations; mark it unavailable
// instead.
func (uc *equipmentCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return equipmentStorageErr(tx.Equipment().Delete(ctx, tx.DB(), id))
	})
}

func (uc *equipmentCommandsImpl) readBack(ctx context.Context, id uuid.UUID) (*queries.EquipmentView, error) {
	view, err := uc.readStore.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func equipmentStorageErr(err error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		return errs.ErrEquipmentNotFound
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.ErrEquipmentNameTaken
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.ErrEquipmentInUse
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}
