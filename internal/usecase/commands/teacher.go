package commands

import (
	"context"

	"school-reservations/internal/domain/teacher"
	"school-reservations/internal/infra"
	"school-reservations/internal/pkg/clock"
	"school-reservations/internal/pkg/errs"
	"school-reservations/internal/pkg/patch"
	"school-reservations/internal/usecase/queries"
	"school-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

type UpdateTeacherRequest struct {
	FirstName *string
	LastName  *string
	Email     *string
	Course    *string
	Subject   *string
}

type TeacherCommands interface {
	Create(ctx context.Context, profile teacher.Profile) (*queries.TeacherView, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateTeacherRequest) (*queries.TeacherView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type teacherCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.TeacherReadStore
	clock     clock.Clock
}

func NewTeacherCommands(uow shared.UnitOfWork, readStore queries.TeacherReadStore, clk clock.Clock) TeacherCommands {
	return &teacherCommandsImpl{
		uow:       uow,
		readStore: readStore,
		clock:     clk,
	}
}

func (uc *teacherCommandsImpl) Create(ctx context.Context, profile teacher.Profile) (*queries.TeacherView, error) {
	t, err := teacher.NewTeacher(profile, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return teacherStorageErr(tx.Teachers().Create(ctx, tx.DB(), t))
	})
	if err != nil {
		return nil, err
	}

	return uc.readBack(ctx, t.ID())
}

func (uc *teacherCommandsImpl) Update(ctx context.Context, id uuid.UUID, req UpdateTeacherRequest) (*queries.TeacherView, error) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := uc.readStore.FindByID(ctx, id)
		if err != nil {
			return notFoundAs(err, errs.ErrTeacherNotFound)
		}

		existing := teacher.Profile{
			FirstName: current.FirstName,
			LastName:  current.LastName,
			Email:     patch.Deref(current.Email),
			Course:    patch.Deref(current.Course),
			Subject:   patch.Deref(current.Subject),
		}
		t := teacher.ReconstructTeacher(current.ID, existing, current.CreatedAt, current.UpdatedAt)
		err = t.Update(teacher.Profile{
			FirstName: patch.Text(req.FirstName, existing.FirstName),
			LastName:  patch.Text(req.LastName, existing.LastName),
			Email:     patch.Text(req.Email, existing.Email),
			Course:    patch.Text(req.Course, existing.Course),
			Subject:   patch.Text(req.Subject, existing.Subject),
		}, uc.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		return teacherStorageErr(tx.Teachers().Update(ctx, tx.DB(), t))
	})
	if err != nil {
		return nil, err
	}

	return uc.readBack(ctx, id)
}

func (uc *teacherCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return teacherStorageErr(tx.Teachers().Delete(ctx, tx.DB(), id))
	})
}

func (uc *teacherCommandsImpl) readBack(ctx context.Context, id uuid.UUID) (*queries.TeacherView, error) {
	view, err := uc.readStore.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func teacherStorageErr(err error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		return errs.ErrTeacherNotFound
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.ErrTeacherEmailTaken
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.ErrTeacherInUse
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}
