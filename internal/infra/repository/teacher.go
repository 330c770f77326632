package repository

import (
	"context"

	"school-reservations/internal/domain/teacher"
	"school-reservations/internal/infra"
	"school-reservations/internal/infra/pgsql"
	"school-reservations/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type TeacherWriteQueries interface {
	CreateTeacher(ctx context.Context, db pgsql.DBTX, arg pgsql.CreateTeacherParams) error
	UpdateTeacher(ctx context.Context, db pgsql.DBTX, arg pgsql.UpdateTeacherParams) (int64, error)
	DeleteTeacher(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (int64, error)
}

type TeacherRepository struct {
	queries TeacherWriteQueries
	db      pgsql.DBTX
}

func NewTeacherRepository(queries TeacherWriteQueries, db pgsql.DBTX) *TeacherRepository {
	return &TeacherRepository{
		queries: queries,
		db:      db,
	}
}

func (r *TeacherRepository) Create(ctx context.Context, tx pgsql.DBTX, t *teacher.Teacher) error {
	if err := r.queries.CreateTeacher(ctx, tx, converter.TeacherToInfra(t)); err != nil {
		return infra.WrapRepoErr("failed to create teacher", err)
	}
	return nil
}

func (r *TeacherRepository) Update(ctx context.Context, tx pgsql.DBTX, t *teacher.Teacher) error {
	affected, err := r.queries.UpdateTeacher(ctx, tx, converter.TeacherToUpdateParams(t))
	if err != nil {
		return infra.WrapRepoErr("failed to update teacher", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("teacher not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *TeacherRepository) Delete(ctx context.Context, tx pgsql.DBTX, id uuid.UUID) error {
	affected, err := r.queries.DeleteTeacher(ctx, tx, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete teacher", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("teacher not found", nil, infra.KindNotFound)
	}
	return nil
}
