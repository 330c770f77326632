package readstore

import (
	"context"

	"school-reservations/internal/infra"
	"school-reservations/internal/infra/pgsql"
	"school-reservations/internal/pkg/pgconv"
	"school-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type TeacherViewQueries interface {
	GetTeacherByID(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.Teacher, error)
	ListTeachers(ctx context.Context, db pgsql.DBTX) ([]pgsql.Teacher, error)
}

type TeacherReadStore struct {
	queries TeacherViewQueries
	db      pgsql.DBTX
}

func NewTeacherReadStore(queries TeacherViewQueries, db pgsql.DBTX) *TeacherReadStore {
	return &TeacherReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *TeacherReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.TeacherView, error) {
	row, err := r.queries.GetTeacherByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("teacher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find teacher by ID", err)
	}
	return toTeacherView(row), nil
}

func (r *TeacherReadStore) List(ctx context.Context) ([]*queries.TeacherView, error) {
	rows, err := r.queries.ListTeachers(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list teachers", err)
	}

	result := make([]*queries.TeacherView, len(rows))
	for i, row := range rows {
		result[i] = toTeacherView(row)
	}
	return result, nil
}

func toTeacherView(row pgsql.Teacher) *queries.TeacherView {
	return &queries.TeacherView{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		FullName:  row.FirstName + " " + row.LastName,
		Email:     pgconv.StringPtrFromPgtype(row.Email),
		Course:    pgconv.StringPtrFromPgtype(row.Course),
		Subject:   pgconv.StringPtrFromPgtype(row.Subject),
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
