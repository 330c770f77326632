package queries

import (
	"context"

	"school-reservations/internal/infra"
	"school-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrTeacherNotFound = errs.New("teacher not found")

type TeacherQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*TeacherView, error)
	List(ctx context.Context) ([]*TeacherView, error)
}

type TeacherReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TeacherView, error)
	List(ctx context.Context) ([]*TeacherView, error)
}

type teacherQueriesImpl struct {
	readStore TeacherReadStore
}

func NewTeacherQueries(readStore TeacherReadStore) TeacherQueries {
	return &teacherQueriesImpl{readStore: readStore}
}

func (q *teacherQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*TeacherView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *teacherQueriesImpl) List(ctx context.Context) ([]*TeacherView, error) {
	return q.readStore.List(ctx)
}
