package readstore

import (
	"context"
	"strings"

	"school-reservations/internal/infra"
	"school-reservations/internal/infra/pgsql"
	"school-reservations/internal/pkg/pgconv"
	"school-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadQueries interface {
	FindUserByID(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.FindUserByIDRow, error)
	FindUserByEmail(ctx context.Context, db pgsql.DBTX, email string) (pgsql.User, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      pgsql.DBTX
}

func NewUserReadStore(queries UserReadQueries, db pgsql.DBTX) *UserReadStore {
	return &UserReadStore{queries: queries, db: db}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row, err := r.queries.FindUserByID(ctx, r.db, id)
	if err != nil {
		return nil, userLookupErr(err, "failed to find user by ID")
	}
	view := authorizedView(row.ID, row.Email, row.Role, row.IsActive)
	view.TeacherID = pgconv.UUIDPtrFromPgtype(row.TeacherID)
	view.LastLogin = pgconv.TimePtrFromPgtype(row.LastLogin)
	return view, nil
}

// FindByEmail prefers the active account when an address was reused after a
// deactivation. The hash is returned separately so it never reaches a view.
func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	row, err := r.queries.FindUserByEmail(ctx, r.db, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", userLookupErr(err, "failed to find user by email")
	}
	view := authorizedView(row.ID, row.Email, row.Role, row.IsActive)
	view.TeacherID = pgconv.UUIDPtrFromPgtype(row.TeacherID)
	view.LastLogin = pgconv.TimePtrFromPgtype(row.LastLogin)
	return view, row.PasswordHash, nil
}

func authorizedView(id uuid.UUID, email, role string, active bool) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{ID: id, Email: email, Role: role, IsActive: active}
}

func userLookupErr(err error, msg string) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr("user not found", err, infra.KindNotFound)
	}
	return infra.WrapRepoErr(msg, err)
}
