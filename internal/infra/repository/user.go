package repository

import (
	"context"

	"school-reservations/internal/infra"
	"school-reservations/internal/infra/pgsql"

	"github.com/google/uuid"
)

type UserWriteQueries interface {
	UpdateUserLastLogin(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (int64, error)
}

type UserRepository struct {
	queries UserWriteQueries
}

func NewUserRepository(queries UserWriteQueries) *UserRepository {
	return &UserRepository{queries: queries}
}

// UpdateLastLogin stamps a successful sign-in. An account deactivated between
// the credential check and this write reports KindNotFound.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx pgsql.DBTX, userID uuid.UUID) error {
	n, err := r.queries.UpdateUserLastLogin(ctx, tx, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("no active user to stamp last login", nil, infra.KindNotFound)
	}
	return nil
}
