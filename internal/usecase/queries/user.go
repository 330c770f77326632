package queries

import (
	"context"
	"errors"

	"school-reservations/internal/domain/user"
	"school-reservations/internal/infra"
	"school-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errs.New("user not found")
	ErrUserInactive = errs.New("user inactive")
)

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	// FindByEmail also returns the stored password hash for login.
	FindByEmail(ctx context.Context, email string) (*AuthorizedUserView, string, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{readStore: readStore}
}

// GetCurrentUser re-reads the account behind a token, so a user deactivated
// after sign-in stops resolving even while the token is still valid.
func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error) {
	account, err := q.readStore.FindByID(ctx, userID)
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return nil, ErrUserNotFound
	case err != nil:
		return nil, errs.Wrapf(err, "load user %s", userID)
	}

	err = user.CheckSignIn(user.Role(account.Role), account.TeacherID, account.IsActive)
	switch {
	case errors.Is(err, user.ErrAccountInactive):
		return nil, ErrUserInactive
	case err != nil:
		return nil, errs.Mark(err, ErrUserNotFound)
	}
	return account, nil
}
