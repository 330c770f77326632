//go:build unit || e2e

package builder

import (
	"time"

	"school-reservations/internal/domain/user"
	"school-reservations/internal/infra/pgsql"
	"school-reservations/internal/pkg/pgconv"
	"school-reservations/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// UserBuilder defaults to an active teacher account linked to a fresh teacher.
type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	TeacherID    *uuid.UUID
	IsActive     bool
	LastLogin    *time.Time
}

func NewUserBuilder() *UserBuilder {
	teacherID := uuid.New()
	return &UserBuilder{
		ID:           uuid.New(),
		Email:        "teacher@school.cl",
		PasswordHash: "hashed_password",
		Role:         string(user.RoleTeacher),
		TeacherID:    &teacherID,
		IsActive:     true,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	u.PasswordHash = hash
	return u
}

func (u *UserBuilder) WithTeacherID(teacherID *uuid.UUID) *UserBuilder {
	u.TeacherID = teacherID
	return u
}

func (u *UserBuilder) WithoutTeacher() *UserBuilder {
	u.TeacherID = nil
	return u
}

func (u *UserBuilder) WithLastLogin(at time.Time) *UserBuilder {
	u.LastLogin = &at
	return u
}

func (u *UserBuilder) AsAdmin() *UserBuilder {
	u.Role = string(user.RoleAdmin)
	u.TeacherID = nil
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}

// BuildDomain goes through the domain constructors, so invalid fields surface
// as the domain's own errors.
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}
	account, err := user.NewUser(email, u.PasswordHash, role, u.TeacherID)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		account.Deactivate(time.Now())
	}
	return account, nil
}

func (u *UserBuilder) BuildInfra() pgsql.User {
	now := time.Now()
	lastLogin := pgtype.Timestamptz{}
	if u.LastLogin != nil {
		lastLogin = pgconv.TimeToPgtype(*u.LastLogin)
	}
	return pgsql.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		TeacherID:    pgconv.UUIDPtrToPgtype(u.TeacherID),
		LastLogin:    lastLogin,
		IsActive:     u.IsActive,
		CreatedAt:    pgconv.TimeToPgtype(now),
		UpdatedAt:    pgconv.TimeToPgtype(now),
	}
}

func (u *UserBuilder) BuildReadModel() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		TeacherID: u.TeacherID,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
	}
}
