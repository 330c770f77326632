package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTeacherLinkRequired = errors.New("teacher accounts must be linked to a teacher")
	ErrAccountInactive     = errors.New("account is inactive")
)

// User is an account that can sign in. Teachers are linked to their teacher
// record; administrators may have none.
type User struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	role         Role
	teacherID    *uuid.UUID
	lastLogin    *time.Time
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email Email, passwordHash string, role Role, teacherID *uuid.UUID) (*User, error) {
	if err := checkTeacherLink(role, teacherID); err != nil {
		return nil, err
	}
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		teacherID:    teacherID,
		isActive:     true,
	}, nil
}

func checkTeacherLink(role Role, teacherID *uuid.UUID) error {
	if role.RequiresTeacher() && (teacherID == nil || *teacherID == uuid.Nil) {
		return ErrTeacherLinkRequired
	}
	return nil
}

// CheckSignIn validates that an account with this role and state may obtain
// a token.
func CheckSignIn(role Role, teacherID *uuid.UUID, active bool) error {
	if !active {
		return ErrAccountInactive
	}
	return checkTeacherLink(role, teacherID)
}

func (u *User) CanSignIn() error {
	return CheckSignIn(u.role, u.teacherID, u.isActive)
}

func (u *User) RecordLogin(at time.Time) {
	u.lastLogin = &at
	u.updatedAt = at
}

func (u *User) Deactivate(at time.Time) {
	u.isActive = false
	u.updatedAt = at
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Email() Email          { return u.email }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) Role() Role            { return u.role }
func (u *User) TeacherID() *uuid.UUID { return u.teacherID }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) IsActive() bool        { return u.isActive }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }
