package password

import (
	"errors"

	"school-reservations/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

// MinLength matches the login form; shorter values never reach bcrypt.
const MinLength = 8

// MaxLength is the most bcrypt will read; longer inputs are truncated by it.
const MaxLength = 72

var (
	ErrTooShort = errs.New("password too short")
	ErrTooLong  = errs.New("password too long")
	ErrMismatch = errs.New("password mismatch")
)

// Hash is used by seeders and fixtures to provision accounts.
func Hash(plain string) (string, error) {
	if len(plain) < MinLength {
		return "", ErrTooShort
	}
	if len(plain) > MaxLength {
		return "", ErrTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", errs.Wrap(err, "failed to hash password")
	}
	return string(hashed), nil
}

// Verify returns ErrMismatch for a wrong password and a wrapped error when the
// stored hash is unusable.
func Verify(hashed, plain string) error {
	if hashed == "" || plain == "" {
		return ErrMismatch
	}
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return errs.Wrap(err, "stored password hash is invalid")
	}
}
