package user

import (
	"errors"
	"net/mail"
	"strings"

	"school-reservations/internal/pkg/password"
)

var (
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidRole     = errors.New("invalid role")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes long")
)

// Email is stored lower-cased so lookups by address are case-insensitive.
type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Email{}, ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return Email{}, ErrInvalidEmail
	}
	at := strings.LastIndexByte(s, '@')
	if !strings.Contains(s[at+1:], ".") {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string  { return e.value }
func (e Email) Domain() string { return e.value[strings.LastIndexByte(e.value, '@')+1:] }

type Password struct {
	value string
}

func NewPassword(s string) (Password, error) {
	switch {
	case len(s) < password.MinLength:
		return Password{}, ErrPasswordTooWeak
	case len(s) > password.MaxLength:
		return Password{}, ErrPasswordTooLong
	}
	return Password{value: s}, nil
}

func (p Password) Value() string {
	return p.value
}
