package teacher

import (
	"errors"
	"strings"
	"time"

	"school-reservations/internal/domain/user"

	"github.com/google/uuid"
)

const MaxNameLength = 80

var (
	ErrEmptyName   = errors.New("teacher first and last name are required")
	ErrNameTooLong = errors.New("teacher name too long")
)

type Teacher struct {
	id        uuid.UUID
	firstName string
	lastName  string
	email     *user.Email
	course    string
	subject   string
	createdAt time.Time
	updatedAt time.Time
}

type Profile struct {
	FirstName string
	LastName  string
	Email     string
	Course    string
	Subject   string
}

func NewTeacher(p Profile, now time.Time) (*Teacher, error) {
	t := &Teacher{
		id:        uuid.New(),
		createdAt: now,
	}
	if err := t.Update(p, now); err != nil {
		return nil, err
	}
	return t, nil
}

func ReconstructTeacher(id uuid.UUID, p Profile, createdAt, updatedAt time.Time) *Teacher {
	t := &Teacher{
		id:        id,
		firstName: p.FirstName,
		lastName:  p.LastName,
		course:    p.Course,
		subject:   p.Subject,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
	if email, err := user.NewEmail(p.Email); err == nil {
		t.email = &email
	}
	return t
}

// Update replaces the profile. The email is optional but must be well formed
// when present.
func (t *Teacher) Update(p Profile, now time.Time) error {
	first := strings.TrimSpace(p.FirstName)
	last := strings.TrimSpace(p.LastName)
	if first == "" || last == "" {
		return ErrEmptyName
	}
	if len(first) > MaxNameLength || len(last) > MaxNameLength {
		return ErrNameTooLong
	}

	var email *user.Email
	if strings.TrimSpace(p.Email) != "" {
		e, err := user.NewEmail(p.Email)
		if err != nil {
			return err
		}
		email = &e
	}

	t.firstName = first
	t.lastName = last
	t.email = email
	t.course = strings.TrimSpace(p.Course)
	t.subject = strings.TrimSpace(p.Subject)
	t.updatedAt = now
	return nil
}

func (t *Teacher) FullName() string {
	return t.firstName + " " + t.lastName
}

func (t *Teacher) ID() uuid.UUID        { return t.id }
func (t *Teacher) FirstName() string    { return t.firstName }
func (t *Teacher) LastName() string     { return t.lastName }
func (t *Teacher) Email() *user.Email   { return t.email }
func (t *Teacher) Course() string       { return t.course }
func (t *Teacher) Subject() string      { return t.subject }
func (t *Teacher) CreatedAt() time.Time { return t.createdAt }
func (t *Teacher) UpdatedAt() time.Time { return t.updatedAt }
