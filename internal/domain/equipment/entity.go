package equipment

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

var (
	ErrEmptyName          = errors.New("equipment name is required")
	ErrNameTooLong        = errors.New("equipment name too long")
	ErrDescriptionTooLong = errors.New("equipment description too long")
)

// Equipment is a shared item that can be reserved by module. Unavailable
// equipment keeps its history but takes no new reservations.
type Equipment struct {
	id          uuid.UUID
	name        string
	description string
	location    string
	available   bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewEquipment(name, description, location string, available bool, now time.Time) (*Equipment, error) {
	e := &Equipment{
		id:        uuid.New(),
		createdAt: now,
	}
	if err := e.Update(name, description, location, available, now); err != nil {
		return nil, err
	}
	return e, nil
}

func ReconstructEquipment(id uuid.UUID, name, description, location string, available bool, createdAt, updatedAt time.Time) *Equipment {
	return &Equipment{
		id:          id,
		name:        name,
		description: description,
		location:    location,
		available:   available,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (e *Equipment) Update(name, description, location string, available bool, now time.Time) error {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	switch {
	case name == "":
		return ErrEmptyName
	case len(name) > MaxNameLength:
		return ErrNameTooLong
	case len(description) > MaxDescriptionLength:
		return ErrDescriptionTooLong
	}
	e.name = name
	e.description = description
	e.location = strings.TrimSpace(location)
	e.available = available
	e.updatedAt = now
	return nil
}

func (e *Equipment) ID() uuid.UUID        { return e.id }
func (e *Equipment) Name() string         { return e.name }
func (e *Equipment) Description() string  { return e.description }
func (e *Equipment) Location() string     { return e.location }
func (e *Equipment) IsAvailable() bool    { return e.available }
func (e *Equipment) CreatedAt() time.Time { return e.createdAt }
func (e *Equipment) UpdatedAt() time.Time { return e.updatedAt }
