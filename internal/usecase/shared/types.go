package shared

import (
	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/domain/user"

	"github.com/google/uuid"
)

// Minimal snapshots for command read operations
type EquipmentSnapshot struct {
	ID        uuid.UUID
	Name      string
	Available bool
}

type TeacherSnapshot struct {
	ID       uuid.UUID
	FullName string
}

// SlotKey identifies one equipment day, the unit the occupancy cache works in.
type SlotKey struct {
	EquipmentID uuid.UUID
	Date        reservation.Date
}

// SlotKeysOf returns the distinct equipment days touched by reservations.
func SlotKeysOf(reservations ...*reservation.Reservation) []SlotKey {
	seen := map[SlotKey]struct{}{}
	keys := make([]SlotKey, 0, len(reservations))
	for _, r := range reservations {
		k := SlotKey{EquipmentID: r.EquipmentID(), Date: r.Date()}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

type CancelledReservation struct {
	ID uuid.UUID
	SlotKey
}

// Actor is the authenticated user a command runs on behalf of.
type Actor struct {
	UserID    uuid.UUID
	Role      user.Role
	TeacherID *uuid.UUID
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}

// CanActFor reports whether the actor may book or change reservations held by
// teacherID. Administrators act for everyone, teachers only for themselves.
func (a Actor) CanActFor(teacherID uuid.UUID) bool {
	if a.IsAdmin() {
		return true
	}
	return a.TeacherID != nil && *a.TeacherID == teacherID
}
