package queries

import (
	"time"

	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidCursor = errs.New("invalid cursor")
	ErrInvalidFilter = errs.New("invalid filter")
)

// ReservationView represents read-optimized reservation data joined with the
// equipment and teacher names
type ReservationView struct {
	ID            uuid.UUID          `json:"id"`
	EquipmentID   uuid.UUID          `json:"equipment_id"`
	EquipmentName string             `json:"equipment_name"`
	TeacherID     uuid.UUID          `json:"teacher_id"`
	TeacherName   string             `json:"teacher_name"`
	Date          reservation.Date   `json:"date"`
	Modules       []int              `json:"modules"`
	Schedule      string             `json:"schedule"`
	Status        string             `json:"status"`
	IsRecurring   bool               `json:"is_recurring"`
	SeriesID      *uuid.UUID         `json:"series_id,omitempty"`
	Frequency     *string            `json:"frequency,omitempty"`
	SeriesEndDate *reservation.Date  `json:"series_end_date,omitempty"`
	Observations  *string            `json:"observations,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type ReservationFilter struct {
	EquipmentID *uuid.UUID
	TeacherID   *uuid.UUID
	Status      *reservation.Status
	From        reservation.Date
	To          reservation.Date
	SeriesID    *uuid.UUID
}

// Keyset is the position after which the next page starts.
type Keyset struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

type ReservationGroupView struct {
	Key          string             `json:"key"`
	SeriesID     *uuid.UUID         `json:"series_id,omitempty"`
	Frequency    *string            `json:"frequency,omitempty"`
	FirstDate    reservation.Date   `json:"first_date"`
	LastDate     reservation.Date   `json:"last_date"`
	Reservations []*ReservationView `json:"reservations"`
}

// EquipmentView represents read-optimized equipment data
type EquipmentView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TeacherView struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Email     *string   `json:"email,omitempty"`
	Course    *string   `json:"course,omitempty"`
	Subject   *string   `json:"subject,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	TeacherID *uuid.UUID `json:"teacher_id,omitempty"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type OccupancyView struct {
	EquipmentID     uuid.UUID        `json:"equipment_id"`
	Date            reservation.Date `json:"date"`
	OccupiedModules []int            `json:"occupied_modules"`
}

type FreeModulesView struct {
	EquipmentID uuid.UUID        `json:"equipment_id"`
	Date        reservation.Date `json:"date"`
	FreeModules []int            `json:"free_modules"`
}

type AvailabilityView struct {
	Available          bool  `json:"available"`
	OccupiedModules    []int `json:"occupied_modules"`
	ConflictingModules []int `json:"conflicting_modules"`
}

type SeriesPreviewView struct {
	Dates            []reservation.Date `json:"dates"`
	Valid            bool               `json:"valid"`
	ConflictingDates []reservation.Date `json:"conflicting_dates"`
	Message          string             `json:"message,omitempty"`
}

type ModuleSlotView struct {
	Module  int    `json:"module"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Elapsed bool   `json:"elapsed"`
	Current bool   `json:"current"`
}

type ScheduleView struct {
	Date          reservation.Date `json:"date"`
	CurrentModule int              `json:"current_module"`
	Modules       []ModuleSlotView `json:"modules"`
}

type EquipmentStatsView struct {
	EquipmentID       uuid.UUID        `json:"equipment_id"`
	From              reservation.Date `json:"from"`
	To                reservation.Date `json:"to"`
	TotalReservations int              `json:"total_reservations"`
	TotalModules      int              `json:"total_modules"`
	DistinctDays      int              `json:"distinct_days"`
	DistinctTeachers  int              `json:"distinct_teachers"`
	AverageModules    float64          `json:"average_modules"`
}
