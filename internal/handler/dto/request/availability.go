package request

import (
	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type OccupiedQuery struct {
	Date        string `form:"date"`
	EquipmentID string `form:"equipment_id" binding:"omitempty,uuid"`
}

func (q OccupiedQuery) Parse() (reservation.Date, *uuid.UUID, error) {
	date, err := ParseDate("date", q.Date)
	if err != nil {
		return reservation.Date{}, nil, err
	}
	return date, optionalUUID(q.EquipmentID), nil
}

type FreeQuery struct {
	Date        string `form:"date"`
	EquipmentID string `form:"equipment_id" binding:"required,uuid"`
}

type CheckAvailabilityRequest struct {
	EquipmentID uuid.UUID  `json:"equipment_id"`
	Date        string     `json:"date"`
	Modules     []int      `json:"modules"`
	ExcludeID   *uuid.UUID `json:"exclude_id,omitempty"`
}

func (r CheckAvailabilityRequest) ToQuery() (queries.CheckAvailabilityRequest, error) {
	date, err := ParseDate("date", r.Date)
	if err != nil {
		return queries.CheckAvailabilityRequest{}, err
	}
	return queries.CheckAvailabilityRequest{
		EquipmentID: r.EquipmentID,
		Date:        date,
		Modules:     r.Modules,
		ExcludeID:   r.ExcludeID,
	}, nil
}

type SeriesPreviewRequest struct {
	EquipmentID   uuid.UUID `json:"equipment_id"`
	TeacherID     uuid.UUID `json:"teacher_id"`
	Date          string    `json:"date"`
	Modules       []int     `json:"modules"`
	Frequency     string    `json:"frequency"`
	SeriesEndDate string    `json:"series_end_date"`
}

func (r SeriesPreviewRequest) ToQuery() (queries.SeriesPreviewRequest, error) {
	date, err := ParseDate("date", r.Date)
	if err != nil {
		return queries.SeriesPreviewRequest{}, err
	}
	end, err := ParseDate("series_end_date", r.SeriesEndDate)
	if err != nil {
		return queries.SeriesPreviewRequest{}, err
	}
	return queries.SeriesPreviewRequest{
		EquipmentID: r.EquipmentID,
		TeacherID:   r.TeacherID,
		Date:        date,
		Modules:     r.Modules,
		Frequency:   reservation.Frequency(r.Frequency),
		EndDate:     end,
	}, nil
}

type StatsQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

func (q StatsQuery) Parse() (reservation.Date, reservation.Date, error) {
	from, err := ParseDate("from", q.From)
	if err != nil {
		return reservation.Date{}, reservation.Date{}, err
	}
	to, err := ParseDate("to", q.To)
	if err != nil {
		return reservation.Date{}, reservation.Date{}, err
	}
	return from, to, nil
}
