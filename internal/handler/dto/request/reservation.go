package request

import (
	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/usecase/commands"
	"school-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

// Required fields are checked by the domain so that a missing one is reported
// as a rejection rather than a binding error.
type CreateReservationRequest struct {
	EquipmentID  uuid.UUID `json:"equipment_id"`
	TeacherID    uuid.UUID `json:"teacher_id"`
	Date         string    `json:"date"`
	Modules      []int     `json:"modules"`
	Status       string    `json:"status,omitempty"`
	Observations string    `json:"observations,omitempty"`
}

func (r CreateReservationRequest) ToCommand() (commands.CreateReservationRequest, error) {
	date, err := ParseDate("date", r.Date)
	if err != nil {
		return commands.CreateReservationRequest{}, err
	}
	return commands.CreateReservationRequest{
		EquipmentID:  r.EquipmentID,
		TeacherID:    r.TeacherID,
		Date:         date,
		Modules:      r.Modules,
		Status:       reservation.Status(r.Status),
		Observations: r.Observations,
	}, nil
}

type CreateSeriesRequest struct {
	CreateReservationRequest
	Frequency     string `json:"frequency"`
	SeriesEndDate string `json:"series_end_date"`
}

func (r CreateSeriesRequest) ToCommand() (commands.CreateSeriesRequest, error) {
	single, err := r.CreateReservationRequest.ToCommand()
	if err != nil {
		return commands.CreateSeriesRequest{}, err
	}
	end, err := ParseDate("series_end_date", r.SeriesEndDate)
	if err != nil {
		return commands.CreateSeriesRequest{}, err
	}
	return commands.CreateSeriesRequest{
		CreateReservationRequest: single,
		Frequency:                reservation.Frequency(r.Frequency),
		EndDate:                  end,
	}, nil
}

type UpdateReservationRequest struct {
	TeacherID    *uuid.UUID `json:"teacher_id,omitempty"`
	Date         *string    `json:"date,omitempty"`
	Modules      []int      `json:"modules,omitempty"`
	Observations *string    `json:"observations,omitempty"`
}

func (r UpdateReservationRequest) ToCommand() (commands.UpdateReservationRequest, error) {
	cmd := commands.UpdateReservationRequest{
		TeacherID:    r.TeacherID,
		Modules:      r.Modules,
		Observations: r.Observations,
	}
	if r.Date != nil {
		date, err := ParseDate("date", *r.Date)
		if err != nil {
			return commands.UpdateReservationRequest{}, err
		}
		if date.IsZero() {
			return commands.UpdateReservationRequest{}, reservation.MissingField("date")
		}
		cmd.Date = &date
	}
	return cmd, nil
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}

type ListReservationsQuery struct {
	EquipmentID string `form:"equipment_id" binding:"omitempty,uuid"`
	TeacherID   string `form:"teacher_id" binding:"omitempty,uuid"`
	SeriesID    string `form:"series_id" binding:"omitempty,uuid"`
	Status      string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	From        string `form:"from"`
	To          string `form:"to"`
	Limit       int    `form:"limit"`
	After       string `form:"after"`
}

func (q ListReservationsQuery) ToFilter() (queries.ReservationFilter, error) {
	var filter queries.ReservationFilter
	var err error
	if filter.From, err = ParseDate("from", q.From); err != nil {
		return filter, err
	}
	if filter.To, err = ParseDate("to", q.To); err != nil {
		return filter, err
	}
	filter.EquipmentID = optionalUUID(q.EquipmentID)
	filter.TeacherID = optionalUUID(q.TeacherID)
	filter.SeriesID = optionalUUID(q.SeriesID)
	if q.Status != "" {
		status := reservation.Status(q.Status)
		filter.Status = &status
	}
	return filter, nil
}

func (q ListReservationsQuery) Cursor() *queries.Cursor {
	if q.After == "" {
		return nil
	}
	return &queries.Cursor{After: q.After}
}

// ParseDate reads a YYYY-MM-DD value. Empty input yields the zero date, which
// the domain reports as a missing field.
func ParseDate(field, s string) (reservation.Date, error) {
	if s == "" {
		return reservation.Date{}, nil
	}
	d, err := reservation.ParseDate(s)
	if err != nil {
		return reservation.Date{}, &reservation.Rejection{
			Kind:   reservation.KindInvalidDate,
			Field:  field,
			Reason: field + " must be a YYYY-MM-DD date",
		}
	}
	return d, nil
}

// optionalUUID expects a value already validated by the binding tags.
func optionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id := uuid.MustParse(s)
	return &id
}
