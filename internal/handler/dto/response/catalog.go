package response

import (
	"log/slog"

	"school-reservations/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

// Timestamps and ids are rendered by hand; copier fills the rest.
type EquipmentResponse struct {
	ID          string `json:"id" copier:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Available   bool   `json:"available"`
	CreatedAt   int64  `json:"created_at" copier:"-"`
	UpdatedAt   int64  `json:"updated_at" copier:"-"`
}

func FromEquipmentView(v *queries.EquipmentView) *EquipmentResponse {
	var resp EquipmentResponse
	if err := copier.Copy(&resp, v); err != nil {
		slog.Warn("failed to copy equipment view", "id", v.ID, "error", err.Error())
	}
	resp.ID = v.ID.String()
	resp.CreatedAt = v.CreatedAt.Unix()
	resp.UpdatedAt = v.UpdatedAt.Unix()
	return &resp
}

func FromEquipmentList(items []*queries.EquipmentView) []*EquipmentResponse {
	out := make([]*EquipmentResponse, len(items))
	for i, v := range items {
		out[i] = FromEquipmentView(v)
	}
	return out
}

type TeacherResponse struct {
	ID        string `json:"id" copier:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Email     string `json:"email,omitempty"`
	Course    string `json:"course,omitempty"`
	Subject   string `json:"subject,omitempty"`
	CreatedAt int64  `json:"created_at" copier:"-"`
	UpdatedAt int64  `json:"updated_at" copier:"-"`
}

func FromTeacherView(v *queries.TeacherView) *TeacherResponse {
	var resp TeacherResponse
	if err := copier.Copy(&resp, v); err != nil {
		slog.Warn("failed to copy teacher view", "id", v.ID, "error", err.Error())
	}
	resp.ID = v.ID.String()
	resp.CreatedAt = v.CreatedAt.Unix()
	resp.UpdatedAt = v.UpdatedAt.Unix()
	return &resp
}

func FromTeacherList(items []*queries.TeacherView) []*TeacherResponse {
	out := make([]*TeacherResponse, len(items))
	for i, v := range items {
		out[i] = FromTeacherView(v)
	}
	return out
}
