package request

import "school-reservations/internal/usecase/commands"

type CreateEquipmentRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	Location    string `json:"location" binding:"max=200"`
	Available   *bool  `json:"available"`
}

// ToCommand defaults Available to true when omitted.
func (r CreateEquipmentRequest) ToCommand() commands.CreateEquipmentRequest {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return commands.CreateEquipmentRequest{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Available:   available,
	}
}

type UpdateEquipmentRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Location    *string `json:"location" binding:"omitempty,max=200"`
	Available   *bool   `json:"available"`
}

func (r UpdateEquipmentRequest) ToCommand() commands.UpdateEquipmentRequest {
	return commands.UpdateEquipmentRequest{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Available:   r.Available,
	}
}

type ListEquipmentQuery struct {
	Available *bool `form:"available"`
}
