package response

import "school-reservations/internal/domain/reservation"

// ValidationResult is the body of a refused reservation request.
type ValidationResult struct {
	OK      bool   `json:"ok"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Detail  any    `json:"detail,omitempty"`
}

func FromRejection(r *reservation.Rejection) ValidationResult {
	return ValidationResult{
		OK:      false,
		Kind:    string(r.Kind),
		Message: r.Message(),
		Detail:  r.Detail(),
	}
}
