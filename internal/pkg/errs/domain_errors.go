package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Equipment errors
	ErrEquipmentNotFound    = errors.New("equipment not found")
	ErrEquipmentUnavailable = errors.New("equipment unavailable")
	ErrEquipmentNameTaken   = errors.New("equipment name already in use")
	ErrEquipmentInUse       = errors.New("equipment has reservations")

	// Teacher errors
	ErrTeacherNotFound   = errors.New("teacher not found")
	ErrTeacherEmailTaken = errors.New("teacher email already in use")
	ErrTeacherInUse      = errors.New("teacher has reservations")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrSeriesNotFound      = errors.New("series not found")
	ErrReservationRejected = errors.New("reservation rejected")
	ErrForbidden           = errors.New("operation not allowed for this user")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
