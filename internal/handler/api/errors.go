package api

import (
	"net/http"

	"school-reservations/internal/domain/reservation"
	resdto "school-reservations/internal/handler/dto/response"
	"school-reservations/internal/handler/httperr"
	"school-reservations/internal/pkg/errs"
	"school-reservations/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{errs.ErrForbidden, http.StatusForbidden, "Operation not allowed"},
	{errs.ErrReservationNotFound, http.StatusNotFound, "Reservation not found"},
	{queries.ErrReservationNotFound, http.StatusNotFound, "Reservation not found"},
	{errs.ErrSeriesNotFound, http.StatusNotFound, "Series not found"},
	{errs.ErrEquipmentNotFound, http.StatusNotFound, "Equipment not found"},
	{queries.ErrEquipmentNotFound, http.StatusNotFound, "Equipment not found"},
	{errs.ErrTeacherNotFound, http.StatusNotFound, "Teacher not found"},
	{queries.ErrTeacherNotFound, http.StatusNotFound, "Teacher not found"},
	{errs.ErrEquipmentUnavailable, http.StatusConflict, "Equipment is not available for reservations"},
	{errs.ErrEquipmentNameTaken, http.StatusConflict, "Equipment name already in use"},
	{errs.ErrEquipmentInUse, http.StatusConflict, "Equipment has reservations"},
	{errs.ErrTeacherEmailTaken, http.StatusConflict, "Teacher email already in use"},
	{errs.ErrTeacherInUse, http.StatusConflict, "Teacher has reservations"},
	{reservation.ErrInvalidTransition, http.StatusConflict, "Invalid status transition"},
	{reservation.ErrReservationCanceled, http.StatusConflict, "Reservation is already cancelled"},
	{reservation.ErrInvalidStatus, http.StatusUnprocessableEntity, "Invalid status"},
	{errs.ErrDomainValidation, http.StatusBadRequest, "Invalid request"},
	{queries.ErrInvalidFilter, http.StatusBadRequest, "Invalid filter"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, "Invalid cursor"},
}

// respondError renders a rejection as a validation result and everything else
// through httperr.
func respondError(c *gin.Context, err error) {
	if rejection, ok := reservation.AsRejection(err); ok {
		httperr.AbortWithBody(c, rejectionStatus(rejection.Kind), err, resdto.FromRejection(rejection))
		return
	}

	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

func rejectionStatus(kind reservation.RejectionKind) int {
	switch kind {
	case reservation.KindModulesUnavailable, reservation.KindSeriesConflicts:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}
