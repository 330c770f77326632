package api

import (
	"net/http"

	"school-reservations/internal/domain/reservation"
	reqdto "school-reservations/internal/handler/dto/request"
	"school-reservations/internal/handler/httperr"
	"school-reservations/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Occupied modules
// @Description Occupied modules of a date, for one equipment or for every equipment booked that day
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param equipment_id query string false "Equipment ID"
// @Success 200 {array} queries.OccupancyView
// @Failure 422 {object} resdto.ValidationResult
// @Router /api/availability/occupied [get]
func (h *AvailabilityHandler) Occupied(c *gin.Context) {
	var query reqdto.OccupiedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	date, equipmentID, err := query.Parse()
	if err != nil {
		respondError(c, err)
		return
	}

	views, err := h.q.Occupied(c.Request.Context(), date, equipmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	if views == nil {
		views = []*queries.OccupancyView{}
	}
	c.JSON(http.StatusOK, gin.H{"occupancy": views})
}

// @Summary Free modules
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param equipment_id query string true "Equipment ID"
// @Success 200 {object} queries.FreeModulesView
// @Failure 422 {object} resdto.ValidationResult
// @Router /api/availability/free [get]
func (h *AvailabilityHandler) Free(c *gin.Context) {
	var query reqdto.FreeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	date, err := reqdto.ParseDate("date", query.Date)
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.q.Free(c.Request.Context(), date, uuid.MustParse(query.EquipmentID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Check availability
// @Description Reports which of the requested modules are already taken. Nothing is reserved.
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckAvailabilityRequest true "Candidate"
// @Success 200 {object} queries.AvailabilityView
// @Failure 422 {object} resdto.ValidationResult
// @Router /api/availability/check [post]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	var req reqdto.CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	query, err := req.ToQuery()
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.q.Check(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Preview series
// @Description Dates a recurring request would occupy and which of them conflict. Teachers default to themselves.
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SeriesPreviewRequest true "Series candidate"
// @Success 200 {object} queries.SeriesPreviewView
// @Failure 422 {object} resdto.ValidationResult
// @Router /api/availability/series-preview [post]
func (h *AvailabilityHandler) PreviewSeries(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.SeriesPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if req.TeacherID == uuid.Nil && actor.TeacherID != nil {
		req.TeacherID = *actor.TeacherID
	}
	query, err := req.ToQuery()
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.q.PreviewSeries(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Module schedule
// @Description The 15 modules with their times, the current module and which have elapsed
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param date query string false "Date (YYYY-MM-DD), today when omitted"
// @Success 200 {object} queries.ScheduleView
// @Router /api/schedule/modules [get]
func (h *AvailabilityHandler) Schedule(c *gin.Context) {
	var date reservation.Date
	if s := c.Query("date"); s != "" {
		d, err := reqdto.ParseDate("date", s)
		if err != nil {
			respondError(c, err)
			return
		}
		date = d
	}
	c.JSON(http.StatusOK, h.q.Schedule(c.Request.Context(), date))
}
