package api

import (
	"net/http"

	"school-reservations/internal/domain/reservation"
	reqdto "school-reservations/internal/handler/dto/request"
	resdto "school-reservations/internal/handler/dto/response"
	"school-reservations/internal/handler/httperr"
	"school-reservations/internal/usecase/commands"
	"school-reservations/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Reserve modules of one equipment on one date
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation"
// @Success 201 {object} queries.ReservationView
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} resdto.ValidationResult
// @Failure 422 {object} resdto.ValidationResult
// @Router /api/reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.cmds.CreateSingle(c.Request.Context(), cmd, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", "/api/reservations/"+view.ID.String())
	c.JSON(http.StatusCreated, view)
}

// @Summary Create recurring reservations
// @Description Reserve the same modules on every date of a daily, weekly, biweekly or monthly series. Nothing is created when any date conflicts.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSeriesRequest true "Series"
// @Success 201 {object} resdto.SeriesResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} resdto.ValidationResult
// @Failure 422 {object} resdto.ValidationResult
// @Router /api/reservations/series [post]
func (h *ReservationHandler) CreateSeries(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.cmds.CreateSeries(c.Request.Context(), cmd, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromSeriesResult(result))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} queries.ReservationView
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List reservations
// @Description Filter by equipment, teacher, series, status and date range; newest first with keyset pagination
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param equipment_id query string false "Equipment ID"
// @Param teacher_id query string false "Teacher ID"
// @Param series_id query string false "Series ID"
// @Param status query string false "pending, confirmed or cancelled"
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	var query reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		respondError(c, err)
		return
	}

	items, next, err := h.q.List(c.Request.Context(), filter, query.Cursor(), query.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationList(items, next))
}

// @Summary List reservations grouped by series
// @Description Recurring reservations grouped under their series, standalone ones on their own
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param equipment_id query string false "Equipment ID"
// @Param teacher_id query string false "Teacher ID"
// @Param status query string false "pending, confirmed or cancelled"
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Success 200 {array} queries.ReservationGroupView
// @Router /api/reservations/series [get]
func (h *ReservationHandler) ListGrouped(c *gin.Context) {
	var query reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		respondError(c, err)
		return
	}

	groups, err := h.q.ListGrouped(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if groups == nil {
		groups = []*queries.ReservationGroupView{}
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// @Summary Edit reservation
// @Description Change date, modules, teacher or observations. The change is checked against every other reservation of the equipment.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Changes"
// @Success 200 {object} queries.ReservationView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} resdto.ValidationResult
// @Failure 422 {object} resdto.ValidationResult
// @Router /api/reservations/{id} [put]
func (h *ReservationHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.cmds.Update(c.Request.Context(), id, cmd, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Change reservation status
// @Description pending to confirmed, or pending/confirmed to cancelled
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ChangeStatusRequest true "New status"
// @Success 200 {object} queries.ReservationView
// @Failure 409 {object} httperr.Response
// @Router /api/reservations/{id}/status [patch]
func (h *ReservationHandler) ChangeStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.ChangeStatus(c.Request.Context(), id, reservation.Status(req.Status), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Cancel or delete reservation
// @Description Cancels the reservation. With hard=true the row is deleted, which only administrators may do.
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param hard query bool false "Delete instead of cancel"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/{id} [delete]
func (h *ReservationHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var err error
	if c.Query("hard") == "true" {
		err = h.cmds.Delete(c.Request.Context(), id, actor)
	} else {
		err = h.cmds.Cancel(c.Request.Context(), id, actor)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel series
// @Description Cancels every active occurrence of a recurring series in one transaction
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param seriesId path string true "Series ID"
// @Success 200 {object} resdto.CancelSeriesResponse
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/series/{seriesId} [delete]
func (h *ReservationHandler) CancelSeries(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	seriesID, ok := parseUUIDParam(c, "seriesId")
	if !ok {
		return
	}

	result, err := h.cmds.CancelSeries(c.Request.Context(), seriesID, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancelSeriesResult(result))
}
