package api

import (
	"net/http"

	reqdto "school-reservations/internal/handler/dto/request"
	resdto "school-reservations/internal/handler/dto/response"
	"school-reservations/internal/handler/httperr"
	"school-reservations/internal/usecase/commands"
	"school-reservations/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type EquipmentHandler struct {
	cmds commands.EquipmentCommands
	q    queries.EquipmentQueries
}

func NewEquipmentHandler(cmds commands.EquipmentCommands, q queries.EquipmentQueries) *EquipmentHandler {
	return &EquipmentHandler{cmds: cmds, q: q}
}

// @Summary List equipment
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Param available query bool false "Only available (true) or unavailable (false) items"
// @Success 200 {array} resdto.EquipmentResponse
// @Router /api/equipment [get]
func (h *EquipmentHandler) List(c *gin.Context) {
	var query reqdto.ListEquipmentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	items, err := h.q.List(c.Request.Context(), query.Available)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"equipment": resdto.FromEquipmentList(items)})
}

// @Summary Get equipment
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Param id path string true "Equipment ID"
// @Success 200 {object} resdto.EquipmentResponse
// @Failure 404 {object} httperr.Response
// @Router /api/equipment/{id} [get]
func (h *EquipmentHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromEquipmentView(view))
}

// @Summary Create equipment
// @Tags equipment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateEquipmentRequest true "Equipment"
// @Success 201 {object} resdto.EquipmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/equipment [post]
func (h *EquipmentHandler) Create(c *gin.Context) {
	var req reqdto.CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.Create(c.Request.Context(), req.ToCommand())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", "/api/equipment/"+view.ID.String())
	c.JSON(http.StatusCreated, resdto.FromEquipmentView(view))
}

// @Summary Update equipment
// @Tags equipment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Equipment ID"
// @Param request body reqdto.UpdateEquipmentRequest true "Changes"
// @Success 200 {object} resdto.EquipmentResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/equipment/{id} [put]
func (h *EquipmentHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.Update(c.Request.Context(), id, req.ToCommand())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromEquipmentView(view))
}

// @Summary Delete equipment
// @Description Fails with 409 while reservations reference the equipment
// @Tags equipment
// @Security BearerAuth
// @Param id path string true "Equipment ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/equipment/{id} [delete]
func (h *EquipmentHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Equipment usage
// @Description Confirmed usage of one equipment between two dates
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Param id path string true "Equipment ID"
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Success 200 {object} queries.EquipmentStatsView
// @Failure 404 {object} httperr.Response
// @Router /api/equipment/{id}/stats [get]
func (h *EquipmentHandler) Stats(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var query reqdto.StatsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	from, to, err := query.Parse()
	if err != nil {
		respondError(c, err)
		return
	}
	stats, err := h.q.Stats(c.Request.Context(), id, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
