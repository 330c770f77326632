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

type TeacherHandler struct {
	cmds commands.TeacherCommands
	q    queries.TeacherQueries
}

func NewTeacherHandler(cmds commands.TeacherCommands, q queries.TeacherQueries) *TeacherHandler {
	return &TeacherHandler{cmds: cmds, q: q}
}

// @Summary List teachers
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.TeacherResponse
// @Router /api/teachers [get]
func (h *TeacherHandler) List(c *gin.Context) {
	items, err := h.q.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teachers": resdto.FromTeacherList(items)})
}

// @Summary Get teacher
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Teacher ID"
// @Success 200 {object} resdto.TeacherResponse
// @Failure 404 {object} httperr.Response
// @Router /api/teachers/{id} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTeacherView(view))
}

// @Summary Create teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateTeacherRequest true "Teacher"
// @Success 201 {object} resdto.TeacherResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/teachers [post]
func (h *TeacherHandler) Create(c *gin.Context) {
	var req reqdto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.Create(c.Request.Context(), req.ToProfile())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", "/api/teachers/"+view.ID.String())
	c.JSON(http.StatusCreated, resdto.FromTeacherView(view))
}

// @Summary Update teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Teacher ID"
// @Param request body reqdto.UpdateTeacherRequest true "Changes"
// @Success 200 {object} resdto.TeacherResponse
// @Failure 404 {object} httperr.Response
// @Router /api/teachers/{id} [put]
func (h *TeacherHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.Update(c.Request.Context(), id, req.ToCommand())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTeacherView(view))
}

// @Summary Delete teacher
// @Tags teachers
// @Security BearerAuth
// @Param id path string true "Teacher ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/teachers/{id} [delete]
func (h *TeacherHandler) Delete(c *gin.Context) {
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
