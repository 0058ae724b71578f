package handler

import (
	"net/http"
	"strings"

	"clientdesk/internal/model"
	"clientdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// MarkHandler handles the global control-mark catalog
type MarkHandler struct {
	marks *service.MarkService
}

// NewMarkHandler creates a new mark handler
func NewMarkHandler(marks *service.MarkService) *MarkHandler {
	return &MarkHandler{marks: marks}
}

// List handles GET /marks
func (h *MarkHandler) List(c *gin.Context) {
	marks, err := h.marks.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, marks)
}

// Create handles POST /marks
func (h *MarkHandler) Create(c *gin.Context) {
	var mark model.ControlMark
	if err := c.ShouldBindJSON(&mark); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	mark.Name = strings.TrimSpace(mark.Name)
	if mark.Name == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Mark name is required", ""))
		return
	}

	created, err := h.marks.Create(c.Request.Context(), &mark)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Mark created", created))
}

// Update handles PUT /marks/:id
func (h *MarkHandler) Update(c *gin.Context) {
	var mark model.ControlMark
	if err := c.ShouldBindJSON(&mark); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	mark.ID = c.Param("id")
	mark.Name = strings.TrimSpace(mark.Name)
	if mark.Name == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Mark name is required", ""))
		return
	}

	if err := h.marks.Update(c.Request.Context(), &mark); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Mark updated", nil))
}

// Delete handles DELETE /marks/:id. Client selections referencing this
// mark stay behind as dangling references and are skipped on resolution.
func (h *MarkHandler) Delete(c *gin.Context) {
	if err := h.marks.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Mark deleted", nil))
}
