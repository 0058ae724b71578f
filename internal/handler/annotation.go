package handler

import (
	"net/http"
	"strings"

	"clientdesk/internal/model"
	"clientdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// AnnotationHandler handles a client's notes
type AnnotationHandler struct {
	clients *service.ClientService
}

// NewAnnotationHandler creates a new annotation handler
func NewAnnotationHandler(clients *service.ClientService) *AnnotationHandler {
	return &AnnotationHandler{clients: clients}
}

type annotationRequest struct {
	Text string `json:"texto"`
}

// List handles GET /clients/:id/annotations
func (h *AnnotationHandler) List(c *gin.Context) {
	annotations, err := h.clients.GetAnnotations(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, annotations)
}

// Create handles POST /clients/:id/annotations
func (h *AnnotationHandler) Create(c *gin.Context) {
	var req annotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Annotation text is required", ""))
		return
	}

	annotation, err := h.clients.AddAnnotation(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	if annotation == nil {
		c.JSON(http.StatusOK, model.NewSuccessResponse("Client no longer exists; nothing stored", nil))
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Annotation added", annotation))
}

// Update handles PUT /clients/:id/annotations/:annotationId
func (h *AnnotationHandler) Update(c *gin.Context) {
	var req annotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Annotation text is required", ""))
		return
	}

	if err := h.clients.UpdateAnnotation(c.Request.Context(), c.Param("id"), c.Param("annotationId"), req.Text); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Annotation updated", nil))
}

// Delete handles DELETE /clients/:id/annotations/:annotationId
func (h *AnnotationHandler) Delete(c *gin.Context) {
	if err := h.clients.DeleteAnnotation(c.Request.Context(), c.Param("id"), c.Param("annotationId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Annotation deleted", nil))
}
