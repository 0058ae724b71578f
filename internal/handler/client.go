package handler

import (
	"net/http"
	"strconv"
	"strings"

	"clientdesk/internal/model"
	"clientdesk/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	maxNameLength  = 200
	maxEmailLength = 254
)

// ClientHandler handles client CRUD and listing
type ClientHandler struct {
	clients *service.ClientService
	marks   *service.MarkService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clients *service.ClientService, marks *service.MarkService) *ClientHandler {
	return &ClientHandler{clients: clients, marks: marks}
}

// List handles GET /clients?search=&digit=&page=&pageSize=
func (h *ClientHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "0"))
	term := c.Query("search")
	digit := c.Query("digit")

	if digit != "" && (len(digit) != 1 || digit[0] < '0' || digit[0] > '9') {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("digit must be a single digit 0-9", ""))
		return
	}

	result, err := h.clients.List(c.Request.Context(), term, digit, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.clients.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func validateClientFields(f *model.ClientFields) string {
	f.NIT = strings.TrimSpace(f.NIT)
	f.Email = strings.TrimSpace(f.Email)
	f.LegalName = strings.TrimSpace(f.LegalName)
	if f.NIT == "" {
		return "NIT is required"
	}
	if f.Email == "" {
		return "Email is required"
	}
	if len(f.Email) > maxEmailLength {
		return "Email exceeds maximum length"
	}
	if f.LegalName == "" {
		return "Legal name is required"
	}
	if len(f.LegalName) > maxNameLength {
		return "Legal name exceeds maximum length"
	}
	return ""
}

// Create handles POST /clients
func (h *ClientHandler) Create(c *gin.Context) {
	var fields model.ClientFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	if msg := validateClientFields(&fields); msg != "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(msg, ""))
		return
	}

	client, err := h.clients.Create(c.Request.Context(), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Client created", client))
}

// Update handles PUT /clients/:id; stale ids are a silent no-op. The body
// carries the full field set, matching the edit form's submit: an optional
// field left out of the request clears the stored value.
func (h *ClientHandler) Update(c *gin.Context) {
	var fields model.ClientFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	if msg := validateClientFields(&fields); msg != "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(msg, ""))
		return
	}

	if err := h.clients.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Client updated", nil))
}

// Delete handles DELETE /clients/:id; owned files and annotations go with it.
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.clients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Client deleted", nil))
}

// SetMarks handles PUT /clients/:id/marks
func (h *ClientHandler) SetMarks(c *gin.Context) {
	var selections []model.MarkSelection
	if err := c.ShouldBindJSON(&selections); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	if err := h.clients.SetMarks(c.Request.Context(), c.Param("id"), selections); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Marks updated", nil))
}

// GetMarks handles GET /clients/:id/marks; dangling selections are skipped.
func (h *ClientHandler) GetMarks(c *gin.Context) {
	client, err := h.clients.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	resolved, err := h.marks.Resolve(c.Request.Context(), client.Marks)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resolved)
}
