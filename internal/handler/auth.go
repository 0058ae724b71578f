package handler

import (
	"net/http"

	"clientdesk/internal/model"
	"clientdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, logout and credential updates
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Username string `json:"usuario"`
	Password string `json:"contraseña"`
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Username and password are required", ""))
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "usuario": req.Username})
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, exists := c.Get("sessionToken"); exists {
		if t, ok := token.(string); ok {
			h.auth.Logout(t)
		}
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Session closed", nil))
}

type credentialsRequest struct {
	Username string `json:"usuario"`
	Password string `json:"contraseña"`
}

// UpdateCredentials handles PUT /credentials
func (h *AuthHandler) UpdateCredentials(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	if req.Username == "" && req.Password == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Nothing to update", ""))
		return
	}

	if err := h.auth.UpdateCredentials(c.Request.Context(), req.Username, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Credentials updated", nil))
}
