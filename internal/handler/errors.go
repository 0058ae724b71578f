package handler

import (
	"errors"
	"net/http"

	"clientdesk/internal/model"
	"clientdesk/internal/service"
	"clientdesk/pkg/datauri"

	"github.com/gin-gonic/gin"
)

// respondError maps service failures onto HTTP statuses. Validation errors
// are the caller's fault, pipeline decode errors are unprocessable input,
// everything else is a server fault.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, model.NewErrorResponse("Not found", err.Error()))
	case errors.Is(err, service.ErrNoFilesSelected),
		errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrNothingToCompress):
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
	case errors.Is(err, service.ErrInvalidPDF),
		errors.Is(err, datauri.ErrInvalidURI):
		c.JSON(http.StatusUnprocessableEntity, model.NewErrorResponse(err.Error(), ""))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Invalid credentials", ""))
	default:
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Internal error", err.Error()))
	}
}
