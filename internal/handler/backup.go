package handler

import (
	"net/http"

	"clientdesk/internal/model"
	"clientdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// BackupHandler handles snapshot export and import
type BackupHandler struct {
	backup *service.BackupService
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backup *service.BackupService) *BackupHandler {
	return &BackupHandler{backup: backup}
}

// Export handles GET /export
func (h *BackupHandler) Export(c *gin.Context) {
	snap, err := h.backup.Export(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\"clientdesk-snapshot.json\"")
	c.JSON(http.StatusOK, snap)
}

// Import handles POST /import. The snapshot replaces every collection.
func (h *BackupHandler) Import(c *gin.Context) {
	var snap model.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	if err := h.backup.Import(c.Request.Context(), &snap); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Import failed", err.Error()))
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Snapshot imported", nil))
}
