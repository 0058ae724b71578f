package handler

import (
	"net/http"
	"strconv"

	"clientdesk/internal/model"
	"clientdesk/internal/service"
	"clientdesk/pkg/util"

	"github.com/gin-gonic/gin"
)

// AllClientsSelector selects every client for packing instead of one id.
const AllClientsSelector = "ALL"

// ArchiveHandler handles zip packing and download
type ArchiveHandler struct {
	archives *service.ArchiveService
}

// NewArchiveHandler creates a new archive handler
func NewArchiveHandler(archives *service.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{archives: archives}
}

type packRequest struct {
	ClientID string `json:"clientId"`
	Year     string `json:"año"`
	Period   string `json:"periodo"`
}

// Create handles POST /archives. The response body is the archive itself,
// offered as an attachment.
func (h *ArchiveHandler) Create(c *gin.Context) {
	var req packRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	if req.ClientID == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("clientId is required", ""))
		return
	}

	filter := service.FileFilter{Year: req.Year, Period: req.Period}

	var archive *service.Archive
	var err error
	if req.ClientID == AllClientsSelector {
		archive, err = h.archives.PackAll(c.Request.Context(), filter)
	} else {
		archive, err = h.archives.PackClient(c.Request.Context(), req.ClientID, filter)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Length", strconv.Itoa(len(archive.Data)))
	c.Header("Content-Disposition", "attachment; filename=\""+util.SanitizeFilename(archive.Name)+"\"")
	c.Data(http.StatusOK, "application/zip", archive.Data)
}
