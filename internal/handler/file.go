package handler

import (
	"net/http"
	"strconv"

	"clientdesk/internal/model"
	"clientdesk/internal/service"
	"clientdesk/pkg/datauri"
	"clientdesk/pkg/util"

	"github.com/gin-gonic/gin"
)

// FileHandler handles per-client file collections, the cross-client
// projection, downloads and the year/period catalogs.
type FileHandler struct {
	clients *service.ClientService
}

// NewFileHandler creates a new file handler
func NewFileHandler(clients *service.ClientService) *FileHandler {
	return &FileHandler{clients: clients}
}

func fileFilterFromQuery(c *gin.Context) service.FileFilter {
	return service.FileFilter{
		Year:   c.Query("year"),
		Period: c.Query("period"),
	}
}

// List handles GET /clients/:id/files?year=&period=
func (h *FileHandler) List(c *gin.Context) {
	files, err := h.clients.GetFiles(c.Request.Context(), c.Param("id"), fileFilterFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, files)
}

// ListAll handles GET /files?year=&period=, the per-client projection
// used by the merge and compress screens.
func (h *FileHandler) ListAll(c *gin.Context) {
	groups, err := h.clients.GetAllFiles(c.Request.Context(), fileFilterFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

type uploadRequest struct {
	Name     string `json:"nombre"`
	MIMEType string `json:"tipo"`
	Content  string `json:"contenido"`
	Year     string `json:"año"`
	Period   string `json:"periodo"`
}

// Upload handles POST /clients/:id/files. Content arrives as a data URI;
// size is measured from the decoded payload.
func (h *FileHandler) Upload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("File name is required", ""))
		return
	}
	if req.Year == "" || req.Period == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Year and period are required", ""))
		return
	}

	mimeType, data, err := datauri.Decode(req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.MIMEType == "" {
		req.MIMEType = mimeType
	}

	file := model.File{
		Name:     req.Name,
		Size:     int64(len(data)),
		MIMEType: req.MIMEType,
		Content:  req.Content,
		Year:     req.Year,
		Period:   req.Period,
	}
	created, err := h.clients.AddFile(c.Request.Context(), c.Param("id"), file)
	if err != nil {
		respondError(c, err)
		return
	}
	if created == nil {
		// Stale client id: the store treats it as a no-op.
		c.JSON(http.StatusOK, model.NewSuccessResponse("Client no longer exists; nothing stored", nil))
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("File stored", created))
}

// Delete handles DELETE /clients/:id/files/:fileId
func (h *FileHandler) Delete(c *gin.Context) {
	if err := h.clients.DeleteFile(c.Request.Context(), c.Param("id"), c.Param("fileId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("File deleted", nil))
}

// Download handles GET /clients/:id/files/:fileId/download
func (h *FileHandler) Download(c *gin.Context) {
	file, err := h.clients.GetFile(c.Request.Context(), c.Param("id"), c.Param("fileId"))
	if err != nil {
		respondError(c, err)
		return
	}
	mimeType, data, err := datauri.Decode(file.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Header("Content-Disposition", "attachment; filename=\""+util.SanitizeFilename(file.Name)+"\"")
	c.Data(http.StatusOK, mimeType, data)
}

// Years handles GET /years
func (h *FileHandler) Years(c *gin.Context) {
	years, err := h.clients.Years(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, years)
}

// Periods handles GET /periods?year=
func (h *FileHandler) Periods(c *gin.Context) {
	periods, err := h.clients.Periods(c.Request.Context(), c.Query("year"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, periods)
}
