package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"clientdesk/internal/model"
	"clientdesk/internal/service"
	"clientdesk/pkg/datauri"
	"clientdesk/pkg/util"

	"github.com/gin-gonic/gin"
)

// MergeHandler handles the merged-PDF collection
type MergeHandler struct {
	merge *service.MergeService
}

// NewMergeHandler creates a new merge handler
func NewMergeHandler(merge *service.MergeService) *MergeHandler {
	return &MergeHandler{merge: merge}
}

// List handles GET /merged
func (h *MergeHandler) List(c *gin.Context) {
	docs, err := h.merge.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

type mergeRequest struct {
	Name  string          `json:"nombre"`
	Files []model.FileRef `json:"archivos"`
}

// Create handles POST /merged, the merge operation itself.
func (h *MergeHandler) Create(c *gin.Context) {
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	doc, err := h.merge.Merge(c.Request.Context(), req.Name, req.Files)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("PDFs merged", doc))
}

// Candidates handles GET /merged/candidates?year=&period=, PDFs grouped
// by client and ready for selection.
func (h *MergeHandler) Candidates(c *gin.Context) {
	groups, err := h.merge.MergeCandidates(c.Request.Context(), service.FileFilter{
		Year:   c.Query("year"),
		Period: c.Query("period"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// SuggestName handles GET /merged/name-suggestion?clients=a&clients=b
func (h *MergeHandler) SuggestName(c *gin.Context) {
	names := c.QueryArray("clients")
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		if s := strings.TrimSpace(n); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	c.JSON(http.StatusOK, gin.H{"nombre": service.GenerateMergedName(cleaned, time.Now())})
}

// Download handles GET /merged/:id/download
func (h *MergeHandler) Download(c *gin.Context) {
	doc, err := h.merge.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	mimeType, data, err := datauri.Decode(doc.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Header("Content-Disposition", "attachment; filename=\""+util.SanitizeFilename(doc.Name)+"\"")
	c.Data(http.StatusOK, mimeType, data)
}

// Delete handles DELETE /merged/:id
func (h *MergeHandler) Delete(c *gin.Context) {
	if err := h.merge.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Merged PDF deleted", nil))
}

// Clear handles DELETE /merged
func (h *MergeHandler) Clear(c *gin.Context) {
	if err := h.merge.Clear(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Merged PDFs cleared", nil))
}
