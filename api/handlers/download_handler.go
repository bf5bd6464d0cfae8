package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/shazam-dl-go/internal/domain"
	"go.uber.org/zap"
)

const defaultListLimit = 50

// DownloadHandler serves the download history
type DownloadHandler struct {
	repo   domain.DownloadRepository
	logger *zap.Logger
}

func NewDownloadHandler(repo domain.DownloadRepository, logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{
		repo:   repo,
		logger: logger,
	}
}

type listQuery struct {
	Status string `form:"status"`
	Limit  *int   `form:"limit" binding:"omitempty,min=0"`
}

type latestQuery struct {
	Label string `form:"label" binding:"required"`
}

// internalError logs err, attaches it to the request and answers 500
func (h *DownloadHandler) internalError(c *gin.Context, msg string, err error, fields ...zap.Field) {
	h.logger.Error(msg, append(fields, zap.Error(err))...)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// GetDownload handles GET /api/v1/downloads/:id
func (h *DownloadHandler) GetDownload(c *gin.Context) {
	id := c.Param("id")

	download, err := h.repo.FindByID(id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "download not found"})
	case err != nil:
		h.internalError(c, "failed to get download", err, zap.String("id", id))
	default:
		c.JSON(http.StatusOK, download)
	}
}

// ListDownloads handles GET /api/v1/downloads?status=&limit=
func (h *DownloadHandler) ListDownloads(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query: " + err.Error()})
		return
	}

	status := domain.DownloadStatus(q.Status)
	if status != "" && !domain.ValidateStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status: " + q.Status})
		return
	}

	limit := defaultListLimit
	if q.Limit != nil {
		limit = *q.Limit
	}

	downloads, err := h.repo.FindAll(status, limit)
	if err != nil {
		h.internalError(c, "failed to list downloads", err)
		return
	}
	c.JSON(http.StatusOK, downloads)
}

// GetLatestByLabel handles GET /api/v1/downloads/latest?label=
func (h *DownloadHandler) GetLatestByLabel(c *gin.Context) {
	var q latestQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "label is required"})
		return
	}

	download, err := h.repo.FindLatestByLabel(q.Label)
	switch {
	case err != nil:
		h.internalError(c, "failed to find download", err, zap.String("label", q.Label))
	case download == nil:
		c.JSON(http.StatusNotFound, gin.H{"error": "no download for label"})
	default:
		c.JSON(http.StatusOK, download)
	}
}

// GetStats handles GET /api/v1/downloads/stats
func (h *DownloadHandler) GetStats(c *gin.Context) {
	stats, err := h.repo.GetStats()
	if err != nil {
		h.internalError(c, "failed to get stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
