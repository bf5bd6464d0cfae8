package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/shazam-dl-go/internal/domain"
)

// HealthHandler reports whether the API can reach the history database
type HealthHandler struct {
	repo    domain.DownloadRepository
	version string
	started time.Time
}

func NewHealthHandler(repo domain.DownloadRepository, version string) *HealthHandler {
	return &HealthHandler{
		repo:    repo,
		version: version,
		started: time.Now(),
	}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string                `json:"status"`
	Version string                `json:"version"`
	Uptime  string                `json:"uptime"`
	History *domain.DownloadStats `json:"history,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// Health handles GET /health. It answers 503 when the history database is unreachable.
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	}

	stats, err := h.repo.GetStats()
	if err != nil {
		resp.Status = "unavailable"
		resp.Error = "history database unavailable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	resp.History = stats
	c.JSON(http.StatusOK, resp)
}
