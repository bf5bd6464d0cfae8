package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/shazam-dl-go/api/handlers"
	"github.com/yourusername/shazam-dl-go/api/middleware"
	"github.com/yourusername/shazam-dl-go/internal/domain"
)

// SetupRouter builds the read-only HTTP API over the download history
func SetupRouter(repo domain.DownloadRepository, log *zap.Logger, version string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.AccessLog(log), middleware.Recovery(log))

	router.GET("/health", handlers.NewHealthHandler(repo, version).Health)
	registerDownloadRoutes(router.Group("/api/v1/downloads"), handlers.NewDownloadHandler(repo, log))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "read-only API"})
	})

	return router
}

// registerDownloadRoutes wires the history endpoints; static paths must precede /:id
func registerDownloadRoutes(g *gin.RouterGroup, h *handlers.DownloadHandler) {
	g.GET("", h.ListDownloads)
	g.GET("/stats", h.GetStats)
	g.GET("/latest", h.GetLatestByLabel)
	g.GET("/:id", h.GetDownload)
}
