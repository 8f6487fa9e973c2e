package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Manual Canvas sync trigger
		api.POST("/sync", h.TriggerSync)

		// Google OAuth consent flow (one-time setup)
		auth := api.Group("/auth")
		{
			auth.GET("/google/url", h.GoogleAuthURL)
			auth.GET("/google/callback", h.GoogleAuthCallback)
		}

		// Settings routes - Runtime configuration
		settings := api.Group("/settings")
		{
			settings.GET("/ollama", h.GetOllamaSettings)
			settings.PUT("/ollama", h.UpdateOllamaSettings)
			settings.POST("/ollama/test", h.TestOllamaConnection)
		}
	}
}
