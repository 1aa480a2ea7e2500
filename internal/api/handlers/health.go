package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/menustudio/menustudio-api/internal/config"
)

// HealthHandler reports service status and provider configuration.
type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":            "healthy",
		"content_model":     h.cfg.ContentModel,
		"image_model":       h.cfg.ImageModel,
		"openai_configured": h.cfg.OpenAIAPIKey != "",
		"gemini_configured": h.cfg.GeminiAPIKey != "",
		"archive_enabled":   h.cfg.HasDatabase(),
	})
}
