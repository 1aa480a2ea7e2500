package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/menustudio/menustudio-api/internal/services"
	"github.com/menustudio/menustudio-api/internal/session"
)

// VariantsHandler exposes the variant session orchestrator: one
// endpoint to start a session, one to poll it.
type VariantsHandler struct {
	variants *services.VariantService
}

func NewVariantsHandler(variants *services.VariantService) *VariantsHandler {
	return &VariantsHandler{variants: variants}
}

type GenerateVariantsRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateVariants starts a new three-variant session and returns its
// id plus the initial (all generating) slot states immediately. The
// pipelines keep running after this response is sent.
func (h *VariantsHandler) GenerateVariants(c *gin.Context) {
	var req GenerateVariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := h.variants.StartSession(req.Prompt)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": snapshot.SessionID,
		"variant1":  snapshot.Variant1,
		"variant2":  snapshot.Variant2,
		"variant3":  snapshot.Variant3,
	})
}

// CheckVariantStatus is the poll endpoint: a pure read of the session
// store, safe to call at any frequency, identical terminal snapshots
// on repeated polls after completion.
func (h *VariantsHandler) CheckVariantStatus(c *gin.Context) {
	sessionID := c.Param("sessionId")

	snapshot, err := h.variants.Poll(sessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variant1": snapshot.Variant1,
		"variant2": snapshot.Variant2,
		"variant3": snapshot.Variant3,
		"allReady": snapshot.AllReady,
	})
}
