package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/menustudio/menustudio-api/internal/models"
	"github.com/menustudio/menustudio-api/internal/services"
)

// MenuHandler exposes the non-variant paths: content-only generation,
// single-shot menu image generation, edits and the archive listing.
type MenuHandler struct {
	menus *services.MenuService
}

func NewMenuHandler(menus *services.MenuService) *MenuHandler {
	return &MenuHandler{menus: menus}
}

type SurpriseRequest struct {
	Prompt string `json:"prompt"`
}

// Surprise generates menu content (name + items) from a concept prompt.
func (h *MenuHandler) Surprise(c *gin.Context) {
	var req SurpriseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, err := h.menus.SurpriseMenu(c.Request.Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, content)
}

type GenerateMenuRequest struct {
	RestaurantName string            `json:"restaurantName"`
	Items          []models.MenuItem `json:"items" binding:"required"`
	Style          string            `json:"style"`
}

// Generate renders a menu image for the submitted items.
func (h *MenuHandler) Generate(c *gin.Context) {
	var req GenerateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.menus.GenerateMenu(c.Request.Context(), req.RestaurantName, req.Items, req.Style)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

type EditRequest struct {
	ImageURL        string `json:"imageUrl" binding:"required"`
	EditInstruction string `json:"editInstruction"`
}

// Edit applies a natural-language edit to a previously generated image
// and returns the new image reference. Synchronous: the response waits
// for the provider call.
func (h *MenuHandler) Edit(c *gin.Context) {
	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newURL, err := h.menus.ApplyEdit(c.Request.Context(), req.ImageURL, req.EditInstruction)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": newURL})
}

// ListMenus returns recently archived generations.
func (h *MenuHandler) ListMenus(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	menus, err := h.menus.RecentMenus(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"menus": menus})
}
