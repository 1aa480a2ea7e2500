package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/menustudio/menustudio-api/internal/ai"
	"github.com/menustudio/menustudio-api/internal/assets"
	"github.com/menustudio/menustudio-api/internal/database"
	"github.com/menustudio/menustudio-api/internal/logger"
	"github.com/menustudio/menustudio-api/internal/metrics"
	"github.com/menustudio/menustudio-api/internal/models"
	"github.com/menustudio/menustudio-api/internal/prompt"
)

const defaultRestaurantName = "Restaurant"

// GeneratedMenuResult is the outcome of a single-shot menu generation.
type GeneratedMenuResult struct {
	ImageURL string            `json:"imageUrl"`
	Items    []models.MenuItem `json:"items"`
	Prompt   string            `json:"prompt"`
}

// MenuService handles the non-variant paths: content-only generation
// ("surprise me"), single-shot menu image generation, and synchronous
// image edits. archive may be nil when no database is configured.
type MenuService struct {
	caps       *ai.Capabilities
	store      *assets.Store
	archive    *database.Archive
	cloudwatch *metrics.Client
}

// NewMenuService creates the single-shot menu service.
func NewMenuService(caps *ai.Capabilities, store *assets.Store, archive *database.Archive, cw *metrics.Client) *MenuService {
	return &MenuService{
		caps:       caps,
		store:      store,
		archive:    archive,
		cloudwatch: cw,
	}
}

// SurpriseMenu generates menu content from a concept prompt. When the
// model cannot produce a valid menu the fallback menu is served
// instead of an error - this path always gives the user something to
// start editing from.
func (s *MenuService) SurpriseMenu(ctx context.Context, promptText string) (*models.MenuContent, error) {
	trimmed := strings.TrimSpace(promptText)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: prompt must not be empty", ErrInvalidInput)
	}

	content, err := s.caps.Content.GenerateMenuContent(ctx, trimmed)
	if err != nil {
		logger.Warn("Content generation failed, serving fallback menu", logger.Fields{
			"error": err.Error(),
		})
		return models.FallbackMenu(), nil
	}
	return content, nil
}

// GenerateMenu renders a full menu image for manually entered (or
// previously generated) items. Items missing a food photo get one
// generated first; a failed food photo leaves that item without an
// image rather than failing the whole menu.
func (s *MenuService) GenerateMenu(ctx context.Context, restaurantName string, items []models.MenuItem, style string) (*GeneratedMenuResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one menu item is required", ErrInvalidInput)
	}
	if restaurantName == "" {
		restaurantName = defaultRestaurantName
	}
	if !models.AllowedStyles[style] {
		style = models.DefaultStyle
	}

	startTime := time.Now()

	for i := range items {
		if items[i].ImageURL != "" {
			continue
		}
		url, err := s.caps.Images.GenerateFoodImage(ctx, items[i].Name, items[i].Description)
		if err != nil {
			logger.Warn("Food image generation failed", logger.Fields{
				"item":  items[i].Name,
				"error": err.Error(),
			})
			continue
		}
		items[i].ImageURL = url
	}

	menuPrompt := prompt.BuildMenuPrompt(restaurantName, items, style)

	imageURL, err := s.caps.Images.GenerateMenuImage(ctx, restaurantName, items, style)
	if err != nil {
		if s.cloudwatch != nil {
			s.cloudwatch.RecordGenerationDuration(time.Since(startTime), false)
		}
		return nil, fmt.Errorf("menu image generation failed: %w", err)
	}

	if s.archive != nil {
		if _, archiveErr := s.archive.Save(restaurantName, style, items, imageURL, menuPrompt); archiveErr != nil {
			logger.Warn("Failed to archive generated menu", logger.Fields{
				"restaurant": restaurantName,
				"error":      archiveErr.Error(),
			})
		}
	}

	if s.cloudwatch != nil {
		s.cloudwatch.RecordGenerationDuration(time.Since(startTime), true)
	}

	logger.Info("Menu generated", logger.Fields{
		"restaurant":  restaurantName,
		"style":       style,
		"items":       len(items),
		"duration_ms": time.Since(startTime).Milliseconds(),
	})

	return &GeneratedMenuResult{
		ImageURL: imageURL,
		Items:    items,
		Prompt:   menuPrompt,
	}, nil
}

// ApplyEdit applies a natural-language instruction to a previously
// generated image and returns the new image reference. Menu item data
// is never touched; repeated identical instructions produce fresh
// results each time (no dedup or caching).
func (s *MenuService) ApplyEdit(ctx context.Context, imageURL, instruction string) (string, error) {
	trimmed := strings.TrimSpace(instruction)
	if trimmed == "" {
		return "", fmt.Errorf("%w: edit instruction must not be empty", ErrInvalidInput)
	}
	if imageURL == "" || !s.store.Exists(imageURL) {
		return "", fmt.Errorf("%w: unknown image reference %q", ErrInvalidInput, imageURL)
	}

	newURL, err := s.caps.Editor.EditImage(ctx, imageURL, trimmed)
	if err != nil {
		return "", fmt.Errorf("image edit failed: %w", err)
	}

	if s.archive != nil {
		if archiveErr := s.archive.ReplaceImage(imageURL, newURL); archiveErr != nil {
			logger.Warn("Failed to update archived menu after edit", logger.Fields{
				"error": archiveErr.Error(),
			})
		}
	}

	logger.Info("Image edited", logger.Fields{
		"source": imageURL,
		"result": newURL,
	})
	return newURL, nil
}

// RecentMenus lists archived generations, newest first. Returns an
// empty list when no database is configured.
func (s *MenuService) RecentMenus(limit int) ([]models.GeneratedMenu, error) {
	if s.archive == nil {
		return []models.GeneratedMenu{}, nil
	}
	return s.archive.Recent(limit)
}
