package ai

import (
	"context"

	"github.com/menustudio/menustudio-api/internal/models"
)

// The three capability interfaces the core depends on. Which provider
// or model implements them is a wiring detail; the orchestrator and
// services only see these shapes.

// ContentGenerator turns a restaurant concept prompt into structured
// menu data (restaurant name + items).
type ContentGenerator interface {
	// GenerateMenuContent returns validated menu content or an error.
	// Retries for transient provider failures happen inside the
	// implementation, never in the callers.
	GenerateMenuContent(ctx context.Context, userPrompt string) (*models.MenuContent, error)

	// Name returns the provider name (e.g., "openai")
	Name() string
}

// ImageGenerator renders menu artwork and individual food photographs,
// returning image references (asset URLs).
type ImageGenerator interface {
	GenerateMenuImage(ctx context.Context, restaurantName string, items []models.MenuItem, style string) (string, error)
	GenerateFoodImage(ctx context.Context, name, description string) (string, error)
}

// ImageEditor applies a natural-language instruction to a previously
// generated image and returns a fresh image reference. The source
// image is never modified in place.
type ImageEditor interface {
	EditImage(ctx context.Context, imageURL, instruction string) (string, error)
}

// Capabilities bundles the external AI operations the services need.
type Capabilities struct {
	Content ContentGenerator
	Images  ImageGenerator
	Editor  ImageEditor
}
