package ai

import (
	"context"
	"fmt"

	"github.com/menustudio/menustudio-api/internal/assets"
	"github.com/menustudio/menustudio-api/internal/config"
)

// NewCapabilities wires the configured providers into the capability
// bundle the services consume. Both API keys are required: content
// generation runs on OpenAI, image generation and editing on Gemini.
func NewCapabilities(ctx context.Context, cfg *config.Config, store *assets.Store) (*Capabilities, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("openai API key not configured")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}

	content := NewOpenAIContentGenerator(cfg.OpenAIAPIKey, cfg.ContentModel)

	images, err := NewGeminiImageClient(ctx, cfg.GeminiAPIKey, cfg.ImageModel, store)
	if err != nil {
		return nil, err
	}

	return &Capabilities{
		Content: content,
		Images:  images,
		Editor:  images,
	}, nil
}
