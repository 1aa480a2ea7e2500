package ai

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"google.golang.org/genai"

	"github.com/menustudio/menustudio-api/internal/assets"
	"github.com/menustudio/menustudio-api/internal/models"
	"github.com/menustudio/menustudio-api/internal/prompt"
)

const (
	providerNameGemini = "gemini"
	geminiUserRole     = "user"
	mimeTypePNG        = "image/png"
	mimeTypeJPEG       = "image/jpeg"
)

// GeminiImageClient implements ImageGenerator and ImageEditor using
// Google's Gemini image-output models. Generated bytes are written to
// the asset store; everything downstream only sees asset URLs.
type GeminiImageClient struct {
	client *genai.Client
	model  string
	store  *assets.Store
}

// NewGeminiImageClient creates a new Gemini-backed image client.
func NewGeminiImageClient(ctx context.Context, apiKey, model string, store *assets.Store) (*GeminiImageClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiImageClient{
		client: client,
		model:  model,
		store:  store,
	}, nil
}

// Name returns the provider name
func (c *GeminiImageClient) Name() string {
	return providerNameGemini
}

// GenerateMenuImage renders the full menu layout image.
func (c *GeminiImageClient) GenerateMenuImage(
	ctx context.Context,
	restaurantName string,
	items []models.MenuItem,
	style string,
) (string, error) {
	menuPrompt := prompt.BuildMenuPrompt(restaurantName, items, style)
	log.Printf("🖼  Generating menu image for '%s' (style: %s, prompt: %d chars)",
		restaurantName, style, len(menuPrompt))

	return c.generateImage(ctx, "gemini.menu_image", []*genai.Part{{Text: menuPrompt}})
}

// GenerateFoodImage renders a single food photograph for a menu item.
func (c *GeminiImageClient) GenerateFoodImage(ctx context.Context, name, description string) (string, error) {
	foodPrompt := prompt.BuildFoodPhotoPrompt(name, description)
	log.Printf("🖼  Generating food image for '%s'", name)

	return c.generateImage(ctx, "gemini.food_image", []*genai.Part{{Text: foodPrompt}})
}

// EditImage feeds the stored source image plus the instruction back
// through the image model and stores the result as a new asset. The
// source asset is left untouched.
func (c *GeminiImageClient) EditImage(ctx context.Context, imageURL, instruction string) (string, error) {
	data, err := c.store.Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("cannot load image to edit: %w", err)
	}

	parts := []*genai.Part{
		{Text: instruction},
		{InlineData: &genai.Blob{MIMEType: mimeTypePNG, Data: data}},
	}

	log.Printf("✏️  Editing image %s: %s", imageURL, instruction)
	return c.generateImage(ctx, "gemini.edit_image", parts)
}

// generateImage runs one image-model call and persists the first image
// part of the response.
func (c *GeminiImageClient) generateImage(ctx context.Context, op string, parts []*genai.Part) (string, error) {
	startTime := time.Now()

	transaction := sentry.StartTransaction(ctx, op)
	defer transaction.Finish()
	transaction.SetTag("model", c.model)
	transaction.SetTag("provider", providerNameGemini)

	contents := []*genai.Content{{
		Role:  geminiUserRole,
		Parts: parts,
	}}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}

	span := transaction.StartChild("gemini.api_call")
	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	span.Finish()

	if err != nil {
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	imageData, mimeType, err := firstImagePart(result)
	if err != nil {
		transaction.SetTag("success", "false")
		return "", err
	}

	url, err := c.store.Put(imageData, extForMIME(mimeType))
	if err != nil {
		transaction.SetTag("success", "false")
		return "", err
	}

	transaction.SetTag("success", "true")
	log.Printf("✅ Image generated in %v: %s (%d bytes)", time.Since(startTime), url, len(imageData))
	return url, nil
}

// firstImagePart extracts the first inline image from a response.
func firstImagePart(result *genai.GenerateContentResponse) ([]byte, string, error) {
	for _, cand := range result.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, part.InlineData.MIMEType, nil
			}
		}
	}
	return nil, "", fmt.Errorf("gemini response did not include an image")
}

func extForMIME(mimeType string) string {
	if mimeType == mimeTypeJPEG {
		return "jpg"
	}
	return "png"
}
