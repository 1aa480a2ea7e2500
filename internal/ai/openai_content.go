package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/menustudio/menustudio-api/internal/models"
	"github.com/menustudio/menustudio-api/internal/observability"
	"github.com/menustudio/menustudio-api/internal/prompt"
)

const (
	providerNameOpenAI = "openai"

	// Retry policy for rate limits and transient provider errors.
	// Retries live here, in the capability client - the orchestrator
	// never retries a variant.
	maxContentRetries  = 3
	contentRetryDelay  = 2 * time.Second
	maxPreviewChars    = 200
	schemaNameMenuJSON = "menu_content"
)

// OpenAIContentGenerator implements ContentGenerator on OpenAI's
// Responses API with JSON Schema structured output.
type OpenAIContentGenerator struct {
	client  *openai.Client
	model   string
	prompts *prompt.Loader
}

// NewOpenAIContentGenerator creates a content generator for the given model.
func NewOpenAIContentGenerator(apiKey, model string) *OpenAIContentGenerator {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIContentGenerator{
		client:  &client,
		model:   model,
		prompts: prompt.NewPromptLoader(),
	}
}

// Name returns the provider name
func (g *OpenAIContentGenerator) Name() string {
	return providerNameOpenAI
}

// GenerateMenuContent generates and validates menu content for a
// restaurant concept. Transient failures are retried with a linear
// backoff; a response that never validates is returned as an error for
// the caller to map into its own failure handling.
func (g *OpenAIContentGenerator) GenerateMenuContent(ctx context.Context, userPrompt string) (*models.MenuContent, error) {
	startTime := time.Now()

	transaction := sentry.StartTransaction(ctx, "openai.menu_content")
	defer transaction.Finish()
	transaction.SetTag("model", g.model)
	transaction.SetTag("provider", providerNameOpenAI)

	trace := observability.GetClient().StartTrace(ctx, "menu_content", map[string]interface{}{
		"model": g.model,
	})
	defer trace.Finish()

	params, err := g.buildRequestParams(userPrompt)
	if err != nil {
		transaction.SetTag("success", "false")
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxContentRetries; attempt++ {
		if attempt > 0 {
			wait := contentRetryDelay * time.Duration(attempt)
			log.Printf("⚠️  Retrying content generation in %v (attempt %d/%d)", wait, attempt+1, maxContentRetries)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				transaction.SetTag("success", "false")
				return nil, ctx.Err()
			}
		}

		content, err := g.generateOnce(ctx, params, userPrompt, transaction, trace)
		if err == nil {
			transaction.SetTag("success", "true")
			log.Printf("✅ Menu content generated in %v: %s (%d items)",
				time.Since(startTime), content.RestaurantName, len(content.Items))
			return content, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	transaction.SetTag("success", "false")
	sentry.CaptureException(lastErr)
	return nil, fmt.Errorf("content generation failed after %d attempts: %w", maxContentRetries, lastErr)
}

// generateOnce performs a single API call + validation pass.
func (g *OpenAIContentGenerator) generateOnce(
	ctx context.Context,
	params responses.ResponseNewParams,
	userPrompt string,
	transaction *sentry.Span,
	trace *observability.Trace,
) (*models.MenuContent, error) {
	span := transaction.StartChild("openai.api_call")
	apiStartTime := time.Now()

	gen := trace.Generation("responses.create", map[string]interface{}{"model": g.model})
	gen.Model(g.model)
	gen.Input(userPrompt)

	resp, err := g.client.Responses.New(ctx, params)
	span.Finish()

	if err != nil {
		gen.SetLevel("ERROR")
		gen.Finish()
		log.Printf("❌ OPENAI REQUEST FAILED after %v: %v", time.Since(apiStartTime), err)
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	textOutput := cleanJSON(resp.OutputText())
	log.Printf("📥 OPENAI RESPONSE: output_length=%d, tokens=%d", len(textOutput), resp.Usage.TotalTokens)

	gen.Output(truncateString(textOutput, maxPreviewChars))
	gen.Usage(int(resp.Usage.InputTokens), int(resp.Usage.OutputTokens), int(resp.Usage.TotalTokens))
	gen.Finish()

	if textOutput == "" {
		return nil, fmt.Errorf("openai response did not include any output text")
	}

	content, err := parseMenuContent(textOutput)
	if err != nil {
		log.Printf("⚠️  Response validation failed: %v (first %d chars: %s)",
			err, maxPreviewChars, truncateString(textOutput, maxPreviewChars))
		return nil, err
	}

	return content, nil
}

// buildRequestParams assembles the Responses API request with the menu
// content schema attached.
func (g *OpenAIContentGenerator) buildRequestParams(userPrompt string) (responses.ResponseNewParams, error) {
	systemPrompt, err := g.prompts.GetMenuSystemPrompt()
	if err != nil {
		return responses.ResponseNewParams{}, fmt.Errorf("failed to load system prompt: %w", err)
	}

	inputItems := responses.ResponseInputParam{
		responses.ResponseInputItemParamOfMessage(
			prompt.BuildContentUserPrompt(userPrompt),
			responses.EasyInputMessageRoleUser,
		),
	}

	params := responses.ResponseNewParams{
		Model: g.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: inputItems,
		},
		Instructions: openai.String(systemPrompt),
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigParamOfJSONSchema(
				schemaNameMenuJSON,
				menuContentSchema,
			),
		},
	}

	return params, nil
}

// parseMenuContent parses and validates the model output.
func parseMenuContent(text string) (*models.MenuContent, error) {
	var content models.MenuContent
	if err := json.Unmarshal([]byte(text), &content); err != nil {
		return nil, fmt.Errorf("invalid JSON in model output: %w", err)
	}

	if content.RestaurantName == "" {
		return nil, fmt.Errorf("model output missing restaurantName")
	}
	if len(content.Items) == 0 {
		return nil, fmt.Errorf("model output contains no menu items")
	}
	for i := range content.Items {
		if !content.Items[i].Valid() {
			return nil, fmt.Errorf("menu item %d missing required fields", i)
		}
	}

	return &content, nil
}

// cleanJSON strips markdown code fences some models wrap around JSON.
func cleanJSON(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// truncateString truncates a string to a maximum length
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
