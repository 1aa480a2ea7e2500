package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"

	"github.com/menustudio/menustudio-api/internal/ai"
	"github.com/menustudio/menustudio-api/internal/logger"
	"github.com/menustudio/menustudio-api/internal/metrics"
	"github.com/menustudio/menustudio-api/internal/models"
	"github.com/menustudio/menustudio-api/internal/session"
)

// ErrInvalidInput marks request validation failures that must be
// rejected before any session is created or task launched.
var ErrInvalidInput = errors.New("invalid input")

// VariantService owns the variant session lifecycle: it creates
// sessions, fans each one out into three independent pipelines, and
// is the only writer of variant state. Callers get the session id
// back immediately; progress is observed by polling the store.
type VariantService struct {
	store         *session.Store
	caps          *ai.Capabilities
	cloudwatch    *metrics.Client
	sentryMetrics *metrics.SentryMetrics
	deadline      time.Duration
}

// NewVariantService creates the orchestrator.
func NewVariantService(store *session.Store, caps *ai.Capabilities, cw *metrics.Client, deadline time.Duration) *VariantService {
	return &VariantService{
		store:         store,
		caps:          caps,
		cloudwatch:    cw,
		sentryMetrics: metrics.NewSentryMetrics(),
		deadline:      deadline,
	}
}

// StartSession validates the prompt, creates a session with all three
// slots generating, launches the three pipelines and returns without
// waiting for any of them. An invalid prompt creates nothing.
func (s *VariantService) StartSession(promptText string) (models.SessionSnapshot, error) {
	trimmed := strings.TrimSpace(promptText)
	if trimmed == "" {
		return models.SessionSnapshot{}, fmt.Errorf("%w: prompt must not be empty", ErrInvalidInput)
	}

	sessionID := uuid.New().String()
	snapshot, err := s.store.Create(sessionID)
	if err != nil {
		return models.SessionSnapshot{}, err
	}

	logger.Info("Variant session started", logger.Fields{
		"session_id": sessionID,
		"prompt_len": len(trimmed),
	})

	for slot := models.FirstVariantSlot; slot < models.FirstVariantSlot+models.VariantCount; slot++ {
		go s.runVariant(sessionID, slot, trimmed)
	}

	return snapshot, nil
}

// Poll returns the current snapshot of a session.
func (s *VariantService) Poll(sessionID string) (models.SessionSnapshot, error) {
	return s.store.Get(sessionID)
}

// runVariant executes one slot's pipeline: content generation, then
// image generation, then a single terminal write. The pipeline runs on
// a detached context so it survives the originating HTTP request, but
// under a deadline so a hung provider call cannot strand the slot in
// generating forever.
func (s *VariantService) runVariant(sessionID string, slot int, promptText string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.deadline)
	defer cancel()

	startTime := time.Now()

	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			s.failVariant(ctx, sessionID, slot, fmt.Sprintf("internal error: %v", r), startTime)
		}
	}()

	content, err := s.caps.Content.GenerateMenuContent(ctx, promptText)
	if err != nil {
		s.failVariant(ctx, sessionID, slot, variantErrorDetail("menu content generation", err), startTime)
		return
	}

	imageURL, err := s.caps.Images.GenerateMenuImage(ctx, content.RestaurantName, content.Items, models.DefaultStyle)
	if err != nil {
		s.failVariant(ctx, sessionID, slot, variantErrorDetail("menu image generation", err), startTime)
		return
	}

	ready := models.Variant{
		Slot:           slot,
		Status:         models.VariantReady,
		RestaurantName: content.RestaurantName,
		Items:          content.Items,
		ImageURL:       imageURL,
	}
	if err := s.store.UpsertVariant(sessionID, slot, ready); err != nil {
		// Session evicted mid-pipeline or a state machine violation.
		// Nothing to surface to a caller; the result is simply dropped.
		logger.Warn("Failed to store ready variant", logger.Fields{
			"session_id": sessionID,
			"slot":       slot,
			"error":      err.Error(),
		})
		return
	}

	duration := time.Since(startTime)
	s.sentryMetrics.RecordVariantOutcome(ctx, sessionID, slot, true, duration)
	if s.cloudwatch != nil {
		s.cloudwatch.RecordVariantOutcome(true, duration)
	}

	logger.Info("Variant ready", logger.Fields{
		"session_id":  sessionID,
		"slot":        slot,
		"restaurant":  content.RestaurantName,
		"items":       len(content.Items),
		"duration_ms": duration.Milliseconds(),
	})
}

// failVariant records a terminal error state for one slot. A failed
// slot never affects the other two.
func (s *VariantService) failVariant(ctx context.Context, sessionID string, slot int, detail string, startTime time.Time) {
	failed := models.Variant{
		Slot:   slot,
		Status: models.VariantError,
		Error:  detail,
	}
	if err := s.store.UpsertVariant(sessionID, slot, failed); err != nil {
		logger.Warn("Failed to store variant error", logger.Fields{
			"session_id": sessionID,
			"slot":       slot,
			"error":      err.Error(),
		})
		return
	}

	duration := time.Since(startTime)
	s.sentryMetrics.RecordVariantOutcome(ctx, sessionID, slot, false, duration)
	if s.cloudwatch != nil {
		s.cloudwatch.RecordVariantOutcome(false, duration)
	}

	logger.Warn("Variant failed", logger.Fields{
		"session_id":  sessionID,
		"slot":        slot,
		"detail":      detail,
		"duration_ms": duration.Milliseconds(),
	})
}

// variantErrorDetail produces the user-visible error detail for a slot.
func variantErrorDetail(stage string, err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return stage + " timed out"
	}
	return stage + " failed: " + err.Error()
}
