package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menustudio/menustudio-api/internal/ai"
	"github.com/menustudio/menustudio-api/internal/models"
	"github.com/menustudio/menustudio-api/internal/services"
	"github.com/menustudio/menustudio-api/internal/session"
)

// stubContent is a test implementation of the ContentGenerator interface
type stubContent struct{}

func (stubContent) Name() string { return "stub" }

func (stubContent) GenerateMenuContent(ctx context.Context, userPrompt string) (*models.MenuContent, error) {
	return &models.MenuContent{
		RestaurantName: "Trattoria",
		Items:          []models.MenuItem{{Name: "Pasta", Price: 12}},
	}, nil
}

// stubImages is a test implementation of ImageGenerator and ImageEditor
type stubImages struct{}

func (stubImages) GenerateMenuImage(ctx context.Context, restaurantName string, items []models.MenuItem, style string) (string, error) {
	return "/assets/menu.png", nil
}

func (stubImages) GenerateFoodImage(ctx context.Context, name, description string) (string, error) {
	return "/assets/food.png", nil
}

func (stubImages) EditImage(ctx context.Context, imageURL, instruction string) (string, error) {
	return "/assets/edited.png", nil
}

func newVariantsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewStore(time.Hour, 0)
	t.Cleanup(store.Close)

	caps := &ai.Capabilities{Content: stubContent{}, Images: stubImages{}, Editor: stubImages{}}
	svc := services.NewVariantService(store, caps, nil, time.Minute)
	handler := NewVariantsHandler(svc)

	router := gin.New()
	router.POST("/api/generate-variants", handler.GenerateVariants)
	router.GET("/api/check-variant-status/:sessionId", handler.CheckVariantStatus)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGenerateVariantsRejectsEmptyPrompt(t *testing.T) {
	router := newVariantsRouter(t)

	w := postJSON(t, router, "/api/generate-variants", gin.H{"prompt": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "error")
}

func TestGenerateVariantsReturnsSessionImmediately(t *testing.T) {
	router := newVariantsRouter(t)

	w := postJSON(t, router, "/api/generate-variants", gin.H{"prompt": "a cozy italian place"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		SessionID string         `json:"sessionId"`
		Variant1  models.Variant `json:"variant1"`
		Variant2  models.Variant `json:"variant2"`
		Variant3  models.Variant `json:"variant3"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, models.VariantGenerating, resp.Variant1.Status)
	assert.Equal(t, models.VariantGenerating, resp.Variant2.Status)
	assert.Equal(t, models.VariantGenerating, resp.Variant3.Status)
}

func TestCheckVariantStatusUnknownSession(t *testing.T) {
	router := newVariantsRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/check-variant-status/not-a-session", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Session not found", resp["error"])
}

func TestCheckVariantStatusPollsToAllReady(t *testing.T) {
	router := newVariantsRouter(t)

	w := postJSON(t, router, "/api/generate-variants", gin.H{"prompt": "a cozy italian place"})
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	type pollResponse struct {
		Variant1 models.Variant `json:"variant1"`
		Variant2 models.Variant `json:"variant2"`
		Variant3 models.Variant `json:"variant3"`
		AllReady bool           `json:"allReady"`
	}

	poll := func() pollResponse {
		req := httptest.NewRequest(http.MethodGet, "/api/check-variant-status/"+created.SessionID, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp pollResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	require.Eventually(t, func() bool {
		return poll().AllReady
	}, 2*time.Second, 10*time.Millisecond)

	final := poll()
	for _, v := range []models.Variant{final.Variant1, final.Variant2, final.Variant3} {
		assert.Equal(t, models.VariantReady, v.Status)
		assert.Equal(t, "Trattoria", v.RestaurantName)
		assert.Equal(t, "/assets/menu.png", v.ImageURL)
	}

	// Terminal snapshots are stable across repeated polls
	assert.Equal(t, final, poll())
}
