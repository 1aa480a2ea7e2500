package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menustudio/menustudio-api/internal/models"
)

func TestStyleDescription(t *testing.T) {
	assert.Contains(t, StyleDescription(models.StyleVintage), "chalkboard")
	assert.Contains(t, StyleDescription(models.StyleElegant), "gold accents")

	// Unknown styles fall back to modern
	assert.Equal(t, StyleDescription(models.StyleModern), StyleDescription("brutalist"))
	assert.Equal(t, StyleDescription(models.StyleModern), StyleDescription(""))
}

func TestBuildMenuPromptGroupsByCategory(t *testing.T) {
	items := []models.MenuItem{
		{Category: "Desserts", Name: "Tiramisu", Price: 7},
		{Category: "Main Course", Name: "Pasta", Price: 12.5, Description: "Fresh egg pasta"},
		{Category: "Desserts", Name: "Panna Cotta", Price: 6},
	}

	prompt := BuildMenuPrompt("Trattoria", items, models.StyleModern)

	assert.Contains(t, prompt, "Professional restaurant menu for 'Trattoria'")
	assert.Contains(t, prompt, "DESSERTS:")
	assert.Contains(t, prompt, "MAIN COURSE:")
	assert.Contains(t, prompt, "- Pasta $12.5 - Fresh egg pasta")
	assert.Contains(t, prompt, "- Tiramisu $7")

	// Categories appear in first-seen order
	assert.Less(t, strings.Index(prompt, "DESSERTS:"), strings.Index(prompt, "MAIN COURSE:"))

	// Both dessert items land under the one DESSERTS heading
	assert.Equal(t, 1, strings.Count(prompt, "DESSERTS:"))
}

func TestBuildMenuPromptDefaultsCategory(t *testing.T) {
	items := []models.MenuItem{{Name: "Coffee", Price: 3}}
	prompt := BuildMenuPrompt("Trattoria", items, models.StyleModern)
	assert.Contains(t, prompt, "ITEMS:")
}

func TestBuildMenuPromptMarksFoodPhotos(t *testing.T) {
	items := []models.MenuItem{
		{Name: "Pasta", Price: 12, ImageURL: "/assets/food.png"},
		{Name: "Coffee", Price: 3},
	}
	prompt := BuildMenuPrompt("Trattoria", items, models.StyleModern)

	assert.Contains(t, prompt, "- Pasta $12 [with food photo]")
	assert.NotContains(t, prompt, "- Coffee $3 [with food photo]")
}

func TestBuildMenuPromptAppendsStyleClause(t *testing.T) {
	items := []models.MenuItem{{Name: "Pasta", Price: 12}}
	prompt := BuildMenuPrompt("Trattoria", items, models.StyleVintage)
	assert.Contains(t, prompt, StyleDescription(models.StyleVintage))
}

func TestBuildFoodPhotoPrompt(t *testing.T) {
	withDesc := BuildFoodPhotoPrompt("Pasta", "fresh egg pasta")
	assert.True(t, strings.HasPrefix(withDesc, "Professional food photography of Pasta, fresh egg pasta."))

	withoutDesc := BuildFoodPhotoPrompt("Pasta", "")
	assert.True(t, strings.HasPrefix(withoutDesc, "Professional food photography of Pasta."))
}

func TestBuildContentUserPrompt(t *testing.T) {
	prompt := BuildContentUserPrompt("a cozy italian place")
	assert.True(t, strings.HasPrefix(prompt, "User request: a cozy italian place\n\n"))

	guidelines, err := NewPromptLoader().GetMenuContentGuidelines()
	require.NoError(t, err)
	assert.Contains(t, prompt, guidelines)
}
