package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSON(t *testing.T) {
	raw := "{\"restaurantName\": \"Trattoria\"}"

	assert.Equal(t, raw, cleanJSON(raw))
	assert.Equal(t, raw, cleanJSON("```json\n"+raw+"\n```"))
	assert.Equal(t, raw, cleanJSON("```\n"+raw+"\n```"))
	assert.Equal(t, raw, cleanJSON("  \n"+raw+"\n  "))
}

func TestParseMenuContent(t *testing.T) {
	valid := `{
		"restaurantName": "Trattoria",
		"items": [
			{"category": "Main Course", "name": "Pasta", "price": 12.5, "description": "Fresh egg pasta"}
		]
	}`

	content, err := parseMenuContent(valid)
	require.NoError(t, err)
	assert.Equal(t, "Trattoria", content.RestaurantName)
	require.Len(t, content.Items, 1)
	assert.Equal(t, "Pasta", content.Items[0].Name)
	assert.InDelta(t, 12.5, content.Items[0].Price, 0.001)
}

func TestParseMenuContentRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"not json":       "this is not json",
		"missing name":   `{"items": [{"name": "Pasta", "price": 12}]}`,
		"no items":       `{"restaurantName": "Trattoria", "items": []}`,
		"item no name":   `{"restaurantName": "Trattoria", "items": [{"price": 12}]}`,
		"negative price": `{"restaurantName": "Trattoria", "items": [{"name": "Pasta", "price": -1}]}`,
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseMenuContent(input)
			assert.Error(t, err)
		})
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abc...", truncateString("abcdef", 3))
}

func TestMenuContentSchemaShape(t *testing.T) {
	props, ok := menuContentSchema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "restaurantName")
	assert.Contains(t, props, "items")
	assert.Equal(t, false, menuContentSchema["additionalProperties"])
}
