package ai

// menuContentSchema is the JSON Schema enforced on content-generation
// output. Structured output keeps parsing deterministic; the markdown
// stripping in cleanJSON is only a belt for models that fence anyway.
var menuContentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"restaurantName": map[string]any{
			"type":        "string",
			"description": "Creative restaurant name fitting the concept",
		},
		"items": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"category":    map[string]any{"type": "string"},
					"name":        map[string]any{"type": "string"},
					"price":       map[string]any{"type": "number"},
					"description": map[string]any{"type": "string"},
				},
				"required":             []string{"category", "name", "price", "description"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []string{"restaurantName", "items"},
	"additionalProperties": false,
}
