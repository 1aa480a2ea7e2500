package prompt

import (
	"fmt"
	"strings"

	"github.com/menustudio/menustudio-api/internal/models"
)

// styleDescriptions maps a style tag to the layout language the image
// model responds to. Unknown tags fall back to modern.
var styleDescriptions = map[string]string{
	models.StyleModern:  "Modern clean design, minimalist, sharp typography, high contrast",
	models.StyleVintage: "Vintage rustic style, chalkboard aesthetic, hand-drawn feel, warm colors",
	models.StyleElegant: "Elegant upscale design, sophisticated fonts, gold accents, luxury feel",
	models.StyleCasual:  "Casual friendly design, bright colors, fun fonts, approachable layout",
}

// StyleDescription resolves a style tag to its prompt clause.
func StyleDescription(style string) string {
	if desc, ok := styleDescriptions[style]; ok {
		return desc
	}
	return styleDescriptions[models.StyleModern]
}

// BuildMenuPrompt renders the full menu-image prompt: header, items
// grouped by category in first-seen order, then the style clause.
func BuildMenuPrompt(restaurantName string, items []models.MenuItem, style string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Professional restaurant menu for '%s' with food photography layout.\n\n", restaurantName)

	var categories []string
	grouped := make(map[string][]models.MenuItem)
	for _, item := range items {
		cat := item.Category
		if cat == "" {
			cat = "Items"
		}
		if _, seen := grouped[cat]; !seen {
			categories = append(categories, cat)
		}
		grouped[cat] = append(grouped[cat], item)
	}

	for _, cat := range categories {
		fmt.Fprintf(&b, "%s:\n", strings.ToUpper(cat))
		for _, item := range grouped[cat] {
			fmt.Fprintf(&b, "- %s $%g", item.Name, item.Price)
			if item.Description != "" {
				fmt.Fprintf(&b, " - %s", item.Description)
			}
			if item.ImageURL != "" {
				b.WriteString(" [with food photo]")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n%s. Include space for food photographs next to items. "+
		"Sharp, crisp, highly readable text. Clear prices. Professional layout with image placeholders.",
		StyleDescription(style))

	return b.String()
}

// BuildFoodPhotoPrompt renders the per-item food photograph prompt.
func BuildFoodPhotoPrompt(name, description string) string {
	prompt := fmt.Sprintf("Professional food photography of %s", name)
	if description != "" {
		prompt += ", " + description
	}

	suffix, _ := NewPromptLoader().GetFoodPhotoSuffix()
	return prompt + ". " + suffix
}

// BuildContentUserPrompt renders the user turn for content generation.
func BuildContentUserPrompt(userPrompt string) string {
	guidelines, _ := NewPromptLoader().GetMenuContentGuidelines()
	return fmt.Sprintf("User request: %s\n\n%s", userPrompt, guidelines)
}
