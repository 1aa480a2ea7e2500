package prompt

import (
	"strings"

	"github.com/menustudio/menustudio-api/pkg/embedded"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetMenuSystemPrompt loads the menu content generation system prompt
func (l *Loader) GetMenuSystemPrompt() (string, error) {
	return strings.TrimSpace(string(embedded.MenuSystemPromptTxt)), nil
}

// GetMenuContentGuidelines loads the content generation guidelines
func (l *Loader) GetMenuContentGuidelines() (string, error) {
	return strings.TrimSpace(string(embedded.MenuContentGuidelinesTxt)), nil
}

// GetFoodPhotoSuffix loads the trailing style clause for food photos
func (l *Loader) GetFoodPhotoSuffix() (string, error) {
	return strings.TrimSpace(string(embedded.FoodPhotoSuffixTxt)), nil
}
