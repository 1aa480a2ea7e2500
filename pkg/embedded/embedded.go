package embedded

import (
	_ "embed"
)

// Embed all prompt data files
//
//go:embed data/menu_system_prompt.txt
var MenuSystemPromptTxt []byte

//go:embed data/menu_content_guidelines.txt
var MenuContentGuidelinesTxt []byte

//go:embed data/food_photo_suffix.txt
var FoodPhotoSuffixTxt []byte
