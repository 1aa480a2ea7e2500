package models

import (
	"time"

	"gorm.io/gorm"
)

// Menu style tags accepted by the image generation pipeline.
const (
	StyleModern  = "modern"
	StyleVintage = "vintage"
	StyleElegant = "elegant"
	StyleCasual  = "casual"

	DefaultStyle = StyleModern
)

// AllowedStyles is the fixed set of style tags.
var AllowedStyles = map[string]bool{
	StyleModern:  true,
	StyleVintage: true,
	StyleElegant: true,
	StyleCasual:  true,
}

// Common menu categories. Free-text categories are also accepted; this
// set exists for clients that want a picker.
var CommonCategories = []string{
	"Appetizers",
	"Main Course",
	"Sides",
	"Desserts",
	"Drinks",
}

// MenuItem is a single entry on a menu. Items come either from manual
// form entry or from AI content generation and are immutable once
// added (edit = remove + re-add on the client side).
type MenuItem struct {
	Category    string  `json:"category"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// Valid reports whether the item has the minimum required fields.
func (i *MenuItem) Valid() bool {
	return i.Name != "" && i.Price >= 0
}

// MenuContent is the structured result of a content-generation call:
// a restaurant name plus its menu items.
type MenuContent struct {
	RestaurantName string     `json:"restaurantName"`
	Items          []MenuItem `json:"items"`
}

// FallbackMenu returns the default menu served when content generation
// cannot produce a valid result on the single-shot path.
func FallbackMenu() *MenuContent {
	return &MenuContent{
		RestaurantName: "The Restaurant",
		Items: []MenuItem{
			{Category: "Appetizers", Name: "Soup of the Day", Price: 6, Description: "Fresh daily soup"},
			{Category: "Main Course", Name: "Grilled Chicken", Price: 16, Description: "Herb-marinated chicken breast"},
			{Category: "Desserts", Name: "Cheesecake", Price: 7, Description: "Classic New York style"},
		},
	}
}

// GeneratedMenu is the archived record of a completed single-shot menu
// generation. The image URL is the only field the edit endpoint ever
// replaces; name, style and items are preserved across edits.
type GeneratedMenu struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	RestaurantName string         `gorm:"not null" json:"restaurantName"`
	Style          string         `gorm:"size:50;default:'modern'" json:"style"`
	ItemsJSON      string         `gorm:"type:text" json:"-"`
	ImageURL       string         `gorm:"not null" json:"imageUrl"`
	Prompt         string         `gorm:"type:text" json:"prompt,omitempty"`
}
