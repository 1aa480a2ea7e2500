package database

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/menustudio/menustudio-api/internal/models"
)

const defaultRecentLimit = 20

// Archive persists completed single-shot menu generations. Sessions
// and variants are deliberately NOT archived - they live in the
// in-memory session store and expire with it.
type Archive struct {
	db *gorm.DB
}

// NewArchive wraps a connected database.
func NewArchive(db *gorm.DB) *Archive {
	return &Archive{db: db}
}

// Save records a generated menu and returns the stored row.
func (a *Archive) Save(restaurantName, style string, items []models.MenuItem, imageURL, prompt string) (*models.GeneratedMenu, error) {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode items: %w", err)
	}

	menu := &models.GeneratedMenu{
		RestaurantName: restaurantName,
		Style:          style,
		ItemsJSON:      string(itemsJSON),
		ImageURL:       imageURL,
		Prompt:         prompt,
	}

	if err := a.db.Create(menu).Error; err != nil {
		return nil, fmt.Errorf("failed to save generated menu: %w", err)
	}
	return menu, nil
}

// ReplaceImage points an archived menu at its edited image. Only the
// image reference changes; name, style and items are preserved.
func (a *Archive) ReplaceImage(oldImageURL, newImageURL string) error {
	result := a.db.Model(&models.GeneratedMenu{}).
		Where("image_url = ?", oldImageURL).
		Update("image_url", newImageURL)
	if result.Error != nil {
		return fmt.Errorf("failed to update archived menu image: %w", result.Error)
	}
	return nil
}

// Recent returns the most recently generated menus, newest first.
func (a *Archive) Recent(limit int) ([]models.GeneratedMenu, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	var menus []models.GeneratedMenu
	if err := a.db.Order("created_at DESC").Limit(limit).Find(&menus).Error; err != nil {
		return nil, fmt.Errorf("failed to list generated menus: %w", err)
	}
	return menus, nil
}
