package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/menustudio/menustudio-api/internal/models"
)

// Connect opens the Postgres connection for the menu archive.
func Connect(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate runs schema migrations.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.GeneratedMenu{})
}
