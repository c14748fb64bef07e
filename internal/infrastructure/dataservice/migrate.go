package dataservice

import (
	"gorm.io/gorm"

	"stremini.backend/internal/infrastructure/models"
)

// Migrate creates or updates every collection table
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}
