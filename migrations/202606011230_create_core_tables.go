package migrations

import (
	"dansarena/models"

	"gorm.io/gorm"
)

// AutoMigrateDB applies the schema for all core tables.
func AutoMigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Studio{},
		&models.BattleRequest{},
		&models.StudioPreference{},
		&models.Notification{},
	)
}
