package db

import (
	"optiontracker/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.User{},
		&models.Strategy{},
		&models.Leg{},
		&models.QuoteSnapshot{},
		&models.UnderlyingSnapshot{},
		&models.Alert{},
	)
}
