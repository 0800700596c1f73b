package db

import (
	"adpilot/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Campaign{},
		&models.Keyword{},
		&models.DailyMetric{},
		&models.ChangeProposal{},
		&models.ChangeHistoryEntry{},
		&models.SyncState{},
		&models.SystemSetting{},
	)
}
