package models

import (
	"time"

	"gorm.io/datatypes"
)

// SyncState tracks the watermark of the periodic metric fetch per scope so
// an interrupted sync resumes instead of re-pulling the full window.
type SyncState struct {
	Scope         string         `gorm:"primaryKey;type:text"`
	WatermarkDate *time.Time     `gorm:"type:date"`
	LastSuccessAt *time.Time     `gorm:"type:timestamptz"`
	LastAttemptAt *time.Time     `gorm:"type:timestamptz"`
	LastError     *string        `gorm:"type:text"`
	StatsJSON     datatypes.JSON `gorm:"type:jsonb"`
}

func (SyncState) TableName() string {
	return "sync_state"
}
