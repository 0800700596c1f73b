package models

import (
	"time"

	"gorm.io/datatypes"
)

// ChangeHistoryEntry is the append-only audit record, written once per
// execution attempt. Never mutated or deleted.
type ChangeHistoryEntry struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	ProposalID uint64 `gorm:"not null;index"`

	Kind     string `gorm:"type:varchar(30);not null"`
	TargetID string `gorm:"type:varchar(100);not null;index"`

	Before datatypes.JSON `gorm:"type:jsonb;not null"`
	After  datatypes.JSON `gorm:"type:jsonb;not null"`

	Outcome string  `gorm:"type:varchar(20);not null;index"`
	Error   *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (ChangeHistoryEntry) TableName() string {
	return "change_history"
}
