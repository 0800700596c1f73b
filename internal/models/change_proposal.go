package models

import (
	"time"

	"gorm.io/datatypes"
)

// ChangeProposal is the only mutable long-lived entity: a typed request to
// mutate a campaign or keyword attribute, gated by explicit approval.
// Status moves pending → approved → executed|failed, or pending → rejected;
// terminal states are never re-entered. CurrentValue/ProposedValue hold the
// tagged-union payload for the change kind and are immutable once created.
type ChangeProposal struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`

	Kind string `gorm:"type:varchar(30);not null;index"`

	TargetKind string `gorm:"type:varchar(20);not null"`
	TargetID   string `gorm:"type:varchar(100);not null;index"`
	TargetName string `gorm:"type:varchar(255)"`

	CurrentValue  datatypes.JSON `gorm:"type:jsonb;not null"`
	ProposedValue datatypes.JSON `gorm:"type:jsonb;not null"`

	Reason string `gorm:"type:text"`

	Status string  `gorm:"type:varchar(20);not null;default:'pending';index"`
	Error  *string `gorm:"type:text"`

	CreatedAt  time.Time  `gorm:"type:timestamptz;autoCreateTime;index"`
	ReviewedAt *time.Time `gorm:"type:timestamptz"`
	ExecutedAt *time.Time `gorm:"type:timestamptz"`
}

func (ChangeProposal) TableName() string {
	return "change_proposals"
}
