package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign mirrors a Sponsored Products campaign as reported by the ad
// platform. The platform id is the primary key; sync upserts by id.
type Campaign struct {
	ID            string `gorm:"primaryKey;type:varchar(100)"`
	Name          string `gorm:"type:varchar(255);not null;index"`
	State         string `gorm:"type:varchar(20);not null;index"`
	CampaignType  string `gorm:"type:varchar(30)"`
	TargetingType string `gorm:"type:varchar(20)"`

	DailyBudget decimal.Decimal `gorm:"type:numeric(20,4);not null"`

	StartDate *time.Time `gorm:"type:date"`
	EndDate   *time.Time `gorm:"type:date"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Campaign) TableName() string {
	return "campaigns"
}
