package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyMetric is one immutable performance fact per (campaign, day).
// Re-ingestion for the same key replaces the row (last write wins).
// Money-like values are numeric to avoid float errors.
type DailyMetric struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	CampaignID string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_daily_metrics_campaign_date,priority:1"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_metrics_campaign_date,priority:2;index"`

	Impressions int64 `gorm:"not null;default:0"`
	Clicks      int64 `gorm:"not null;default:0"`
	Orders      int64 `gorm:"not null;default:0"`
	UnitsSold   int64 `gorm:"not null;default:0"`

	Spend decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	Sales decimal.Decimal `gorm:"type:numeric(20,4);not null"`

	// KENP page-read attribution; absent for titles not in Kindle Unlimited.
	PagesRead       int64           `gorm:"not null;default:0"`
	PageReadRoyalty decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (DailyMetric) TableName() string {
	return "daily_metrics"
}
