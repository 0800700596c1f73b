package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Keyword is a bid-carrying keyword target inside a campaign ad group.
type Keyword struct {
	ID         string `gorm:"primaryKey;type:varchar(100)"`
	CampaignID string `gorm:"type:varchar(100);not null;index"`
	AdGroupID  string `gorm:"type:varchar(100);index"`

	KeywordText string `gorm:"type:varchar(255);not null"`
	MatchType   string `gorm:"type:varchar(20);not null"`
	State       string `gorm:"type:varchar(20);not null;index"`

	Bid decimal.Decimal `gorm:"type:numeric(20,4);not null"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Keyword) TableName() string {
	return "keywords"
}
