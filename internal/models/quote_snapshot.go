package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteSnapshot is the latest known quote for one option ticker. Hot table,
// overwritten in place by the refresh job.
type QuoteSnapshot struct {
	Ticker string `gorm:"type:varchar(30);primaryKey" json:"ticker"`

	Mark  decimal.Decimal  `gorm:"type:numeric(20,10);not null;default:0" json:"mark"`
	Bid   *decimal.Decimal `gorm:"type:numeric(20,10)" json:"bid,omitempty"`
	Ask   *decimal.Decimal `gorm:"type:numeric(20,10)" json:"ask,omitempty"`
	Last  *decimal.Decimal `gorm:"type:numeric(20,10)" json:"last,omitempty"`
	Close *decimal.Decimal `gorm:"type:numeric(20,10)" json:"close,omitempty"`

	FetchedAt time.Time `gorm:"type:timestamptz;not null" json:"fetchedAt"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`
}

func (QuoteSnapshot) TableName() string {
	return "quote_snapshots"
}
