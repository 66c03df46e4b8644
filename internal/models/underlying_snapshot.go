package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnderlyingSnapshot is the latest known state of one underlying symbol.
type UnderlyingSnapshot struct {
	Symbol string `gorm:"type:varchar(30);primaryKey"`

	ClosePrice   decimal.Decimal  `gorm:"type:numeric(20,10);not null;default:0"`
	IV           *decimal.Decimal `gorm:"column:iv;type:numeric(12,6)"`
	IVRank       *decimal.Decimal `gorm:"column:iv_rank;type:numeric(12,6)"`
	IVPercentile *decimal.Decimal `gorm:"column:iv_percentile;type:numeric(12,6)"`

	FetchedAt time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (UnderlyingSnapshot) TableName() string {
	return "underlying_snapshots"
}
