package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	AlertRuleStopLoss = "stop_loss"
	AlertRuleMaxGain  = "max_gain"
)

// Alert records a stop-loss or max-gain threshold breach observed by the
// monitor. One row per breach event; never updated.
type Alert struct {
	ID         string `gorm:"type:varchar(40);primaryKey" json:"id"`
	StrategyID string `gorm:"type:varchar(40);not null;index" json:"strategyId"`
	OwnerEmail string `gorm:"type:varchar(200);not null;index" json:"-"`

	Rule         string          `gorm:"type:varchar(20);not null" json:"rule"`
	ThresholdPct decimal.Decimal `gorm:"type:numeric(10,4);not null" json:"thresholdPct"`
	ObservedPct  decimal.Decimal `gorm:"type:numeric(20,10);not null" json:"observedPct"`

	TriggeredAt time.Time `gorm:"type:timestamptz;not null;index" json:"triggeredAt"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
}

func (Alert) TableName() string {
	return "alerts"
}
