package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	KindCall = "CALL"
	KindPut  = "PUT"
)

const (
	DirectionBuy  = "BUY"
	DirectionSell = "SELL"
)

// Greeks is a sensitivity snapshot for one option contract. Volatility is the
// implied volatility the provider solved for, when it returned one.
type Greeks struct {
	Delta      decimal.Decimal  `json:"delta"`
	Gamma      decimal.Decimal  `json:"gamma"`
	Theta      decimal.Decimal  `json:"theta"`
	Vega       decimal.Decimal  `json:"vega"`
	Rho        decimal.Decimal  `json:"rho"`
	Volatility *decimal.Decimal `json:"volatility,omitempty"`
}

// Leg is one option position inside a strategy. EntryPremium is fixed at
// creation; a non-nil ExitPremium marks the leg as closed. The at-entry IV
// and Greeks snapshot is immutable; live market fields are refreshed on read
// and never persisted, so the two provenances stay side by side.
type Leg struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	StrategyID string `gorm:"type:varchar(40);not null;index" json:"-"`
	Position   int    `gorm:"not null;default:0" json:"-"`

	Ticker    string          `gorm:"type:varchar(30);not null" json:"ticker"`
	Kind      string          `gorm:"type:varchar(4);not null" json:"kind"`
	Direction string          `gorm:"type:varchar(4);not null" json:"direction"`
	Strike    decimal.Decimal `gorm:"type:numeric(20,10);not null" json:"strike"`
	Quantity  int64           `gorm:"not null" json:"quantity"`

	EntryPremium decimal.Decimal  `gorm:"type:numeric(20,10);not null" json:"entryPremium"`
	ExitPremium  *decimal.Decimal `gorm:"type:numeric(20,10)" json:"exitPremium,omitempty"`

	Expiration   *time.Time `gorm:"type:date" json:"expiration,omitempty"`
	ParentSymbol *string    `gorm:"type:varchar(30)" json:"parentSymbol,omitempty"`

	// Captured once when the leg was entered.
	EntryImpliedVol *decimal.Decimal `gorm:"type:numeric(12,6)" json:"entryImpliedVol,omitempty"`
	EntryGreeks     datatypes.JSON   `gorm:"type:jsonb" json:"entryGreeks,omitempty"`

	// Live market data, refreshed on read.
	CurrentQuote     *decimal.Decimal `gorm:"-" json:"currentQuote,omitempty"`
	UnderlyingPrice  *decimal.Decimal `gorm:"-" json:"underlyingPrice,omitempty"`
	UnderlyingIV     *decimal.Decimal `gorm:"-" json:"underlyingIv,omitempty"`
	UnderlyingIVRank *decimal.Decimal `gorm:"-" json:"underlyingIvRank,omitempty"`
	PercentToStrike  *decimal.Decimal `gorm:"-" json:"percentToStrike,omitempty"`
	Moneyness        string           `gorm:"-" json:"moneyness,omitempty"`
	LiveGreeks       *Greeks          `gorm:"-" json:"liveGreeks,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"-"`
}

func (Leg) TableName() string {
	return "legs"
}

// Closed reports whether the leg has been exited.
func (l *Leg) Closed() bool {
	return l.ExitPremium != nil
}
