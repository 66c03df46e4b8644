package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Strategy objectives. Fixed enumeration; stored as-is.
const (
	ObjectiveIncome      = "INCOME"
	ObjectiveDirectional = "DIRECTIONAL"
	ObjectiveRoll        = "ROLL"
	ObjectiveVolatility  = "VOLATILITY"
	ObjectiveRange       = "RANGE"
)

// Structure labels. Informational only; valuation never looks at them.
const (
	StructureCallSpread     = "CALL SPREAD"
	StructurePutSpread      = "PUT SPREAD"
	StructureIronCondor     = "IRON CONDOR"
	StructureCoveredCall    = "COVERED CALL"
	StructureCashSecuredPut = "CASH SECURED PUT"
	StructurePutBullCredit  = "PUT BULL CREDIT"
	StructureSeagull        = "SEAGULL"
	StructureTHL            = "THL"
)

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Strategy is a user-owned aggregate of option legs tracked as one position.
// TotalEntryPremium is a denormalized save-time snapshot; the leg list is the
// source of truth and the snapshot is recomputed on every save.
type Strategy struct {
	ID         string `gorm:"type:varchar(40);primaryKey" json:"id"`
	OwnerEmail string `gorm:"type:varchar(200);not null;index" json:"-"`

	Ticker    string `gorm:"type:varchar(30);not null" json:"ticker"`
	Objective string `gorm:"type:varchar(20);not null;index" json:"objective"`
	Structure string `gorm:"type:varchar(30);index" json:"structure"`
	Status    string `gorm:"type:varchar(10);not null;default:'open';index" json:"status"`

	Legs []Leg `gorm:"foreignKey:StrategyID;constraint:OnDelete:CASCADE" json:"legs"`

	TotalEntryPremium decimal.Decimal  `gorm:"type:numeric(20,10);not null;default:0" json:"totalEntryPremium"`
	StartDate         *time.Time       `gorm:"type:date" json:"startDate,omitempty"`
	InitialSpotPrice  *decimal.Decimal `gorm:"type:numeric(20,10)" json:"initialSpotPrice,omitempty"`
	StopLossPercent   *decimal.Decimal `gorm:"type:numeric(10,4)" json:"stopLossPercent,omitempty"`
	MaxGainPercent    *decimal.Decimal `gorm:"type:numeric(10,4)" json:"maxGainPercent,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamptz" json:"updatedAt"`
}

func (Strategy) TableName() string {
	return "strategies"
}

// FirstParentSymbol returns the underlying symbol of the first leg carrying
// one, or "" when no leg is linked to an underlying.
func (s *Strategy) FirstParentSymbol() string {
	for _, leg := range s.Legs {
		if leg.ParentSymbol != nil && *leg.ParentSymbol != "" {
			return *leg.ParentSymbol
		}
	}
	return ""
}
