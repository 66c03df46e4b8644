package valuation

import (
	"github.com/shopspring/decimal"

	"optiontracker/internal/models"
)

// Breakdown is the live valuation of a strategy against a premium map.
// MarkValue is a best-effort partial sum when MissingData is set; callers
// must not read it as a complete total in that case. PnLPercent is nil when
// EntryCost is exactly zero.
type Breakdown struct {
	EntryCost   decimal.Decimal
	MarkValue   decimal.Decimal
	MissingData bool
	PnL         decimal.Decimal
	PnLPercent  *decimal.Decimal
}

// EntryCost sums entryPremium x quantity x sign across legs. This is the
// formula behind the persisted TotalEntryPremium snapshot; exit and live
// premiums never participate.
func EntryCost(legs []models.Leg) decimal.Decimal {
	total := decimal.Zero
	for _, leg := range legs {
		total = total.Add(leg.EntryPremium.
			Mul(decimal.NewFromInt(leg.Quantity)).
			Mul(DirectionSign(leg.Direction)))
	}
	return total
}

// Aggregate marks the legs against the premium map. A leg whose ticker is
// absent from the map raises MissingData instead of contributing zero.
func Aggregate(legs []models.Leg, premiums map[string]decimal.Decimal) Breakdown {
	b := Breakdown{EntryCost: EntryCost(legs)}
	for _, leg := range legs {
		premium, ok := premiums[leg.Ticker]
		if !ok {
			b.MissingData = true
			continue
		}
		b.MarkValue = b.MarkValue.Add(premium.
			Mul(decimal.NewFromInt(leg.Quantity)).
			Mul(DirectionSign(leg.Direction)))
	}
	b.PnL = b.MarkValue.Sub(b.EntryCost)
	if !b.EntryCost.IsZero() {
		pct := b.PnL.Div(b.EntryCost.Abs()).Mul(decimal.NewFromInt(100))
		b.PnLPercent = &pct
	}
	return b
}
