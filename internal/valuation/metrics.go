package valuation

import (
	"github.com/shopspring/decimal"
)

// Moneyness buckets for a leg relative to the live spot.
const (
	MoneynessAtTheMoney = "at_the_money"
	MoneynessAboveSpot  = "above_spot"
	MoneynessBelowSpot  = "below_spot"
)

// ATMThresholdPct is the band (in percentage points) around the spot inside
// which a strike counts as at-the-money. Tunable heuristic, not a law.
var ATMThresholdPct = decimal.NewFromInt(1)

// PercentToStrike is the signed distance from spot to strike as a percentage
// of spot: ((strike/spot)-1) x 100. Undefined (ok=false) when spot is not
// strictly positive; callers display a placeholder, never zero.
func PercentToStrike(strike, spot decimal.Decimal) (decimal.Decimal, bool) {
	if !spot.IsPositive() {
		return decimal.Zero, false
	}
	one := decimal.NewFromInt(1)
	return strike.Div(spot).Sub(one).Mul(decimal.NewFromInt(100)), true
}

// ClassifyMoneyness buckets a percent-to-strike value. Directional
// interpretation (favorable vs unfavorable for the leg) is left to the
// presentation layer; this only looks at magnitude and sign.
func ClassifyMoneyness(percentToStrike decimal.Decimal) string {
	if percentToStrike.Abs().LessThan(ATMThresholdPct) {
		return MoneynessAtTheMoney
	}
	if percentToStrike.IsPositive() {
		return MoneynessAboveSpot
	}
	return MoneynessBelowSpot
}
