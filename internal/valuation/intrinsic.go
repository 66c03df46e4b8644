// Package valuation holds the pure strategy math: intrinsic values,
// entry/mark aggregation, payoff curves and per-leg risk metrics. Everything
// here is deterministic, side-effect free and total; callers pass fully
// formed legs and price maps and render placeholders for whatever comes back
// undefined.
package valuation

import (
	"github.com/shopspring/decimal"

	"optiontracker/internal/models"
)

// Intrinsic returns the liquidation value of a single option contract at the
// given spot price, ignoring time value. max(0, ...) absorbs degenerate
// (zero or negative) spots.
func Intrinsic(kind string, strike, spot decimal.Decimal) decimal.Decimal {
	var v decimal.Decimal
	if kind == models.KindPut {
		v = strike.Sub(spot)
	} else {
		v = spot.Sub(strike)
	}
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// DirectionSign maps BUY to +1 and SELL to -1.
func DirectionSign(direction string) decimal.Decimal {
	if direction == models.DirectionSell {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// LegLiquidationValue is the leg's contribution to strategy liquidation value
// at a hypothetical spot: intrinsic x quantity, signed by direction.
func LegLiquidationValue(leg models.Leg, spot decimal.Decimal) decimal.Decimal {
	return Intrinsic(leg.Kind, leg.Strike, spot).
		Mul(decimal.NewFromInt(leg.Quantity)).
		Mul(DirectionSign(leg.Direction))
}
