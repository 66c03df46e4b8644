package valuation

import (
	"github.com/shopspring/decimal"

	"optiontracker/internal/models"
)

// PayoffSteps partitions the sampling domain. 50 steps renders smoothly and
// stays cheap to recompute on every request.
const PayoffSteps = 50

var (
	lowerSpotFactor   = decimal.NewFromFloat(0.8)
	upperSpotFactor   = decimal.NewFromFloat(1.2)
	lowerStrikeFactor = decimal.NewFromFloat(0.9)
	upperStrikeFactor = decimal.NewFromFloat(1.1)
)

// PayoffPoint is one (spot, P&L) sample of the at-expiration curve.
type PayoffPoint struct {
	Spot decimal.Decimal `json:"spot"`
	PnL  decimal.Decimal `json:"pnl"`
}

// PayoffAt is the strategy P&L at expiration for one hypothetical spot:
// summed leg liquidation values minus the entry premium snapshot.
func PayoffAt(legs []models.Leg, totalEntryPremium, spot decimal.Decimal) decimal.Decimal {
	value := decimal.Zero
	for _, leg := range legs {
		value = value.Add(LegLiquidationValue(leg, spot))
	}
	return value.Sub(totalEntryPremium)
}

// PayoffCurve samples the at-expiration P&L across a spot domain bracketing
// both the current price (+/-20%) and every strike (-10%/+10%), in ascending
// spot order. Returns nil when there are no legs or the reference spot is not
// strictly positive; the caller treats that as "no chart data".
func PayoffCurve(legs []models.Leg, totalEntryPremium, currentSpot decimal.Decimal) []PayoffPoint {
	if len(legs) == 0 || !currentSpot.IsPositive() {
		return nil
	}

	minStrike := legs[0].Strike
	maxStrike := legs[0].Strike
	for _, leg := range legs[1:] {
		if leg.Strike.LessThan(minStrike) {
			minStrike = leg.Strike
		}
		if leg.Strike.GreaterThan(maxStrike) {
			maxStrike = leg.Strike
		}
	}

	lower := decimal.Min(currentSpot.Mul(lowerSpotFactor), minStrike.Mul(lowerStrikeFactor))
	upper := decimal.Max(currentSpot.Mul(upperSpotFactor), maxStrike.Mul(upperStrikeFactor))
	step := upper.Sub(lower).Div(decimal.NewFromInt(PayoffSteps))

	points := make([]PayoffPoint, 0, PayoffSteps+1)
	for i := 0; i <= PayoffSteps; i++ {
		spot := lower.Add(step.Mul(decimal.NewFromInt(int64(i))))
		points = append(points, PayoffPoint{
			Spot: spot,
			PnL:  PayoffAt(legs, totalEntryPremium, spot),
		})
	}
	return points
}
