package valuation

import (
	"testing"

	"github.com/shopspring/decimal"

	"optiontracker/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestIntrinsic_CallAtAndAroundStrike(t *testing.T) {
	strike := dec("30")
	if got := Intrinsic(models.KindCall, strike, dec("30")); !got.IsZero() {
		t.Fatalf("call at strike: got=%s want=0", got)
	}
	if got := Intrinsic(models.KindCall, strike, dec("33.5")); got.Cmp(dec("3.5")) != 0 {
		t.Fatalf("call above strike: got=%s want=3.5", got)
	}
	if got := Intrinsic(models.KindCall, strike, dec("25")); !got.IsZero() {
		t.Fatalf("call below strike: got=%s want=0", got)
	}
}

func TestIntrinsic_PutAtAndAroundStrike(t *testing.T) {
	strike := dec("30")
	if got := Intrinsic(models.KindPut, strike, dec("30")); !got.IsZero() {
		t.Fatalf("put at strike: got=%s want=0", got)
	}
	if got := Intrinsic(models.KindPut, strike, dec("27.25")); got.Cmp(dec("2.75")) != 0 {
		t.Fatalf("put below strike: got=%s want=2.75", got)
	}
	if got := Intrinsic(models.KindPut, strike, dec("40")); !got.IsZero() {
		t.Fatalf("put above strike: got=%s want=0", got)
	}
}

func TestIntrinsic_DegenerateSpot(t *testing.T) {
	if got := Intrinsic(models.KindCall, dec("30"), decimal.Zero); !got.IsZero() {
		t.Fatalf("call at zero spot: got=%s want=0", got)
	}
	if got := Intrinsic(models.KindCall, dec("30"), dec("-5")); !got.IsZero() {
		t.Fatalf("call at negative spot: got=%s want=0", got)
	}
	// A put keeps its max(0, strike-spot) shape even for nonsense spots.
	if got := Intrinsic(models.KindPut, dec("30"), dec("-5")); got.Cmp(dec("35")) != 0 {
		t.Fatalf("put at negative spot: got=%s want=35", got)
	}
}

func TestLegLiquidationValue_Signs(t *testing.T) {
	long := models.Leg{Kind: models.KindCall, Direction: models.DirectionBuy, Strike: dec("30"), Quantity: 100}
	short := models.Leg{Kind: models.KindCall, Direction: models.DirectionSell, Strike: dec("30"), Quantity: 100}

	spot := dec("31")
	if got := LegLiquidationValue(long, spot); got.Cmp(dec("100")) != 0 {
		t.Fatalf("long call: got=%s want=100", got)
	}
	if got := LegLiquidationValue(short, spot); got.Cmp(dec("-100")) != 0 {
		t.Fatalf("short call: got=%s want=-100", got)
	}
}
