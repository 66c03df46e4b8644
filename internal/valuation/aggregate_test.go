package valuation

import (
	"testing"

	"github.com/shopspring/decimal"

	"optiontracker/internal/models"
)

func longCall(ticker string, strike, entry string, qty int64) models.Leg {
	return models.Leg{
		Ticker:       ticker,
		Kind:         models.KindCall,
		Direction:    models.DirectionBuy,
		Strike:       dec(strike),
		Quantity:     qty,
		EntryPremium: dec(entry),
	}
}

func shortCall(ticker string, strike, entry string, qty int64) models.Leg {
	leg := longCall(ticker, strike, entry, qty)
	leg.Direction = models.DirectionSell
	return leg
}

func TestEntryCost_SingleLongCall(t *testing.T) {
	legs := []models.Leg{longCall("PETRB300", "30", "0.75", 100)}
	if got := EntryCost(legs); got.Cmp(dec("75")) != 0 {
		t.Fatalf("entry cost: got=%s want=75", got)
	}
}

func TestEntryCost_CallSpread(t *testing.T) {
	legs := []models.Leg{
		longCall("PETRB300", "30", "0.75", 100),
		shortCall("PETRB350", "35", "0.30", 100),
	}
	if got := EntryCost(legs); got.Cmp(dec("45")) != 0 {
		t.Fatalf("entry cost: got=%s want=45", got)
	}
}

func TestAggregate_PnLFromPremiumMap(t *testing.T) {
	legs := []models.Leg{
		longCall("PETRB300", "30", "0.75", 100),
		shortCall("PETRB350", "35", "0.30", 100),
	}
	premiums := map[string]decimal.Decimal{
		"PETRB300": dec("1.10"),
		"PETRB350": dec("0.40"),
	}
	b := Aggregate(legs, premiums)
	if b.MissingData {
		t.Fatalf("missing data flagged with complete premium map")
	}
	if b.MarkValue.Cmp(dec("70")) != 0 {
		t.Fatalf("mark value: got=%s want=70", b.MarkValue)
	}
	if b.PnL.Cmp(dec("25")) != 0 {
		t.Fatalf("pnl: got=%s want=25", b.PnL)
	}
	if b.PnLPercent == nil {
		t.Fatalf("pnl percent undefined for nonzero entry cost")
	}
	// 25 / |45| * 100
	want := dec("25").Div(dec("45")).Mul(dec("100"))
	if b.PnLPercent.Cmp(want) != 0 {
		t.Fatalf("pnl percent: got=%s want=%s", b.PnLPercent, want)
	}
}

func TestAggregate_MissingTickerRaisesFlag(t *testing.T) {
	legs := []models.Leg{
		longCall("PETRB300", "30", "0.75", 100),
		shortCall("PETRB350", "35", "0.30", 100),
	}
	premiums := map[string]decimal.Decimal{
		"PETRB300": dec("1.10"),
	}
	b := Aggregate(legs, premiums)
	if !b.MissingData {
		t.Fatalf("expected missing data flag")
	}
	// Best-effort partial sum still covers the resolved leg.
	if b.MarkValue.Cmp(dec("110")) != 0 {
		t.Fatalf("partial mark value: got=%s want=110", b.MarkValue)
	}
}

func TestAggregate_ZeroEntryCostLeavesPercentUndefined(t *testing.T) {
	legs := []models.Leg{
		longCall("PETRB300", "30", "0.50", 100),
		shortCall("PETRB350", "35", "0.50", 100),
	}
	b := Aggregate(legs, map[string]decimal.Decimal{
		"PETRB300": dec("0.80"),
		"PETRB350": dec("0.20"),
	})
	if !b.EntryCost.IsZero() {
		t.Fatalf("entry cost: got=%s want=0", b.EntryCost)
	}
	if b.PnLPercent != nil {
		t.Fatalf("pnl percent: got=%s want=nil", b.PnLPercent)
	}
	if b.PnL.Cmp(dec("60")) != 0 {
		t.Fatalf("pnl: got=%s want=60", b.PnL)
	}
}

func TestAggregate_EmptyPremiumMap(t *testing.T) {
	legs := []models.Leg{longCall("PETRB300", "30", "0.75", 100)}
	b := Aggregate(legs, nil)
	if !b.MissingData {
		t.Fatalf("expected missing data flag")
	}
	if !b.MarkValue.IsZero() {
		t.Fatalf("mark value: got=%s want=0", b.MarkValue)
	}
}
