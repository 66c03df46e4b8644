package valuation

import (
	"testing"

	"github.com/shopspring/decimal"

	"optiontracker/internal/models"
)

func TestPayoffCurve_SingleLongCall(t *testing.T) {
	legs := []models.Leg{longCall("PETRB300", "30", "0.75", 100)}
	entry := dec("75")
	spot := dec("29.50")

	points := PayoffCurve(legs, entry, spot)
	if len(points) != PayoffSteps+1 {
		t.Fatalf("samples: got=%d want=%d", len(points), PayoffSteps+1)
	}

	// Domain brackets spot*0.8 (23.6, tighter than strike*0.9=27) through
	// spot*1.2 (35.4, wider than strike*1.1=33).
	first := points[0].Spot
	last := points[len(points)-1].Spot
	if first.GreaterThan(dec("26.40")) {
		t.Fatalf("lower bound: got=%s want<=26.40", first)
	}
	if first.Cmp(dec("23.6")) != 0 {
		t.Fatalf("lower bound: got=%s want=23.6", first)
	}
	if last.Cmp(dec("35.4")) != 0 {
		t.Fatalf("upper bound: got=%s want=35.4", last)
	}

	for i := 1; i < len(points); i++ {
		if !points[i].Spot.GreaterThan(points[i-1].Spot) {
			t.Fatalf("samples not ascending at %d: %s then %s", i, points[i-1].Spot, points[i].Spot)
		}
	}

	if got := PayoffAt(legs, entry, dec("30")); got.Cmp(dec("-75")) != 0 {
		t.Fatalf("pnl at strike: got=%s want=-75", got)
	}
	if got := PayoffAt(legs, entry, dec("31")); got.Cmp(dec("25")) != 0 {
		t.Fatalf("pnl one point above strike: got=%s want=25", got)
	}
}

func TestPayoffCurve_DomainCoversAllStrikes(t *testing.T) {
	legs := []models.Leg{
		longCall("A", "10", "1", 100),
		shortCall("B", "80", "0.2", 100),
	}
	points := PayoffCurve(legs, dec("0"), dec("40"))
	if len(points) == 0 {
		t.Fatalf("expected samples")
	}
	first := points[0].Spot
	last := points[len(points)-1].Spot
	if first.GreaterThan(dec("9")) {
		t.Fatalf("lower bound %s does not undercut min strike*0.9", first)
	}
	if last.LessThan(dec("88")) {
		t.Fatalf("upper bound %s does not clear max strike*1.1", last)
	}
}

func TestPayoffCurve_EmptyCases(t *testing.T) {
	if got := PayoffCurve(nil, decimal.Zero, dec("30")); got != nil {
		t.Fatalf("no legs: got=%d samples want=nil", len(got))
	}
	legs := []models.Leg{longCall("PETRB300", "30", "0.75", 100)}
	if got := PayoffCurve(legs, dec("75"), decimal.Zero); got != nil {
		t.Fatalf("zero spot: got=%d samples want=nil", len(got))
	}
	if got := PayoffCurve(legs, dec("75"), dec("-1")); got != nil {
		t.Fatalf("negative spot: got=%d samples want=nil", len(got))
	}
}

func TestPayoffCurve_Idempotent(t *testing.T) {
	legs := []models.Leg{
		longCall("PETRB300", "30", "0.75", 100),
		shortCall("PETRB350", "35", "0.30", 100),
	}
	a := PayoffCurve(legs, dec("45"), dec("31.20"))
	b := PayoffCurve(legs, dec("45"), dec("31.20"))
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Spot.Cmp(b[i].Spot) != 0 || a[i].PnL.Cmp(b[i].PnL) != 0 {
			t.Fatalf("sample %d differs: (%s,%s) vs (%s,%s)", i, a[i].Spot, a[i].PnL, b[i].Spot, b[i].PnL)
		}
	}
}
