package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"optiontracker/internal/models"
	"optiontracker/internal/valuation"
)

func pnlBreakdown(pct string) valuation.Breakdown {
	p := dec(pct)
	return valuation.Breakdown{PnLPercent: &p}
}

func TestEvaluateThresholds_StopLoss(t *testing.T) {
	stop := dec("30")
	rule, threshold, ok := evaluateThresholds(pnlBreakdown("-35"), &stop, nil)
	if !ok {
		t.Fatalf("expected trigger")
	}
	if rule != models.AlertRuleStopLoss {
		t.Fatalf("rule=%q want stop_loss", rule)
	}
	if threshold.Cmp(stop) != 0 {
		t.Fatalf("threshold=%s want 30", threshold)
	}

	if _, _, ok := evaluateThresholds(pnlBreakdown("-29.99"), &stop, nil); ok {
		t.Fatalf("triggered above the stop level")
	}
	// Exactly at the level counts.
	if _, _, ok := evaluateThresholds(pnlBreakdown("-30"), &stop, nil); !ok {
		t.Fatalf("boundary stop loss not triggered")
	}
}

func TestEvaluateThresholds_MaxGain(t *testing.T) {
	gain := dec("50")
	rule, _, ok := evaluateThresholds(pnlBreakdown("62.5"), nil, &gain)
	if !ok || rule != models.AlertRuleMaxGain {
		t.Fatalf("rule=%q ok=%v want max_gain trigger", rule, ok)
	}
	if _, _, ok := evaluateThresholds(pnlBreakdown("49"), nil, &gain); ok {
		t.Fatalf("triggered below the gain level")
	}
}

func TestEvaluateThresholds_StopLossWinsWhenBothSet(t *testing.T) {
	stop := dec("10")
	gain := dec("50")
	rule, _, ok := evaluateThresholds(pnlBreakdown("-15"), &stop, &gain)
	if !ok || rule != models.AlertRuleStopLoss {
		t.Fatalf("rule=%q ok=%v want stop_loss", rule, ok)
	}
}

func TestEvaluateThresholds_SkipsIncompleteMarks(t *testing.T) {
	stop := dec("30")
	b := pnlBreakdown("-90")
	b.MissingData = true
	if _, _, ok := evaluateThresholds(b, &stop, nil); ok {
		t.Fatalf("triggered on partial data")
	}
	if _, _, ok := evaluateThresholds(valuation.Breakdown{}, &stop, nil); ok {
		t.Fatalf("triggered with undefined percentage")
	}
}

func TestAlertMonitor_RunOnceRecordsAndDedupes(t *testing.T) {
	repo := newStubRepo()
	ctx := context.Background()

	stop := dec("30")
	repo.strategies["s1"] = &models.Strategy{
		ID:         "s1",
		OwnerEmail: "trader@example.com",
		Status:     models.StatusOpen,
		Legs: []models.Leg{{
			Ticker:       "PETRB300",
			Kind:         models.KindCall,
			Direction:    models.DirectionBuy,
			Strike:       dec("30"),
			Quantity:     100,
			EntryPremium: dec("1.00"),
		}},
		StopLossPercent: &stop,
	}
	// Marked at half the entry premium: P&L is -50%.
	repo.quotes["PETRB300"] = &models.QuoteSnapshot{
		Ticker: "PETRB300",
		Mark:   dec("0.50"),
	}

	monitor := &AlertMonitor{Repo: repo, DedupeInterval: 24 * time.Hour}
	if err := monitor.RunOnce(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(repo.alerts) != 1 {
		t.Fatalf("alerts=%d want 1", len(repo.alerts))
	}
	alert := repo.alerts[0]
	if alert.Rule != models.AlertRuleStopLoss {
		t.Fatalf("rule=%q want stop_loss", alert.Rule)
	}
	if alert.ObservedPct.Cmp(dec("-50")) != 0 {
		t.Fatalf("observed=%s want -50", alert.ObservedPct)
	}
	if alert.OwnerEmail != "trader@example.com" {
		t.Fatalf("owner=%q", alert.OwnerEmail)
	}

	// A second scan inside the dedupe window stays quiet.
	if err := monitor.RunOnce(ctx); err != nil {
		t.Fatalf("rerun: %v", err)
	}
	if len(repo.alerts) != 1 {
		t.Fatalf("alerts=%d after rerun, want 1", len(repo.alerts))
	}

	// Age the alert past the window and it fires again.
	repo.alerts[0].TriggeredAt = time.Now().UTC().Add(-25 * time.Hour)
	if err := monitor.RunOnce(ctx); err != nil {
		t.Fatalf("third run: %v", err)
	}
	if len(repo.alerts) != 2 {
		t.Fatalf("alerts=%d after window, want 2", len(repo.alerts))
	}
}

func TestAlertMonitor_SkipsStrategiesWithoutThresholds(t *testing.T) {
	repo := newStubRepo()
	repo.strategies["s1"] = &models.Strategy{
		ID:         "s1",
		OwnerEmail: "trader@example.com",
		Status:     models.StatusOpen,
		Legs: []models.Leg{{
			Ticker:       "PETRB300",
			Kind:         models.KindCall,
			Direction:    models.DirectionBuy,
			Strike:       dec("30"),
			Quantity:     100,
			EntryPremium: dec("1.00"),
		}},
	}
	repo.quotes["PETRB300"] = &models.QuoteSnapshot{Ticker: "PETRB300", Mark: decimal.Zero}

	monitor := &AlertMonitor{Repo: repo}
	if err := monitor.RunOnce(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(repo.alerts) != 0 {
		t.Fatalf("alerts=%d want 0", len(repo.alerts))
	}
}
