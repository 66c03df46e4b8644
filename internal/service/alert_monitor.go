package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"optiontracker/internal/models"
	"optiontracker/internal/repository"
	"optiontracker/internal/valuation"
)

// AlertMonitor scans open strategies with stop-loss or max-gain thresholds
// and records a breach alert. It marks strategies against the quote snapshot
// table, so it rides on the refresh job instead of hitting the provider.
type AlertMonitor struct {
	Repo           repository.Repository
	Logger         *zap.Logger
	DedupeInterval time.Duration
}

func (m *AlertMonitor) RunOnce(ctx context.Context) error {
	items, err := m.Repo.ListOpenStrategies(ctx)
	if err != nil {
		return err
	}

	triggered := 0
	for _, item := range items {
		if item.StopLossPercent == nil && item.MaxGainPercent == nil {
			continue
		}

		tickers := make([]string, 0, len(item.Legs))
		for _, leg := range item.Legs {
			tickers = append(tickers, leg.Ticker)
		}
		snapshots, err := m.Repo.ListQuoteSnapshots(ctx, tickers)
		if err != nil {
			return err
		}
		premiums := make(map[string]decimal.Decimal, len(snapshots))
		for _, snap := range snapshots {
			premiums[snap.Ticker] = snap.Mark
		}

		breakdown := valuation.Aggregate(item.Legs, premiums)
		rule, threshold, ok := evaluateThresholds(breakdown, item.StopLossPercent, item.MaxGainPercent)
		if !ok {
			continue
		}

		if dup, err := m.recentlyAlerted(ctx, item.ID, rule); err != nil {
			return err
		} else if dup {
			continue
		}

		alert := &models.Alert{
			ID:           uuid.NewString(),
			StrategyID:   item.ID,
			OwnerEmail:   item.OwnerEmail,
			Rule:         rule,
			ThresholdPct: threshold,
			ObservedPct:  *breakdown.PnLPercent,
			TriggeredAt:  time.Now().UTC(),
		}
		if err := m.Repo.InsertAlert(ctx, alert); err != nil {
			return err
		}
		triggered++
		if m.Logger != nil {
			m.Logger.Info("threshold alert",
				zap.String("strategy_id", item.ID),
				zap.String("rule", rule),
				zap.String("observed_pct", alert.ObservedPct.StringFixed(2)),
			)
		}
	}

	if m.Logger != nil && triggered > 0 {
		m.Logger.Info("alert scan done", zap.Int("triggered", triggered))
	}
	return nil
}

// evaluateThresholds decides whether the live P&L percentage breaches either
// threshold. Incomplete marks and undefined percentages never trigger; a
// stop-loss fires on pnlPct <= -stopLoss, a max-gain on pnlPct >= maxGain.
func evaluateThresholds(b valuation.Breakdown, stopLoss, maxGain *decimal.Decimal) (string, decimal.Decimal, bool) {
	if b.MissingData || b.PnLPercent == nil {
		return "", decimal.Zero, false
	}
	pct := *b.PnLPercent
	if stopLoss != nil && pct.LessThanOrEqual(stopLoss.Neg()) {
		return models.AlertRuleStopLoss, *stopLoss, true
	}
	if maxGain != nil && pct.GreaterThanOrEqual(*maxGain) {
		return models.AlertRuleMaxGain, *maxGain, true
	}
	return "", decimal.Zero, false
}

func (m *AlertMonitor) recentlyAlerted(ctx context.Context, strategyID, rule string) (bool, error) {
	interval := m.DedupeInterval
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	last, err := m.Repo.LastAlertAt(ctx, strategyID, rule)
	if err != nil {
		return false, err
	}
	if last == nil {
		return false, nil
	}
	return time.Since(*last) < interval, nil
}
