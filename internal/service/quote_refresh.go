package service

import (
	"context"

	"go.uber.org/zap"

	"optiontracker/internal/marketdata"
	"optiontracker/internal/models"
	"optiontracker/internal/repository"
	"optiontracker/internal/stream"
)

// QuoteRefreshService walks every open strategy, refreshes the quote and
// underlying snapshot tables for the tickers they reference, and pushes the
// refreshed marks to the websocket hub.
type QuoteRefreshService struct {
	Repo   repository.Repository
	Market *marketdata.Service
	Hub    *stream.Hub
	Logger *zap.Logger
}

func (s *QuoteRefreshService) RunOnce(ctx context.Context) error {
	items, err := s.Repo.ListOpenStrategies(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	var tickers, symbols []string
	for _, item := range items {
		for _, leg := range item.Legs {
			tickers = append(tickers, leg.Ticker)
			if leg.ParentSymbol != nil {
				symbols = append(symbols, *leg.ParentSymbol)
			}
		}
	}

	quotes := s.Market.FetchQuotes(ctx, tickers)
	underlyings := s.Market.FetchUnderlyings(ctx, symbols)

	updates := make([]stream.QuoteUpdate, 0, len(quotes))
	for _, q := range quotes {
		snapshot := &models.QuoteSnapshot{
			Ticker:    q.Ticker,
			Mark:      q.Mark,
			Bid:       q.Bid,
			Ask:       q.Ask,
			Last:      q.Last,
			Close:     q.Close,
			FetchedAt: q.FetchedAt,
		}
		if err := s.Repo.UpsertQuoteSnapshot(ctx, snapshot); err != nil {
			if s.Logger != nil {
				s.Logger.Warn("quote snapshot upsert failed", zap.String("ticker", q.Ticker), zap.Error(err))
			}
			continue
		}
		updates = append(updates, stream.QuoteUpdate{
			Ticker:    q.Ticker,
			Mark:      q.Mark,
			FetchedAt: q.FetchedAt,
		})
	}

	for _, u := range underlyings {
		snapshot := &models.UnderlyingSnapshot{
			Symbol:       u.Symbol,
			ClosePrice:   u.ClosePrice,
			IV:           u.IV,
			IVRank:       u.IVRank,
			IVPercentile: u.IVPercentile,
			FetchedAt:    u.FetchedAt,
		}
		if err := s.Repo.UpsertUnderlyingSnapshot(ctx, snapshot); err != nil && s.Logger != nil {
			s.Logger.Warn("underlying snapshot upsert failed", zap.String("symbol", u.Symbol), zap.Error(err))
		}
	}

	if s.Hub != nil {
		s.Hub.Publish(updates)
	}
	if s.Logger != nil {
		s.Logger.Info("quote refresh ok",
			zap.Int("strategies", len(items)),
			zap.Int("quotes", len(quotes)),
			zap.Int("underlyings", len(underlyings)),
		)
	}
	return nil
}
