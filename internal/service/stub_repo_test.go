package service

import (
	"context"
	"strings"
	"time"

	"optiontracker/internal/models"
	"optiontracker/internal/repository"
)

// stubRepo is an in-memory repository.Repository for service tests.
type stubRepo struct {
	users       map[string]*models.User
	strategies  map[string]*models.Strategy
	quotes      map[string]*models.QuoteSnapshot
	underlyings map[string]*models.UnderlyingSnapshot
	alerts      []*models.Alert

	saveErr error // injected failure for SaveStrategy
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		users:       make(map[string]*models.User),
		strategies:  make(map[string]*models.Strategy),
		quotes:      make(map[string]*models.QuoteSnapshot),
		underlyings: make(map[string]*models.UnderlyingSnapshot),
	}
}

func (r *stubRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *stubRepo) CreateUser(_ context.Context, item *models.User) error {
	r.users[strings.ToLower(item.Email)] = item
	return nil
}

func (r *stubRepo) SaveStrategy(_ context.Context, item *models.Strategy) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	cp := *item
	r.strategies[item.ID] = &cp
	return nil
}

func (r *stubRepo) GetStrategy(_ context.Context, id, ownerEmail string) (*models.Strategy, error) {
	item, ok := r.strategies[id]
	if !ok || item.OwnerEmail != strings.ToLower(ownerEmail) {
		return nil, repository.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *stubRepo) ListStrategiesByOwner(_ context.Context, ownerEmail string, _ repository.ListStrategiesParams) ([]models.Strategy, error) {
	var out []models.Strategy
	for _, item := range r.strategies {
		if item.OwnerEmail == strings.ToLower(ownerEmail) {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *stubRepo) DeleteStrategy(_ context.Context, id, ownerEmail string) error {
	item, ok := r.strategies[id]
	if !ok || item.OwnerEmail != strings.ToLower(ownerEmail) {
		return repository.ErrNotFound
	}
	delete(r.strategies, id)
	return nil
}

func (r *stubRepo) ListOpenStrategies(_ context.Context) ([]models.Strategy, error) {
	var out []models.Strategy
	for _, item := range r.strategies {
		if item.Status == models.StatusOpen {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *stubRepo) UpsertQuoteSnapshot(_ context.Context, item *models.QuoteSnapshot) error {
	cp := *item
	r.quotes[item.Ticker] = &cp
	return nil
}

func (r *stubRepo) ListQuoteSnapshots(_ context.Context, tickers []string) ([]models.QuoteSnapshot, error) {
	var out []models.QuoteSnapshot
	for _, t := range tickers {
		if snap, ok := r.quotes[t]; ok {
			out = append(out, *snap)
		}
	}
	return out, nil
}

func (r *stubRepo) UpsertUnderlyingSnapshot(_ context.Context, item *models.UnderlyingSnapshot) error {
	cp := *item
	r.underlyings[item.Symbol] = &cp
	return nil
}

func (r *stubRepo) ListUnderlyingSnapshots(_ context.Context, symbols []string) ([]models.UnderlyingSnapshot, error) {
	var out []models.UnderlyingSnapshot
	for _, s := range symbols {
		if snap, ok := r.underlyings[s]; ok {
			out = append(out, *snap)
		}
	}
	return out, nil
}

func (r *stubRepo) InsertAlert(_ context.Context, item *models.Alert) error {
	cp := *item
	r.alerts = append(r.alerts, &cp)
	return nil
}

func (r *stubRepo) ListAlertsByStrategy(_ context.Context, strategyID, ownerEmail string) ([]models.Alert, error) {
	var out []models.Alert
	for _, a := range r.alerts {
		if a.StrategyID == strategyID && a.OwnerEmail == strings.ToLower(ownerEmail) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubRepo) LastAlertAt(_ context.Context, strategyID, rule string) (*time.Time, error) {
	var last *time.Time
	for _, a := range r.alerts {
		if a.StrategyID != strategyID || a.Rule != rule {
			continue
		}
		if last == nil || a.TriggeredAt.After(*last) {
			t := a.TriggeredAt
			last = &t
		}
	}
	return last, nil
}

var _ repository.Repository = (*stubRepo)(nil)
