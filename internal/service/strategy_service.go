package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"optiontracker/internal/marketdata"
	"optiontracker/internal/models"
	"optiontracker/internal/repository"
	"optiontracker/internal/valuation"
)

var (
	ErrNoLegs             = errors.New("at least one leg with a ticker is required")
	ErrInvalidLeg         = errors.New("invalid leg")
	ErrMissingExitPremium = errors.New("closing a strategy requires an exit premium on every leg")
)

// StrategyService owns the strategy lifecycle: validation, the entry-premium
// snapshot, and read-time enrichment with live market data.
type StrategyService struct {
	Repo   repository.Repository
	Market *marketdata.Service
	Logger *zap.Logger
}

// StrategyView is a strategy plus its live valuation. MissingData means at
// least one leg had no current quote and the mark/P&L figures are partial.
type StrategyView struct {
	models.Strategy
	EntryCost    decimal.Decimal  `json:"entryCost"`
	CurrentValue decimal.Decimal  `json:"currentValue"`
	MissingData  bool             `json:"missingData"`
	PnL          decimal.Decimal  `json:"pnl"`
	PnLPercent   *decimal.Decimal `json:"pnlPercent,omitempty"`
}

// ListOptions mirrors the consultation screen: filters plus one sort key.
type ListOptions struct {
	Parent     string
	Structure  string
	Objective  string
	Status     string
	SortBy     string // pnl | ticker | parent
	Descending bool
}

// Save validates and persists a strategy for the given owner. On create it
// assigns the id and CreatedAt; on update it preserves CreatedAt and
// verifies ownership. The TotalEntryPremium snapshot is recomputed from
// entry premiums on every save.
func (s *StrategyService) Save(ctx context.Context, ownerEmail string, strategy *models.Strategy) (*models.Strategy, error) {
	legs := make([]models.Leg, 0, len(strategy.Legs))
	for _, leg := range strategy.Legs {
		leg.Ticker = strings.ToUpper(strings.TrimSpace(leg.Ticker))
		if leg.Ticker == "" {
			continue
		}
		legs = append(legs, leg)
	}
	if len(legs) == 0 {
		return nil, ErrNoLegs
	}
	for i, leg := range legs {
		if err := validateLeg(leg); err != nil {
			return nil, fmt.Errorf("leg %d (%s): %w", i+1, leg.Ticker, err)
		}
	}

	strategy.Status = strings.ToLower(strings.TrimSpace(strategy.Status))
	if strategy.Status == models.StatusClosed {
		for _, leg := range legs {
			if leg.ExitPremium == nil {
				return nil, ErrMissingExitPremium
			}
		}
	}

	now := time.Now().UTC()
	if strategy.ID == "" {
		strategy.ID = uuid.NewString()
		strategy.CreatedAt = now
		if strategy.Status == "" {
			strategy.Status = models.StatusOpen
		}
	} else {
		existing, err := s.Repo.GetStrategy(ctx, strategy.ID, ownerEmail)
		if err != nil {
			return nil, err
		}
		strategy.CreatedAt = existing.CreatedAt
		if strategy.Status == "" {
			strategy.Status = existing.Status
		}
	}
	strategy.UpdatedAt = now
	strategy.OwnerEmail = strings.ToLower(strings.TrimSpace(ownerEmail))
	strategy.Legs = legs
	strategy.Ticker = legs[0].Ticker
	strategy.TotalEntryPremium = valuation.EntryCost(legs)

	if err := s.Repo.SaveStrategy(ctx, strategy); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("strategy saved",
			zap.String("id", strategy.ID),
			zap.String("ticker", strategy.Ticker),
			zap.Int("legs", len(legs)),
			zap.String("total_entry_premium", strategy.TotalEntryPremium.String()),
		)
	}
	return strategy, nil
}

func validateLeg(leg models.Leg) error {
	if leg.Kind != models.KindCall && leg.Kind != models.KindPut {
		return fmt.Errorf("%w: kind must be CALL or PUT", ErrInvalidLeg)
	}
	if leg.Direction != models.DirectionBuy && leg.Direction != models.DirectionSell {
		return fmt.Errorf("%w: direction must be BUY or SELL", ErrInvalidLeg)
	}
	if !leg.Strike.IsPositive() {
		return fmt.Errorf("%w: strike must be positive", ErrInvalidLeg)
	}
	if leg.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidLeg)
	}
	if leg.EntryPremium.IsNegative() {
		return fmt.Errorf("%w: entry premium cannot be negative", ErrInvalidLeg)
	}
	return nil
}

// List loads the owner's strategies and marks them against live quotes.
func (s *StrategyService) List(ctx context.Context, ownerEmail string, opts ListOptions) ([]StrategyView, error) {
	params := repository.ListStrategiesParams{}
	if opts.Parent != "" {
		params.Parent = &opts.Parent
	}
	if opts.Structure != "" {
		params.Structure = &opts.Structure
	}
	if opts.Objective != "" {
		params.Objective = &opts.Objective
	}
	if opts.Status != "" {
		params.Status = &opts.Status
	}

	items, err := s.Repo.ListStrategiesByOwner(ctx, ownerEmail, params)
	if err != nil {
		return nil, err
	}

	tickers := make([]string, 0, len(items))
	symbols := make([]string, 0, len(items))
	for _, item := range items {
		for _, leg := range item.Legs {
			tickers = append(tickers, leg.Ticker)
			if leg.ParentSymbol != nil {
				symbols = append(symbols, *leg.ParentSymbol)
			}
		}
	}

	premiums := s.Market.FetchPremiums(ctx, tickers)
	underlyings := s.Market.FetchUnderlyings(ctx, symbols)

	views := make([]StrategyView, 0, len(items))
	for _, item := range items {
		views = append(views, buildView(item, premiums, underlyings))
	}
	sortViews(views, opts)
	return views, nil
}

// Get returns one enriched strategy.
func (s *StrategyService) Get(ctx context.Context, ownerEmail, id string) (*StrategyView, error) {
	item, err := s.Repo.GetStrategy(ctx, id, ownerEmail)
	if err != nil {
		return nil, err
	}

	tickers := make([]string, 0, len(item.Legs))
	symbols := make([]string, 0, len(item.Legs))
	for _, leg := range item.Legs {
		tickers = append(tickers, leg.Ticker)
		if leg.ParentSymbol != nil {
			symbols = append(symbols, *leg.ParentSymbol)
		}
	}
	premiums := s.Market.FetchPremiums(ctx, tickers)
	underlyings := s.Market.FetchUnderlyings(ctx, symbols)

	view := buildView(*item, premiums, underlyings)
	return &view, nil
}

func buildView(item models.Strategy, premiums map[string]decimal.Decimal, underlyings map[string]marketdata.UnderlyingQuote) StrategyView {
	breakdown := valuation.Aggregate(item.Legs, premiums)

	for i := range item.Legs {
		leg := &item.Legs[i]
		if premium, ok := premiums[leg.Ticker]; ok {
			p := premium
			leg.CurrentQuote = &p
		}
		if leg.ParentSymbol == nil {
			continue
		}
		u, ok := underlyings[*leg.ParentSymbol]
		if !ok {
			continue
		}
		price := u.ClosePrice
		leg.UnderlyingPrice = &price
		leg.UnderlyingIV = u.IV
		leg.UnderlyingIVRank = u.IVRank
		if pct, ok := valuation.PercentToStrike(leg.Strike, price); ok {
			p := pct
			leg.PercentToStrike = &p
			leg.Moneyness = valuation.ClassifyMoneyness(pct)
		}
	}

	return StrategyView{
		Strategy:     item,
		EntryCost:    breakdown.EntryCost,
		CurrentValue: breakdown.MarkValue,
		MissingData:  breakdown.MissingData,
		PnL:          breakdown.PnL,
		PnLPercent:   breakdown.PnLPercent,
	}
}

func sortViews(views []StrategyView, opts ListOptions) {
	if opts.SortBy == "" {
		return
	}
	less := func(i, j int) bool { return false }
	switch opts.SortBy {
	case "pnl":
		less = func(i, j int) bool { return views[i].PnL.LessThan(views[j].PnL) }
	case "ticker":
		less = func(i, j int) bool { return views[i].Ticker < views[j].Ticker }
	case "parent":
		less = func(i, j int) bool {
			return views[i].FirstParentSymbol() < views[j].FirstParentSymbol()
		}
	default:
		return
	}
	if opts.Descending {
		sort.SliceStable(views, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.SliceStable(views, less)
}

// Payoff builds the at-expiration curve for one strategy against the live
// underlying price, falling back to the stored initial spot when the
// underlying cannot be resolved. An empty curve means "no chart data".
func (s *StrategyService) Payoff(ctx context.Context, ownerEmail, id string) ([]valuation.PayoffPoint, error) {
	item, err := s.Repo.GetStrategy(ctx, id, ownerEmail)
	if err != nil {
		return nil, err
	}

	spot := decimal.Zero
	if parent := item.FirstParentSymbol(); parent != "" {
		if u, ok := s.Market.FetchUnderlyings(ctx, []string{parent})[parent]; ok {
			spot = u.ClosePrice
		}
	}
	if !spot.IsPositive() && item.InitialSpotPrice != nil {
		spot = *item.InitialSpotPrice
	}

	return valuation.PayoffCurve(item.Legs, item.TotalEntryPremium, spot), nil
}

// LiveGreeks fetches current Greeks and implied vol for each leg of one
// strategy. The stored at-entry snapshots on the legs are left untouched;
// callers see both provenances side by side.
func (s *StrategyService) LiveGreeks(ctx context.Context, ownerEmail, id string) (map[string]models.Greeks, error) {
	item, err := s.Repo.GetStrategy(ctx, id, ownerEmail)
	if err != nil {
		return nil, err
	}

	tickers := make([]string, 0, len(item.Legs))
	symbols := make([]string, 0, len(item.Legs))
	for _, leg := range item.Legs {
		tickers = append(tickers, leg.Ticker)
		if leg.ParentSymbol != nil {
			symbols = append(symbols, *leg.ParentSymbol)
		}
	}
	premiums := s.Market.FetchPremiums(ctx, tickers)
	underlyings := s.Market.FetchUnderlyings(ctx, symbols)
	spots := make(map[string]decimal.Decimal, len(underlyings))
	for symbol, u := range underlyings {
		spots[symbol] = u.ClosePrice
	}

	return s.Market.FetchGreeks(ctx, item.Legs, spots, premiums), nil
}

// Delete removes the strategy and its legs.
func (s *StrategyService) Delete(ctx context.Context, ownerEmail, id string) error {
	if err := s.Repo.DeleteStrategy(ctx, id, ownerEmail); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("strategy deleted", zap.String("id", id))
	}
	return nil
}
