// Package marketdata fans out quote, underlying and Greeks lookups to the
// OpLab client. Fetches for independent symbols run concurrently and settle
// together; a failed or empty fetch leaves its symbol out of the result map
// instead of aborting the batch, so callers see absence as "no data".
package marketdata

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"optiontracker/internal/client/oplab"
	"optiontracker/internal/models"
)

type Service struct {
	Client *oplab.Client
	Logger *zap.Logger
}

// Quote is a normalized option quote with the mark already selected.
type Quote struct {
	Ticker    string
	Mark      decimal.Decimal
	Bid       *decimal.Decimal
	Ask       *decimal.Decimal
	Last      *decimal.Decimal
	Close     *decimal.Decimal
	FetchedAt time.Time
}

// UnderlyingQuote is a normalized underlying snapshot.
type UnderlyingQuote struct {
	Symbol       string
	ClosePrice   decimal.Decimal
	IV           *decimal.Decimal
	IVRank       *decimal.Decimal
	IVPercentile *decimal.Decimal
	FetchedAt    time.Time
}

// markPrice picks the displayable premium from a raw quote: last trade when
// present, else bid/ask mid, else the previous close. ok=false means the
// contract has no usable price at all.
func markPrice(details *oplab.OptionDetails) (decimal.Decimal, bool) {
	if details == nil {
		return decimal.Zero, false
	}
	if details.Last.IsPositive() {
		return details.Last, true
	}
	if details.Bid.IsPositive() && details.Ask.IsPositive() {
		return details.Bid.Add(details.Ask).Div(decimal.NewFromInt(2)), true
	}
	if details.Close.IsPositive() {
		return details.Close, true
	}
	return decimal.Zero, false
}

// FetchQuotes resolves current quotes for a set of option tickers. The result
// omits tickers with no data; it never substitutes zero.
func (s *Service) FetchQuotes(ctx context.Context, tickers []string) map[string]Quote {
	out := make(map[string]Quote, len(tickers))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, ticker := range uniqueNonEmpty(tickers) {
		ticker := ticker
		wg.Add(1)
		go func() {
			defer wg.Done()
			details, err := s.Client.GetOptionDetails(ctx, ticker)
			if err != nil {
				if s.Logger != nil {
					s.Logger.Debug("option details fetch failed", zap.String("ticker", ticker), zap.Error(err))
				}
				return
			}
			mark, ok := markPrice(details)
			if !ok {
				return
			}
			quote := Quote{Ticker: ticker, Mark: mark, FetchedAt: time.Now().UTC()}
			if details.Bid.IsPositive() {
				v := details.Bid
				quote.Bid = &v
			}
			if details.Ask.IsPositive() {
				v := details.Ask
				quote.Ask = &v
			}
			if details.Last.IsPositive() {
				v := details.Last
				quote.Last = &v
			}
			if details.Close.IsPositive() {
				v := details.Close
				quote.Close = &v
			}
			mu.Lock()
			out[ticker] = quote
			mu.Unlock()
		}()
	}
	wg.Wait()
	return out
}

// FetchPremiums is FetchQuotes reduced to the ticker -> mark map consumed by
// the valuation aggregator.
func (s *Service) FetchPremiums(ctx context.Context, tickers []string) map[string]decimal.Decimal {
	quotes := s.FetchQuotes(ctx, tickers)
	out := make(map[string]decimal.Decimal, len(quotes))
	for ticker, q := range quotes {
		out[ticker] = q.Mark
	}
	return out
}

// FetchUnderlyings resolves underlying symbols the same way.
func (s *Service) FetchUnderlyings(ctx context.Context, symbols []string) map[string]UnderlyingQuote {
	out := make(map[string]UnderlyingQuote, len(symbols))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, symbol := range uniqueNonEmpty(symbols) {
		symbol := symbol
		wg.Add(1)
		go func() {
			defer wg.Done()
			details, err := s.Client.GetStockDetails(ctx, symbol)
			if err != nil {
				if s.Logger != nil {
					s.Logger.Debug("stock details fetch failed", zap.String("symbol", symbol), zap.Error(err))
				}
				return
			}
			price := details.Close
			if !price.IsPositive() {
				price = details.PreviousClose
			}
			if !price.IsPositive() {
				return
			}
			mu.Lock()
			out[symbol] = UnderlyingQuote{
				Symbol:       symbol,
				ClosePrice:   price,
				IV:           details.IVCurrent,
				IVRank:       details.IV1YRank,
				IVPercentile: details.IV1YPercentile,
				FetchedAt:    time.Now().UTC(),
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	return out
}

// FetchGreeks asks the provider for live Greeks per leg. Legs without a
// resolvable spot or an expiration date are skipped (no entry in the map).
func (s *Service) FetchGreeks(ctx context.Context, legs []models.Leg, spots map[string]decimal.Decimal, premiums map[string]decimal.Decimal) map[string]models.Greeks {
	rate, err := s.Client.GetInterestRate(ctx)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Debug("interest rate fetch failed", zap.Error(err))
		}
		return nil
	}

	now := time.Now().UTC()
	out := make(map[string]models.Greeks, len(legs))
	var mu sync.Mutex
	var wg sync.WaitGroup
	seen := map[string]struct{}{}
	for _, leg := range legs {
		leg := leg
		if leg.Ticker == "" || leg.Expiration == nil {
			continue
		}
		if _, ok := seen[leg.Ticker]; ok {
			continue
		}
		seen[leg.Ticker] = struct{}{}

		spot := decimal.Zero
		if leg.ParentSymbol != nil {
			spot = spots[*leg.ParentSymbol]
		}
		if !spot.IsPositive() {
			continue
		}

		params := oplab.BlackScholesParams{
			Symbol:         leg.Ticker,
			Type:           leg.Kind,
			SpotPrice:      spot,
			Strike:         leg.Strike,
			DaysToMaturity: DaysToMaturity(*leg.Expiration, now),
			InterestRate:   rate,
		}
		if premium, ok := premiums[leg.Ticker]; ok && premium.IsPositive() {
			p := premium
			params.Premium = &p
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			bs, err := s.Client.GetBlackScholes(ctx, params)
			if err != nil {
				if s.Logger != nil {
					s.Logger.Debug("black-scholes fetch failed", zap.String("ticker", leg.Ticker), zap.Error(err))
				}
				return
			}
			mu.Lock()
			out[leg.Ticker] = models.Greeks{
				Delta:      bs.Delta,
				Gamma:      bs.Gamma,
				Theta:      bs.Theta,
				Vega:       bs.Vega,
				Rho:        bs.Rho,
				Volatility: bs.Volatility,
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	return out
}

// DaysToMaturity counts calendar days until the expiration's end of day,
// rounded up, floored at zero for already-expired contracts.
func DaysToMaturity(expiration, now time.Time) int {
	endOfDay := time.Date(expiration.Year(), expiration.Month(), expiration.Day(), 18, 0, 0, 0, time.UTC)
	diff := endOfDay.Sub(now).Hours() / 24
	days := int(math.Ceil(diff))
	if days < 0 {
		return 0
	}
	return days
}

func uniqueNonEmpty(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
