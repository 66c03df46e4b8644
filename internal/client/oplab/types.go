package oplab

import (
	"github.com/shopspring/decimal"
)

// OptionDetails mirrors /v3/market/options/details/{symbol}. Prices can be
// zero when the contract did not trade; callers decide what counts as a mark.
type OptionDetails struct {
	Symbol         string          `json:"symbol"`
	ParentSymbol   string          `json:"parent_symbol"`
	Category       string          `json:"category"`
	Strike         decimal.Decimal `json:"strike"`
	SpotPrice      decimal.Decimal `json:"spot_price"`
	DaysToMaturity int             `json:"days_to_maturity"`
	DueDate        string          `json:"due_date"`
	Last           decimal.Decimal `json:"last"`
	Bid            decimal.Decimal `json:"bid"`
	Ask            decimal.Decimal `json:"ask"`
	Close          decimal.Decimal `json:"close"`
	Variation      decimal.Decimal `json:"variation"`
}

// StockDetails mirrors /v3/market/stocks/{symbol}.
type StockDetails struct {
	Symbol         string           `json:"symbol"`
	Close          decimal.Decimal  `json:"close"`
	PreviousClose  decimal.Decimal  `json:"previous_close"`
	IVCurrent      *decimal.Decimal `json:"iv_current,omitempty"`
	IV1YRank       *decimal.Decimal `json:"iv_1y_rank,omitempty"`
	IV1YPercentile *decimal.Decimal `json:"iv_1y_percentile,omitempty"`
}

// BlackScholes mirrors /v3/market/options/bs. When a premium is supplied the
// provider solves for implied volatility and returns it in Volatility.
type BlackScholes struct {
	Delta      decimal.Decimal  `json:"delta"`
	Gamma      decimal.Decimal  `json:"gamma"`
	Theta      decimal.Decimal  `json:"theta"`
	Vega       decimal.Decimal  `json:"vega"`
	Rho        decimal.Decimal  `json:"rho"`
	Volatility *decimal.Decimal `json:"volatility,omitempty"`
}

// BlackScholesParams is the query for GetBlackScholes.
type BlackScholesParams struct {
	Symbol         string
	Type           string
	SpotPrice      decimal.Decimal
	Strike         decimal.Decimal
	DaysToMaturity int
	InterestRate   decimal.Decimal
	Premium        *decimal.Decimal
}

// InterestRate is one row of /v3/market/interest_rates.
type InterestRate struct {
	UID   string          `json:"uid"`
	Value decimal.Decimal `json:"value"`
}
