package oplab

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Canned payloads served when no access token is configured. Values are
// stable per symbol so the UI behaves predictably in local development.

func mockOptionDetails(symbol string) *OptionDetails {
	category := "PUT"
	// Series letters A-L are calls in the B3 ticker convention.
	if strings.ContainsAny(symbol, "ABC") {
		category = "CALL"
	}
	parent := symbol
	if len(parent) > 4 {
		parent = parent[:4]
	}
	return &OptionDetails{
		Symbol:         symbol,
		ParentSymbol:   parent,
		Category:       category,
		Strike:         decimal.NewFromFloat(30.00),
		SpotPrice:      decimal.NewFromFloat(29.50),
		DaysToMaturity: 20,
		DueDate:        "2026-02-20",
		Last:           decimal.NewFromFloat(0.75),
		Variation:      decimal.NewFromFloat(0.5),
	}
}

func mockStockDetails(symbol string) *StockDetails {
	iv := decimal.NewFromFloat(25.5)
	rank := decimal.NewFromFloat(45.0)
	pctile := decimal.NewFromFloat(50.0)
	return &StockDetails{
		Symbol:         symbol,
		Close:          decimal.NewFromFloat(29.50),
		PreviousClose:  decimal.NewFromFloat(29.00),
		IVCurrent:      &iv,
		IV1YRank:       &rank,
		IV1YPercentile: &pctile,
	}
}

func mockBlackScholes() *BlackScholes {
	vol := decimal.NewFromFloat(25.5)
	return &BlackScholes{
		Delta:      decimal.NewFromFloat(0.5),
		Gamma:      decimal.NewFromFloat(0.1),
		Theta:      decimal.NewFromFloat(-0.05),
		Vega:       decimal.NewFromFloat(0.02),
		Rho:        decimal.NewFromFloat(0.01),
		Volatility: &vol,
	}
}

func mockInterestRate() decimal.Decimal {
	return decimal.NewFromFloat(0.12)
}

func fallbackInterestRate() decimal.Decimal {
	return decimal.NewFromFloat(0.10)
}
