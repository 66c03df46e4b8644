// Package oplab is a thin client for the OpLab v3 market data API. Without
// an access token it serves deterministic mock payloads so the rest of the
// system stays usable offline.
package oplab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://api.oplab.com.br/v3"

// SELIC is the reference rate row used for Black-Scholes queries.
const rateUIDSELIC = "SELIC"

type Client struct {
	host        string
	accessToken string
	httpClient  *http.Client
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("oplab error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, host, accessToken string) *Client {
	if host == "" {
		host = DefaultBaseURL
	}
	host = strings.TrimRight(host, "/")
	return &Client{
		host:        host,
		accessToken: strings.TrimSpace(accessToken),
		httpClient:  httpClient,
	}
}

// Mocked reports whether the client answers from canned data instead of the
// live API.
func (c *Client) Mocked() bool {
	return c.accessToken == ""
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.host + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Access-Token", c.accessToken)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// GetOptionDetails fetches contract metadata and the latest quote for one
// option ticker.
func (c *Client) GetOptionDetails(ctx context.Context, symbol string) (*OptionDetails, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if c.Mocked() {
		return mockOptionDetails(symbol), nil
	}
	body, err := c.doRequest(ctx, "/market/options/details/"+url.PathEscape(symbol), nil)
	if err != nil {
		return nil, err
	}
	var out OptionDetails
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode option details: %w", err)
	}
	return &out, nil
}

// GetStockDetails fetches the underlying quote plus IV statistics.
func (c *Client) GetStockDetails(ctx context.Context, symbol string) (*StockDetails, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if c.Mocked() {
		return mockStockDetails(symbol), nil
	}
	query := url.Values{}
	query.Set("with_financials", "true")
	body, err := c.doRequest(ctx, "/market/stocks/"+url.PathEscape(symbol), query)
	if err != nil {
		return nil, err
	}
	var out StockDetails
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode stock details: %w", err)
	}
	return &out, nil
}

// GetInterestRate returns the SELIC reference rate, consumed by
// Black-Scholes queries.
func (c *Client) GetInterestRate(ctx context.Context) (decimal.Decimal, error) {
	if c.Mocked() {
		return mockInterestRate(), nil
	}
	body, err := c.doRequest(ctx, "/market/interest_rates", nil)
	if err != nil {
		return decimal.Zero, err
	}
	var rates []InterestRate
	if err := json.Unmarshal(body, &rates); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode interest rates: %w", err)
	}
	for _, r := range rates {
		if r.UID == rateUIDSELIC {
			return r.Value, nil
		}
	}
	return fallbackInterestRate(), nil
}

// GetBlackScholes asks the provider for Greeks and, when a premium is
// passed, the implied volatility solved from it.
func (c *Client) GetBlackScholes(ctx context.Context, params BlackScholesParams) (*BlackScholes, error) {
	if params.Symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if c.Mocked() {
		return mockBlackScholes(), nil
	}
	query := url.Values{}
	query.Set("symbol", params.Symbol)
	query.Set("type", params.Type)
	query.Set("irate", params.InterestRate.String())
	query.Set("spotprice", params.SpotPrice.String())
	query.Set("strike", params.Strike.String())
	query.Set("dtm", fmt.Sprintf("%d", params.DaysToMaturity))
	if params.Premium != nil {
		query.Set("premium", params.Premium.String())
	}
	body, err := c.doRequest(ctx, "/market/options/bs", query)
	if err != nil {
		return nil, err
	}
	var out BlackScholes
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode black-scholes: %w", err)
	}
	return &out, nil
}
