// Package rates holds upstream BTC price sources.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"orangecat-wallets/internal/core/ports"

	"github.com/shopspring/decimal"
)

const (
	DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"
	coinGeckoBitcoinID  = "bitcoin"
	coinGeckoKeyHeader  = "x-cg-demo-api-key"
)

// ErrUpstreamRateLimited is returned when CoinGecko answers 429.
var ErrUpstreamRateLimited = errors.New("coingecko rate limit")

// CoinGecko reads BTC prices from the /simple/price endpoint.
type CoinGecko struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewCoinGecko creates a CoinGecko source. An empty baseURL selects the public API.
func NewCoinGecko(baseURL, apiKey string, timeout time.Duration) *CoinGecko {
	if baseURL == "" {
		baseURL = DefaultCoinGeckoURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CoinGecko{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

var _ ports.ExchangeRateSource = (*CoinGecko)(nil)

func (c *CoinGecko) Name() string { return "coingecko" }

// FetchBTCRates returns the BTC price for each requested quote it knows about,
// keyed by upper-case currency code. Quotes CoinGecko does not return are omitted.
func (c *CoinGecko) FetchBTCRates(ctx context.Context, quotes []string) (map[string]decimal.Decimal, error) {
	if len(quotes) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	vs := make([]string, 0, len(quotes))
	for _, q := range quotes {
		vs = append(vs, strings.ToLower(q))
	}
	params := url.Values{}
	params.Set("ids", coinGeckoBitcoinID)
	params.Set("vs_currencies", strings.Join(vs, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/simple/price?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build coingecko request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(coinGeckoKeyHeader, c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coingecko request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrUpstreamRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko: unexpected status %d", resp.StatusCode)
	}

	// json.Number keeps the price text so no float rounding creeps in.
	var body map[string]map[string]json.Number
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decode coingecko response: %w", err)
	}

	prices, ok := body[coinGeckoBitcoinID]
	if !ok {
		return nil, errors.New("coingecko response has no bitcoin entry")
	}

	out := make(map[string]decimal.Decimal, len(prices))
	for quote, num := range prices {
		rate, err := decimal.NewFromString(num.String())
		if err != nil || !rate.IsPositive() {
			continue
		}
		out[strings.ToUpper(quote)] = rate
	}
	return out, nil
}
