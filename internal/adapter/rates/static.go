package rates

import (
	"context"
	"strings"

	"orangecat-wallets/internal/core/ports"

	"github.com/shopspring/decimal"
)

// Static serves a fixed rate table, for local development and tests.
type Static struct {
	rates map[string]decimal.Decimal
}

// NewStatic builds a Static source from config values keyed by currency code.
func NewStatic(table map[string]float64) *Static {
	rates := make(map[string]decimal.Decimal, len(table))
	for code, v := range table {
		rates[strings.ToUpper(code)] = decimal.NewFromFloat(v)
	}
	return &Static{rates: rates}
}

var _ ports.ExchangeRateSource = (*Static)(nil)

func (s *Static) Name() string { return "static" }

func (s *Static) FetchBTCRates(_ context.Context, quotes []string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(quotes))
	for _, q := range quotes {
		if rate, ok := s.rates[strings.ToUpper(q)]; ok && rate.IsPositive() {
			out[strings.ToUpper(q)] = rate
		}
	}
	return out, nil
}
