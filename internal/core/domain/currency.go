package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyKind separates Bitcoin denominations from fiat lenses.
type CurrencyKind string

const (
	CurrencyKindBitcoin CurrencyKind = "bitcoin"
	CurrencyKindFiat    CurrencyKind = "fiat"
)

// Currency codes.
const (
	BTC  = "BTC"
	SATS = "SATS"
	USD  = "USD"
	EUR  = "EUR"
	GBP  = "GBP"
	CHF  = "CHF"
	CAD  = "CAD"
	AUD  = "AUD"
	JPY  = "JPY"
)

// Currency describes one supported unit of account.
type Currency struct {
	Code            string       `json:"code"`
	Name            string       `json:"name"`
	Symbol          string       `json:"symbol"`
	Kind            CurrencyKind `json:"kind"`
	DisplayDecimals int32        `json:"display_decimals"`
}

// IsBitcoin reports whether amounts in this currency never depend on a live rate.
func (c Currency) IsBitcoin() bool {
	return c.Kind == CurrencyKindBitcoin
}

// NormalizeCurrencyCode upper-cases and trims a currency code.
func NormalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ErrRateUnavailable is returned by rate sources when no rate exists for a quote.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ExchangeRate is the price of one BTC in Quote, as observed at ObservedAt.
type ExchangeRate struct {
	Base       string          `json:"base"`
	Quote      string          `json:"quote"`
	Rate       decimal.Decimal `json:"rate"`
	ObservedAt time.Time       `json:"observed_at"`
	Source     string          `json:"source"`
}

// IsStale reports whether the rate is older than ttl at now.
func (r ExchangeRate) IsStale(ttl time.Duration, now time.Time) bool {
	return now.Sub(r.ObservedAt) > ttl
}
