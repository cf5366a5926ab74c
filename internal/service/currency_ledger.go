package service

import (
	"context"
	"errors"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"
	"orangecat-wallets/pkg/apperror"

	"github.com/shopspring/decimal"
)

// fiatToBTCPlaces bounds the precision of fiat -> BTC division.
const fiatToBTCPlaces = 16

var supportedCurrencies = []domain.Currency{
	{Code: domain.BTC, Name: "Bitcoin", Symbol: "₿", Kind: domain.CurrencyKindBitcoin, DisplayDecimals: 8},
	{Code: domain.SATS, Name: "Satoshis", Symbol: "sats", Kind: domain.CurrencyKindBitcoin, DisplayDecimals: 0},
	{Code: domain.USD, Name: "US Dollar", Symbol: "$", Kind: domain.CurrencyKindFiat, DisplayDecimals: 2},
	{Code: domain.EUR, Name: "Euro", Symbol: "€", Kind: domain.CurrencyKindFiat, DisplayDecimals: 2},
	{Code: domain.GBP, Name: "British Pound", Symbol: "£", Kind: domain.CurrencyKindFiat, DisplayDecimals: 2},
	{Code: domain.CHF, Name: "Swiss Franc", Symbol: "CHF", Kind: domain.CurrencyKindFiat, DisplayDecimals: 2},
	{Code: domain.CAD, Name: "Canadian Dollar", Symbol: "CA$", Kind: domain.CurrencyKindFiat, DisplayDecimals: 2},
	{Code: domain.AUD, Name: "Australian Dollar", Symbol: "A$", Kind: domain.CurrencyKindFiat, DisplayDecimals: 2},
	{Code: domain.JPY, Name: "Japanese Yen", Symbol: "¥", Kind: domain.CurrencyKindFiat, DisplayDecimals: 0},
}

// CurrencyLedger converts between BTC and the supported currencies.
// BTC and SATS never touch the rate source; fiat conversions always do.
type CurrencyLedger struct {
	byCode map[string]domain.Currency
	rates  ports.RateSource
}

var _ ports.CurrencyLedger = (*CurrencyLedger)(nil)

// NewCurrencyLedger creates a ledger that prices fiat amounts with rates.
func NewCurrencyLedger(rates ports.RateSource) *CurrencyLedger {
	byCode := make(map[string]domain.Currency, len(supportedCurrencies))
	for _, c := range supportedCurrencies {
		byCode[c.Code] = c
	}
	return &CurrencyLedger{byCode: byCode, rates: rates}
}

// Supported lists every currency in display order.
func (l *CurrencyLedger) Supported() []domain.Currency {
	out := make([]domain.Currency, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// FiatCodes lists the fiat currencies that need a live rate.
func FiatCodes() []string {
	var codes []string
	for _, c := range supportedCurrencies {
		if !c.IsBitcoin() {
			codes = append(codes, c.Code)
		}
	}
	return codes
}

// Lookup resolves a currency code case-insensitively.
func (l *CurrencyLedger) Lookup(code string) (domain.Currency, error) {
	c, ok := l.byCode[domain.NormalizeCurrencyCode(code)]
	if !ok {
		return domain.Currency{}, apperror.ErrInvalidCurrency(code)
	}
	return c, nil
}

// ToBaseUnits converts amount in currency to BTC.
func (l *CurrencyLedger) ToBaseUnits(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	c, err := l.Lookup(currency)
	if err != nil {
		return decimal.Zero, err
	}
	switch c.Code {
	case domain.BTC:
		return amount, nil
	case domain.SATS:
		return amount.Shift(-8), nil
	}
	rate, err := l.rate(ctx, c.Code)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.DivRound(rate.Rate, fiatToBTCPlaces), nil
}

// FromBaseUnits converts a BTC amount into currency.
func (l *CurrencyLedger) FromBaseUnits(ctx context.Context, btc decimal.Decimal, currency string) (decimal.Decimal, error) {
	v, _, err := l.Value(ctx, btc, currency)
	return v, err
}

// Value converts a BTC amount into currency and reports the rate it used.
func (l *CurrencyLedger) Value(ctx context.Context, btc decimal.Decimal, currency string) (decimal.Decimal, *domain.ExchangeRate, error) {
	c, err := l.Lookup(currency)
	if err != nil {
		return decimal.Zero, nil, err
	}
	switch c.Code {
	case domain.BTC:
		return btc, nil, nil
	case domain.SATS:
		return btc.Shift(8), nil, nil
	}
	rate, err := l.rate(ctx, c.Code)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return btc.Mul(rate.Rate), &rate, nil
}

// Convert moves an amount between any two supported currencies through BTC.
func (l *CurrencyLedger) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	src, err := l.Lookup(from)
	if err != nil {
		return decimal.Zero, err
	}
	dst, err := l.Lookup(to)
	if err != nil {
		return decimal.Zero, err
	}
	if src.Code == dst.Code {
		return amount, nil
	}
	btc, err := l.ToBaseUnits(ctx, amount, src.Code)
	if err != nil {
		return decimal.Zero, err
	}
	return l.FromBaseUnits(ctx, btc, dst.Code)
}

// Round rounds amount to the currency's display precision.
func (l *CurrencyLedger) Round(amount decimal.Decimal, currency string) decimal.Decimal {
	c, err := l.Lookup(currency)
	if err != nil {
		return amount
	}
	return amount.Round(c.DisplayDecimals)
}

func (l *CurrencyLedger) rate(ctx context.Context, quote string) (domain.ExchangeRate, error) {
	r, err := l.rates.Rate(ctx, quote)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return domain.ExchangeRate{}, appErr
		}
		return domain.ExchangeRate{}, apperror.ErrRateUnavailable(err)
	}
	if !r.Rate.IsPositive() {
		return domain.ExchangeRate{}, apperror.ErrRateUnavailable(errors.New("non-positive rate for " + quote))
	}
	return r, nil
}
