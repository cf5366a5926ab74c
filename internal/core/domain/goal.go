package domain

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
)

// Goal is a fundraising target expressed in some currency.
type Goal struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// GoalProgress is the evaluated state of a goal against a BTC balance.
// ProgressFraction is nil when no goal applies.
type GoalProgress struct {
	Applicable       bool             `json:"applicable"`
	BalanceBTC       decimal.Decimal  `json:"balance_btc"`
	GoalAmount       *decimal.Decimal `json:"goal_amount,omitempty"`
	GoalCurrency     string           `json:"goal_currency,omitempty"`
	CurrentValue     *decimal.Decimal `json:"current_value,omitempty"`
	ProgressFraction *decimal.Decimal `json:"progress_fraction,omitempty"`
	GoalReached      bool             `json:"goal_reached"`
	RateUsed         *ExchangeRate    `json:"rate_used,omitempty"`
}

// BalanceSnapshot is what a blockchain indexer reported for one address or key.
type BalanceSnapshot struct {
	Balance   btcutil.Amount
	TxCount   int64
	AsOf      time.Time
	Provider  string
	Addresses []DerivedAddressBalance
}

// BalanceBTC converts the satoshi balance to an exact BTC decimal.
func (s *BalanceSnapshot) BalanceBTC() decimal.Decimal {
	return SatsToBTC(s.Balance)
}

// DerivedAddressBalance is a per-address line of an extended key breakdown.
type DerivedAddressBalance struct {
	Address         string
	Path            string
	Chain           int
	DerivationIndex int
	Balance         btcutil.Amount
	TxCount         int64
}

// SatsToBTC converts satoshis to BTC without floating point.
func SatsToBTC(sats btcutil.Amount) decimal.Decimal {
	return decimal.New(int64(sats), -8)
}
