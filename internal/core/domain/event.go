package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventBalanceUpdated is the channel name for applied balance refreshes.
const EventBalanceUpdated = "wallet.balance_updated"

// BalanceUpdatedEvent is published after a refresh writes a new balance.
type BalanceUpdatedEvent struct {
	WalletID   uuid.UUID       `json:"wallet_id"`
	Owner      Owner           `json:"owner"`
	BalanceBTC decimal.Decimal `json:"balance_btc"`
	TxCount    int64           `json:"tx_count"`
	AsOf       time.Time       `json:"as_of"`
	Provider   string          `json:"provider"`
}
