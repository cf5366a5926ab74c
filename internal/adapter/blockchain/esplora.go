package blockchain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"orangecat-wallets/internal/core/domain"

	"github.com/btcsuite/btcd/btcutil"
)

// Esplora talks to an Esplora REST API (mempool.space, blockstream.info).
// It only knows about single addresses.
type Esplora struct {
	baseProvider
}

// NewEsplora creates an Esplora provider rooted at baseURL, e.g. https://mempool.space/api.
func NewEsplora(name, baseURL string, client *http.Client) *Esplora {
	return &Esplora{baseProvider: newBaseProvider(name, baseURL, client)}
}

// Totals are pointers so a body without them is told apart from an empty address.
type esploraStats struct {
	FundedTxoSum *int64 `json:"funded_txo_sum"`
	SpentTxoSum  *int64 `json:"spent_txo_sum"`
	TxCount      int64  `json:"tx_count"`
}

type esploraAddress struct {
	Address    string        `json:"address"`
	ChainStats *esploraStats `json:"chain_stats"`
}

func (e *Esplora) Supports(kind domain.WalletKind) bool {
	return kind == domain.WalletKindAddress
}

// Fetch returns the confirmed balance of an address: funded minus spent outputs.
func (e *Esplora) Fetch(ctx context.Context, address string, kind domain.WalletKind) (*domain.BalanceSnapshot, error) {
	if !e.Supports(kind) {
		return nil, e.fail(KindUnsupported, 0, fmt.Errorf("wallet kind %q", kind))
	}

	var body esploraAddress
	if err := e.getJSON(ctx, "/address/"+url.PathEscape(address), nil, &body); err != nil {
		return nil, err
	}

	stats := body.ChainStats
	if stats == nil || stats.FundedTxoSum == nil || stats.SpentTxoSum == nil {
		return nil, e.fail(KindBadResponse, 0, errors.New("missing chain_stats totals"))
	}
	funded, spent := *stats.FundedTxoSum, *stats.SpentTxoSum
	balance := funded - spent
	if funded < 0 || spent < 0 || balance < 0 || stats.TxCount < 0 {
		return nil, e.fail(KindBadResponse, 0, errors.New("negative totals"))
	}

	return &domain.BalanceSnapshot{
		Balance:  btcutil.Amount(balance),
		TxCount:  stats.TxCount,
		AsOf:     e.now().UTC(),
		Provider: e.name,
	}, nil
}
