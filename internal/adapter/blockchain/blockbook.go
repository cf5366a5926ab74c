package blockchain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"orangecat-wallets/internal/core/domain"

	"github.com/btcsuite/btcd/btcutil"
)

// Blockbook talks to a Trezor Blockbook v2 API. It supports addresses and
// extended keys; for keys it also returns the per-address breakdown of used addresses.
type Blockbook struct {
	baseProvider
}

// NewBlockbook creates a Blockbook provider rooted at baseURL, e.g. https://btc1.trezor.io/api/v2.
func NewBlockbook(name, baseURL string, client *http.Client) *Blockbook {
	return &Blockbook{baseProvider: newBaseProvider(name, baseURL, client)}
}

// Blockbook encodes satoshi amounts as decimal strings.
type blockbookTotals struct {
	Balance       string `json:"balance"`
	TotalReceived string `json:"totalReceived"`
	TotalSent     string `json:"totalSent"`
	Txs           int64  `json:"txs"`
}

type blockbookToken struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	Transfers int64  `json:"transfers"`
	Balance   string `json:"balance"`
}

type blockbookXpub struct {
	blockbookTotals
	Tokens []blockbookToken `json:"tokens"`
}

func (b *Blockbook) Supports(kind domain.WalletKind) bool {
	return kind == domain.WalletKindAddress || kind == domain.WalletKindExtendedKey
}

func (b *Blockbook) Fetch(ctx context.Context, addressOrKey string, kind domain.WalletKind) (*domain.BalanceSnapshot, error) {
	switch kind {
	case domain.WalletKindAddress:
		return b.fetchAddress(ctx, addressOrKey)
	case domain.WalletKindExtendedKey:
		return b.fetchXpub(ctx, addressOrKey)
	default:
		return nil, b.fail(KindUnsupported, 0, fmt.Errorf("wallet kind %q", kind))
	}
}

func (b *Blockbook) fetchAddress(ctx context.Context, address string) (*domain.BalanceSnapshot, error) {
	var body blockbookTotals
	query := url.Values{"details": {"basic"}}
	if err := b.getJSON(ctx, "/address/"+url.PathEscape(address), query, &body); err != nil {
		return nil, err
	}

	balance, err := b.balanceOf(body)
	if err != nil {
		return nil, err
	}
	return &domain.BalanceSnapshot{
		Balance:  balance,
		TxCount:  body.Txs,
		AsOf:     b.now().UTC(),
		Provider: b.name,
	}, nil
}

func (b *Blockbook) fetchXpub(ctx context.Context, key string) (*domain.BalanceSnapshot, error) {
	var body blockbookXpub
	query := url.Values{"details": {"tokenBalances"}, "tokens": {"used"}}
	if err := b.getJSON(ctx, "/xpub/"+url.PathEscape(key), query, &body); err != nil {
		return nil, err
	}

	balance, err := b.balanceOf(body.blockbookTotals)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.BalanceSnapshot{
		Balance:  balance,
		TxCount:  body.Txs,
		AsOf:     b.now().UTC(),
		Provider: b.name,
	}
	for _, t := range body.Tokens {
		chain, index, ok := parseDerivationPath(t.Path)
		if !ok || t.Name == "" {
			continue
		}
		sats, err := parseSats(t.Balance)
		if err != nil || sats < 0 {
			continue
		}
		snapshot.Addresses = append(snapshot.Addresses, domain.DerivedAddressBalance{
			Address:         t.Name,
			Path:            t.Path,
			Chain:           chain,
			DerivationIndex: index,
			Balance:         btcutil.Amount(sats),
			TxCount:         t.Transfers,
		})
	}
	return snapshot, nil
}

// balanceOf computes received minus sent and rejects impossible totals.
func (b *Blockbook) balanceOf(t blockbookTotals) (btcutil.Amount, error) {
	received, err := parseSats(t.TotalReceived)
	if err != nil {
		return 0, b.fail(KindBadResponse, 0, fmt.Errorf("totalReceived: %w", err))
	}
	sent, err := parseSats(t.TotalSent)
	if err != nil {
		return 0, b.fail(KindBadResponse, 0, fmt.Errorf("totalSent: %w", err))
	}
	if received < 0 || sent < 0 || received < sent || t.Txs < 0 {
		return 0, b.fail(KindBadResponse, 0, errors.New("negative totals"))
	}
	return btcutil.Amount(received - sent), nil
}

var errMissingAmount = errors.New("missing amount")

func parseSats(s string) (int64, error) {
	if s == "" {
		return 0, errMissingAmount
	}
	return strconv.ParseInt(s, 10, 64)
}

// parseDerivationPath extracts the chain (0 receive, 1 change) and index from
// the last two components of a BIP32 path such as m/84'/0'/0'/1/7.
func parseDerivationPath(path string) (chain, index int, ok bool) {
	parts := strings.Split(path, "/")
	if len(parts) < 3 {
		return 0, 0, false
	}
	chain, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil || (chain != 0 && chain != 1) {
		return 0, 0, false
	}
	index, err = strconv.Atoi(parts[len(parts)-1])
	if err != nil || index < 0 {
		return 0, 0, false
	}
	return chain, index, true
}
