package memory

import (
	"context"
	"sort"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"

	"github.com/google/uuid"
)

type addressKey struct {
	chain int
	index int
}

// WalletAddressRepo implements ports.WalletAddressRepository in memory.
type WalletAddressRepo struct {
	store *Store
}

var _ ports.WalletAddressRepository = (*WalletAddressRepo)(nil)

func NewWalletAddressRepo(store *Store) *WalletAddressRepo {
	return &WalletAddressRepo{store: store}
}

// Upsert inserts or refreshes rows keyed by (wallet, chain, index). discovered_at is kept on update.
func (r *WalletAddressRepo) Upsert(_ context.Context, addresses []domain.WalletAddress) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range addresses {
		byKey, ok := s.addresses[a.WalletID]
		if !ok {
			byKey = make(map[addressKey]domain.WalletAddress)
			s.addresses[a.WalletID] = byKey
		}
		k := addressKey{chain: a.Chain, index: a.DerivationIndex}
		if prev, ok := byKey[k]; ok {
			a.DiscoveredAt = prev.DiscoveredAt
		}
		byKey[k] = a
	}
	return nil
}

// ListByWallet returns the breakdown ordered by chain then index.
func (r *WalletAddressRepo) ListByWallet(_ context.Context, walletID uuid.UUID) ([]domain.WalletAddress, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.WalletAddress, 0, len(s.addresses[walletID]))
	for _, a := range s.addresses[walletID] {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Chain != out[j].Chain {
			return out[i].Chain < out[j].Chain
		}
		return out[i].DerivationIndex < out[j].DerivationIndex
	})
	return out, nil
}
