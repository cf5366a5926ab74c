package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepo implements ports.WalletRepository in memory.
type WalletRepo struct {
	store       *Store
	maxPerOwner int
	now         func() time.Time
}

var _ ports.WalletRepository = (*WalletRepo)(nil)

// NewWalletRepo creates a wallet repository. maxPerOwner mirrors the database trigger.
func NewWalletRepo(store *Store, maxPerOwner int) *WalletRepo {
	return &WalletRepo{store: store, maxPerOwner: maxPerOwner, now: time.Now}
}

func (r *WalletRepo) Create(_ context.Context, tx pgx.Tx, w *domain.Wallet) error {
	mt, err := asTx(tx)
	if err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.wallets[w.ID]; exists {
		return fmt.Errorf("insert wallet: duplicate id %s", w.ID)
	}
	if w.IsActive {
		active := r.activeLocked(w.Owner)
		if len(active) >= r.maxPerOwner {
			return ports.ErrWalletLimit
		}
		for _, other := range active {
			if other.AddressOrKey == w.AddressOrKey {
				return ports.ErrDuplicateAddress
			}
			if w.IsPrimary && other.IsPrimary {
				return ports.ErrPrimaryConflict
			}
		}
	}

	s.wallets[w.ID] = cloneWallet(w)
	id := w.ID
	mt.onRollback(func() { delete(s.wallets, id) })
	return nil
}

func (r *WalletRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	w, ok := r.store.wallets[id]
	if !ok {
		return nil, nil
	}
	return cloneWallet(w), nil
}

func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	if _, err := asTx(tx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *WalletRepo) ListByOwner(_ context.Context, owner domain.Owner) ([]domain.Wallet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	active := r.activeLocked(owner)
	out := make([]domain.Wallet, 0, len(active))
	for _, w := range active {
		out = append(out, *cloneWallet(w))
	}
	return out, nil
}

// LockOwner is satisfied by the store-wide write lock held by tx.
func (r *WalletRepo) LockOwner(_ context.Context, tx pgx.Tx, _ domain.Owner) error {
	_, err := asTx(tx)
	return err
}

func (r *WalletRepo) ActiveStats(_ context.Context, tx pgx.Tx, owner domain.Owner) (ports.ActiveWalletStats, error) {
	if _, err := asTx(tx); err != nil {
		return ports.ActiveWalletStats{}, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	active := r.activeLocked(owner)
	stats := ports.ActiveWalletStats{Count: len(active)}
	for _, w := range active {
		if w.DisplayOrder+1 > stats.NextDisplayOrder {
			stats.NextDisplayOrder = w.DisplayOrder + 1
		}
	}
	return stats, nil
}

func (r *WalletRepo) ExistsActiveAddress(_ context.Context, tx pgx.Tx, owner domain.Owner, addressOrKey string) (bool, error) {
	if _, err := asTx(tx); err != nil {
		return false, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, w := range r.activeLocked(owner) {
		if w.AddressOrKey == addressOrKey {
			return true, nil
		}
	}
	return false, nil
}

// Update writes the mutable fields. Owner and balance are never touched.
func (r *WalletRepo) Update(_ context.Context, tx pgx.Tx, w *domain.Wallet) error {
	mt, err := asTx(tx)
	if err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.wallets[w.ID]
	if !ok || !cur.IsActive {
		return fmt.Errorf("wallet not found: %s", w.ID)
	}
	if w.IsPrimary && !cur.IsPrimary {
		for _, other := range r.activeLocked(cur.Owner) {
			if other.ID != cur.ID && other.IsPrimary {
				return ports.ErrPrimaryConflict
			}
		}
	}

	r.snapshot(mt, cur)
	cur.Label = w.Label
	cur.Description = w.Description
	cur.Category = w.Category
	cur.CategoryIcon = w.CategoryIcon
	cur.GoalAmount = w.GoalAmount
	cur.GoalCurrency = w.GoalCurrency
	cur.DisplayOrder = w.DisplayOrder
	cur.IsPrimary = w.IsPrimary
	cur.UpdatedAt = w.UpdatedAt
	return nil
}

func (r *WalletRepo) ClearPrimary(_ context.Context, tx pgx.Tx, owner domain.Owner) error {
	mt, err := asTx(tx)
	if err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range r.activeLocked(owner) {
		if w.IsPrimary {
			r.snapshot(mt, w)
			w.IsPrimary = false
			w.UpdatedAt = r.now().UTC()
		}
	}
	return nil
}

func (r *WalletRepo) Deactivate(_ context.Context, tx pgx.Tx, id uuid.UUID) error {
	mt, err := asTx(tx)
	if err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wallets[id]
	if !ok || !w.IsActive {
		return fmt.Errorf("wallet not found: %s", id)
	}
	r.snapshot(mt, w)
	w.IsActive = false
	w.IsPrimary = false
	w.UpdatedAt = r.now().UTC()
	return nil
}

func (r *WalletRepo) PromoteNextPrimary(_ context.Context, tx pgx.Tx, owner domain.Owner) (*uuid.UUID, error) {
	mt, err := asTx(tx)
	if err != nil {
		return nil, err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	active := r.activeLocked(owner)
	if len(active) == 0 {
		return nil, nil
	}
	next := active[0]
	r.snapshot(mt, next)
	next.IsPrimary = true
	next.UpdatedAt = r.now().UTC()
	id := next.ID
	return &id, nil
}

// SetBalance applies the write only if asOf is newer than the stored timestamp.
func (r *WalletRepo) SetBalance(_ context.Context, id uuid.UUID, balanceBTC decimal.Decimal, txCount int64, asOf time.Time) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wallets[id]
	if !ok {
		return false, nil
	}
	if w.BalanceUpdatedAt != nil && !w.BalanceUpdatedAt.Before(asOf) {
		return false, nil
	}
	at := asOf
	w.BalanceBTC = balanceBTC
	w.TxCount = txCount
	w.BalanceUpdatedAt = &at
	w.UpdatedAt = r.now().UTC()
	return true, nil
}

// ListStale returns active wallets never refreshed or refreshed before the cutoff, oldest first.
func (r *WalletRepo) ListStale(_ context.Context, before time.Time, limit int) ([]domain.Wallet, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stale []*domain.Wallet
	for _, w := range s.wallets {
		if w.IsActive && (w.BalanceUpdatedAt == nil || w.BalanceUpdatedAt.Before(before)) {
			stale = append(stale, w)
		}
	}
	sort.Slice(stale, func(i, j int) bool {
		a, b := stale[i], stale[j]
		switch {
		case a.BalanceUpdatedAt == nil && b.BalanceUpdatedAt != nil:
			return true
		case a.BalanceUpdatedAt != nil && b.BalanceUpdatedAt == nil:
			return false
		case a.BalanceUpdatedAt != nil && !a.BalanceUpdatedAt.Equal(*b.BalanceUpdatedAt):
			return a.BalanceUpdatedAt.Before(*b.BalanceUpdatedAt)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	if limit > 0 && len(stale) > limit {
		stale = stale[:limit]
	}

	out := make([]domain.Wallet, 0, len(stale))
	for _, w := range stale {
		out = append(out, *cloneWallet(w))
	}
	return out, nil
}

// activeLocked returns the owner's active wallets in display order. Callers hold store.mu.
func (r *WalletRepo) activeLocked(owner domain.Owner) []*domain.Wallet {
	var out []*domain.Wallet
	for _, w := range r.store.wallets {
		if w.IsActive && w.Owner == owner {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// snapshot records w's current state so tx rollback can restore it. Callers hold store.mu.
func (r *WalletRepo) snapshot(mt *memTx, w *domain.Wallet) {
	saved := cloneWallet(w)
	s := r.store
	mt.onRollback(func() { s.wallets[saved.ID] = saved })
}
