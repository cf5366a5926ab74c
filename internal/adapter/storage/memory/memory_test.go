package memory

import (
	"context"
	"testing"
	"time"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newWallet(owner domain.Owner, address string, order int, primary bool) *domain.Wallet {
	return &domain.Wallet{
		ID:           uuid.New(),
		Owner:        owner,
		AddressOrKey: address,
		Kind:         domain.WalletKindAddress,
		Label:        address,
		Category:     domain.CategoryGeneral,
		BalanceBTC:   decimal.Zero,
		IsPrimary:    primary,
		IsActive:     true,
		DisplayOrder: order,
		CreatedAt:    baseTime.Add(time.Duration(order) * time.Second),
		UpdatedAt:    baseTime,
	}
}

func profile() domain.Owner {
	return domain.Owner{Type: domain.OwnerProfile, ID: uuid.New()}
}

func begin(t *testing.T, tr *Transactor) pgx.Tx {
	t.Helper()
	tx, err := tr.Begin(context.Background())
	require.NoError(t, err)
	return tx
}

func TestWalletRepo_CreateEnforcesInvariants(t *testing.T) {
	store := NewStore()
	repo := NewWalletRepo(store, 2)
	tr := NewTransactor(store)
	ctx := context.Background()
	owner := profile()

	tx := begin(t, tr)
	require.NoError(t, repo.Create(ctx, tx, newWallet(owner, "a", 0, true)))
	assert.ErrorIs(t, repo.Create(ctx, tx, newWallet(owner, "a", 1, false)), ports.ErrDuplicateAddress)
	assert.ErrorIs(t, repo.Create(ctx, tx, newWallet(owner, "b", 1, true)), ports.ErrPrimaryConflict)
	require.NoError(t, repo.Create(ctx, tx, newWallet(owner, "b", 1, false)))
	assert.ErrorIs(t, repo.Create(ctx, tx, newWallet(owner, "c", 2, false)), ports.ErrWalletLimit)
	require.NoError(t, tx.Commit(ctx))

	// Another owner is unaffected.
	tx = begin(t, tr)
	require.NoError(t, repo.Create(ctx, tx, newWallet(profile(), "a", 0, true)))
	require.NoError(t, tx.Commit(ctx))

	wallets, err := repo.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	assert.Equal(t, "a", wallets[0].AddressOrKey)
	assert.Equal(t, "b", wallets[1].AddressOrKey)
}

func TestTransactor_RollbackRevertsWrites(t *testing.T) {
	store := NewStore()
	repo := NewWalletRepo(store, 10)
	tr := NewTransactor(store)
	ctx := context.Background()
	owner := profile()

	first := newWallet(owner, "a", 0, true)
	tx := begin(t, tr)
	require.NoError(t, repo.Create(ctx, tx, first))
	require.NoError(t, tx.Commit(ctx))

	tx = begin(t, tr)
	second := newWallet(owner, "b", 1, false)
	require.NoError(t, repo.Create(ctx, tx, second))
	require.NoError(t, repo.ClearPrimary(ctx, tx, owner))
	require.NoError(t, repo.Deactivate(ctx, tx, first.ID))
	require.NoError(t, tx.Rollback(ctx))

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.True(t, got.IsPrimary)

	missing, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	// Rollback after commit is a no-op.
	tx = begin(t, tr)
	require.NoError(t, tx.Commit(ctx))
	assert.NoError(t, tx.Rollback(ctx))
	assert.ErrorIs(t, tx.Commit(ctx), ErrTxDone)
}

func TestTransactor_SerializesWriters(t *testing.T) {
	store := NewStore()
	tr := NewTransactor(store)
	ctx := context.Background()

	tx := begin(t, tr)

	waitCtx, cancel := context.WithTimeout(ctx, 30*time.Millisecond)
	defer cancel()
	_, err := tr.Begin(waitCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	acquired := make(chan struct{})
	go func() {
		tx2, err := tr.Begin(ctx)
		if err == nil {
			_ = tx2.Rollback(ctx)
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second transaction started while the first was open")
	case <-time.After(30 * time.Millisecond):
	}
	require.NoError(t, tx.Commit(ctx))
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second transaction never started")
	}
}

func TestWalletRepo_RequiresMemoryTx(t *testing.T) {
	repo := NewWalletRepo(NewStore(), 10)
	err := repo.LockOwner(context.Background(), nil, profile())
	assert.Error(t, err)
}

func TestWalletRepo_PromoteNextPrimary(t *testing.T) {
	store := NewStore()
	repo := NewWalletRepo(store, 10)
	tr := NewTransactor(store)
	ctx := context.Background()
	owner := profile()

	a := newWallet(owner, "a", 0, true)
	b := newWallet(owner, "b", 5, false)
	c := newWallet(owner, "c", 2, false)
	tx := begin(t, tr)
	for _, w := range []*domain.Wallet{a, b, c} {
		require.NoError(t, repo.Create(ctx, tx, w))
	}
	require.NoError(t, repo.Deactivate(ctx, tx, a.ID))
	promoted, err := repo.PromoteNextPrimary(ctx, tx, owner)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	require.NotNil(t, promoted)
	assert.Equal(t, c.ID, *promoted)

	tx = begin(t, tr)
	stats, err := repo.ActiveStats(ctx, tx, owner)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	assert.Equal(t, ports.ActiveWalletStats{Count: 2, NextDisplayOrder: 6}, stats)
}

func TestWalletRepo_PromoteNextPrimary_NoneLeft(t *testing.T) {
	store := NewStore()
	repo := NewWalletRepo(store, 10)
	tx := begin(t, NewTransactor(store))
	defer tx.Rollback(context.Background()) //nolint:errcheck

	promoted, err := repo.PromoteNextPrimary(context.Background(), tx, profile())
	require.NoError(t, err)
	assert.Nil(t, promoted)
}

func TestWalletRepo_SetBalanceIsCompareAndSet(t *testing.T) {
	store := NewStore()
	repo := NewWalletRepo(store, 10)
	ctx := context.Background()
	w := newWallet(profile(), "a", 0, true)

	tx := begin(t, NewTransactor(store))
	require.NoError(t, repo.Create(ctx, tx, w))
	require.NoError(t, tx.Commit(ctx))

	applied, err := repo.SetBalance(ctx, w.ID, decimal.RequireFromString("0.5"), 2, baseTime.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = repo.SetBalance(ctx, w.ID, decimal.RequireFromString("0.1"), 1, baseTime)
	require.NoError(t, err)
	assert.False(t, applied, "older snapshot must not win")

	applied, err = repo.SetBalance(ctx, w.ID, decimal.RequireFromString("0.1"), 1, baseTime.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, applied, "same timestamp must not overwrite")

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.5", got.BalanceBTC.String())
	assert.Equal(t, int64(2), got.TxCount)

	applied, err = repo.SetBalance(ctx, uuid.New(), decimal.Zero, 0, baseTime)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestWalletRepo_ListStale(t *testing.T) {
	store := NewStore()
	repo := NewWalletRepo(store, 10)
	ctx := context.Background()
	owner := profile()

	never := newWallet(owner, "never", 0, true)
	old := newWallet(owner, "old", 1, false)
	fresh := newWallet(owner, "fresh", 2, false)
	deleted := newWallet(owner, "deleted", 3, false)
	deleted.IsActive = false

	tx := begin(t, NewTransactor(store))
	for _, w := range []*domain.Wallet{never, old, fresh, deleted} {
		require.NoError(t, repo.Create(ctx, tx, w))
	}
	require.NoError(t, tx.Commit(ctx))

	_, err := repo.SetBalance(ctx, old.ID, decimal.Zero, 0, baseTime.Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = repo.SetBalance(ctx, fresh.ID, decimal.Zero, 0, baseTime)
	require.NoError(t, err)

	stale, err := repo.ListStale(ctx, baseTime.Add(-time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, stale, 2)
	assert.Equal(t, never.ID, stale[0].ID)
	assert.Equal(t, old.ID, stale[1].ID)

	limited, err := repo.ListStale(ctx, baseTime.Add(-time.Hour), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestWalletRepo_ReturnsCopies(t *testing.T) {
	store := NewStore()
	repo := NewWalletRepo(store, 10)
	ctx := context.Background()
	w := newWallet(profile(), "a", 0, true)

	tx := begin(t, NewTransactor(store))
	require.NoError(t, repo.Create(ctx, tx, w))
	require.NoError(t, tx.Commit(ctx))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	got.Label = "mutated"

	again, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", again.Label)
}

func TestWalletAddressRepo_UpsertKeepsDiscoveredAt(t *testing.T) {
	repo := NewWalletAddressRepo(NewStore())
	ctx := context.Background()
	walletID := uuid.New()

	first := domain.WalletAddress{WalletID: walletID, Address: "bc1qa", Chain: 0, DerivationIndex: 1, DiscoveredAt: baseTime, UpdatedAt: baseTime}
	change := domain.WalletAddress{WalletID: walletID, Address: "bc1qc", Chain: 1, DerivationIndex: 0, DiscoveredAt: baseTime, UpdatedAt: baseTime}
	require.NoError(t, repo.Upsert(ctx, []domain.WalletAddress{change, first}))

	later := first
	later.TxCount = 4
	later.DiscoveredAt = baseTime.Add(time.Hour)
	later.UpdatedAt = baseTime.Add(time.Hour)
	require.NoError(t, repo.Upsert(ctx, []domain.WalletAddress{later}))

	got, err := repo.ListByWallet(ctx, walletID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "bc1qa", got[0].Address)
	assert.Equal(t, int64(4), got[0].TxCount)
	assert.Equal(t, baseTime, got[0].DiscoveredAt)
	assert.Equal(t, baseTime.Add(time.Hour), got[0].UpdatedAt)
	assert.Equal(t, "bc1qc", got[1].Address)

	empty, err := repo.ListByWallet(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestOwnerDirectory(t *testing.T) {
	store := NewStore()
	dir := NewOwnerDirectory(store)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	projectID := uuid.New()
	store.PutProfile(alice, true)
	store.PutProject(projectID, alice, false)

	aliceOwner := domain.Owner{Type: domain.OwnerProfile, ID: alice}
	projectOwner := domain.Owner{Type: domain.OwnerProject, ID: projectID}

	ok, _ := dir.CanManage(ctx, alice, aliceOwner)
	assert.True(t, ok)
	ok, _ = dir.CanManage(ctx, bob, aliceOwner)
	assert.False(t, ok)
	ok, _ = dir.CanManage(ctx, alice, projectOwner)
	assert.True(t, ok)
	ok, _ = dir.CanManage(ctx, bob, projectOwner)
	assert.False(t, ok)
	ok, _ = dir.CanManage(ctx, uuid.Nil, aliceOwner)
	assert.False(t, ok)

	public, _ := dir.IsPublic(ctx, aliceOwner)
	assert.True(t, public)
	public, _ = dir.IsPublic(ctx, projectOwner)
	assert.False(t, public)
	public, _ = dir.IsPublic(ctx, domain.Owner{Type: domain.OwnerProfile, ID: bob})
	assert.False(t, public)
}

func TestAuditRepository(t *testing.T) {
	store := NewStore()
	repo := NewAuditRepository(store)

	require.NoError(t, repo.Create(context.Background(), &domain.AuditLog{Action: domain.AuditActionWalletCreate}))
	entries := store.AuditEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditActionWalletCreate, entries[0].Action)
}
