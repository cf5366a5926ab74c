package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWallet(owner domain.Owner) *domain.Wallet {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Wallet{
		ID:           uuid.New(),
		Owner:        owner,
		AddressOrKey: "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh",
		Kind:         domain.WalletKindAddress,
		KeyVariant:   "p2wpkh",
		Label:        "Rent fund",
		Category:     domain.CategoryRent,
		CategoryIcon: "🏠",
		GoalAmount:   decimal.NewNullDecimal(decimal.NewFromInt(1200)),
		GoalCurrency: domain.USD,
		BalanceBTC:   decimal.Zero,
		IsPrimary:    true,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func walletRowColumns() []string {
	return []string{"id", "owner_type", "owner_id", "address_or_key", "kind", "key_variant", "label",
		"description", "category", "category_icon", "goal_amount", "goal_currency", "balance_btc",
		"tx_count", "balance_updated_at", "is_primary", "is_active", "display_order", "created_at", "updated_at"}
}

func walletRow(rows *pgxmock.Rows, w *domain.Wallet) *pgxmock.Rows {
	var goal any
	if w.GoalAmount.Valid {
		goal = w.GoalAmount.Decimal.String()
	}
	return rows.AddRow(
		w.ID, w.Owner.Type, w.Owner.ID, w.AddressOrKey, w.Kind, w.KeyVariant, w.Label,
		w.Description, w.Category, w.CategoryIcon, goal, w.GoalCurrency, w.BalanceBTC.String(),
		w.TxCount, w.BalanceUpdatedAt, w.IsPrimary, w.IsActive, w.DisplayOrder, w.CreatedAt, w.UpdatedAt,
	)
}

func profileOwner() domain.Owner {
	return domain.Owner{Type: domain.OwnerProfile, ID: uuid.New()}
}

func TestWalletRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet(profileOwner())
	usd := domain.USD

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO wallets").
		WithArgs(
			w.ID, w.Owner.ProfileID(), (*uuid.UUID)(nil), w.AddressOrKey, "address", "p2wpkh",
			w.Label, "", "rent", "🏠", pgxmock.AnyArg(), &usd,
			pgxmock.AnyArg(), int64(0), true, true, 0, w.CreatedAt, w.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, w)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Create_ConstraintViolations(t *testing.T) {
	tests := []struct {
		name    string
		pgErr   *pgconn.PgError
		wantErr error
	}{
		{
			name:    "duplicate address",
			pgErr:   &pgconn.PgError{Code: "23505", ConstraintName: "wallets_address_profile_uniq"},
			wantErr: ports.ErrDuplicateAddress,
		},
		{
			name:    "second primary",
			pgErr:   &pgconn.PgError{Code: "23505", ConstraintName: "wallets_primary_project_uniq"},
			wantErr: ports.ErrPrimaryConflict,
		},
		{
			name:    "active limit trigger",
			pgErr:   &pgconn.PgError{Code: "P0001", ConstraintName: "wallets_active_limit"},
			wantErr: ports.ErrWalletLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			repo := NewWalletRepo(mock)
			mock.ExpectBegin()
			mock.ExpectExec("INSERT INTO wallets").WillReturnError(tt.pgErr)

			tx, err := mock.Begin(context.Background())
			require.NoError(t, err)

			err = repo.Create(context.Background(), tx, newTestWallet(profileOwner()))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWalletRepo_Create_OtherErrorWrapped(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO wallets").WillReturnError(errors.New("connection reset"))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, newTestWallet(profileOwner()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert wallet")
	assert.NotErrorIs(t, err, ports.ErrDuplicateAddress)
}

func TestWalletRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet(profileOwner())
	refreshed := time.Now().UTC().Truncate(time.Microsecond)
	w.BalanceUpdatedAt = &refreshed
	w.BalanceBTC = decimal.RequireFromString("0.12345678")
	w.TxCount = 7

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE id").
		WithArgs(w.ID).
		WillReturnRows(walletRow(pgxmock.NewRows(walletRowColumns()), w))

	got, err := repo.GetByID(context.Background(), w.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, w.ID, got.ID)
	assert.Equal(t, w.Owner, got.Owner)
	assert.Equal(t, domain.WalletKindAddress, got.Kind)
	assert.True(t, got.BalanceBTC.Equal(decimal.RequireFromString("0.12345678")))
	assert.Equal(t, int64(7), got.TxCount)
	require.NotNil(t, got.BalanceUpdatedAt)
	assert.Equal(t, refreshed, *got.BalanceUpdatedAt)
	require.NotNil(t, got.Goal())
	assert.True(t, got.Goal().Amount.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, domain.USD, got.Goal().Currency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(walletRowColumns()))

	got, err := repo.GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_ListByOwner_UsesOwnerColumn(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	owner := domain.Owner{Type: domain.OwnerProject, ID: uuid.New()}
	first := newTestWallet(owner)
	second := newTestWallet(owner)
	second.IsPrimary = false
	second.DisplayOrder = 1
	second.GoalAmount = decimal.NullDecimal{}
	second.GoalCurrency = ""

	rows := pgxmock.NewRows(walletRowColumns())
	walletRow(rows, first)
	walletRow(rows, second)

	mock.ExpectQuery("FROM wallets\\s+WHERE project_id = \\$1 AND is_active").
		WithArgs(owner.ID).
		WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].IsPrimary)
	assert.Equal(t, owner, got[1].Owner)
	assert.Nil(t, got[1].Goal())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_LockOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	owner := profileOwner()

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(owner.LockKey()).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	assert.NoError(t, repo.LockOwner(context.Background(), tx, owner))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_ActiveStats(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	owner := profileOwner()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
		WithArgs(owner.ID).
		WillReturnRows(pgxmock.NewRows([]string{"count", "next"}).AddRow(3, 5))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	stats, err := repo.ActiveStats(context.Background(), tx, owner)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 5, stats.NextDisplayOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_ExistsActiveAddress(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	owner := profileOwner()
	addr := "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh"

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(owner.ID, addr).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	exists, err := repo.ExistsActiveAddress(context.Background(), tx, owner, addr)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Update_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet(profileOwner())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE wallets SET label").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Update(context.Background(), tx, w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wallet not found")
}

func TestWalletRepo_DeactivateAndPromote(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	owner := profileOwner()
	deleted := uuid.New()
	next := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE wallets SET is_active = FALSE").
		WithArgs(deleted).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("UPDATE wallets SET is_primary = TRUE").
		WithArgs(owner.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(next))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	require.NoError(t, repo.Deactivate(context.Background(), tx, deleted))
	promoted, err := repo.PromoteNextPrimary(context.Background(), tx, owner)
	require.NoError(t, err)
	require.NotNil(t, promoted)
	assert.Equal(t, next, *promoted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_PromoteNextPrimary_NoneLeft(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	owner := profileOwner()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE wallets SET is_primary = TRUE").
		WithArgs(owner.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	promoted, err := repo.PromoteNextPrimary(context.Background(), tx, owner)
	assert.NoError(t, err)
	assert.Nil(t, promoted)
}

func TestWalletRepo_SetBalance(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "newer observation applied", affected: 1, want: true},
		{name: "older observation dropped", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			repo := NewWalletRepo(mock)
			id := uuid.New()
			asOf := time.Now().UTC().Truncate(time.Microsecond)

			mock.ExpectExec("UPDATE wallets SET balance_btc").
				WithArgs(pgxmock.AnyArg(), int64(4), asOf, id).
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.affected))

			applied, err := repo.SetBalance(context.Background(), id, decimal.RequireFromString("0.1"), 4, asOf)
			require.NoError(t, err)
			assert.Equal(t, tt.want, applied)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWalletRepo_ListStale(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	before := time.Now().UTC().Add(-time.Hour)
	w := newTestWallet(profileOwner())

	mock.ExpectQuery("balance_updated_at IS NULL OR balance_updated_at < \\$1").
		WithArgs(before, 50).
		WillReturnRows(walletRow(pgxmock.NewRows(walletRowColumns()), w))

	got, err := repo.ListStale(context.Background(), before, 50)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].BalanceUpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
