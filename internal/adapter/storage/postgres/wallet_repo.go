package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const walletColumns = `id,
	CASE WHEN profile_id IS NOT NULL THEN 'profile' ELSE 'project' END AS owner_type,
	COALESCE(profile_id, project_id) AS owner_id,
	address_or_key, kind, key_variant, label, description, category, category_icon,
	goal_amount, COALESCE(goal_currency, '') AS goal_currency,
	balance_btc, tx_count, balance_updated_at, is_primary, is_active, display_order,
	created_at, updated_at`

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

var _ ports.WalletRepository = (*WalletRepo)(nil)

// ownerColumn returns the column that references owners of the given type.
func ownerColumn(owner domain.Owner) string {
	if owner.Type == domain.OwnerProject {
		return "project_id"
	}
	return "profile_id"
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(
		&w.ID, &w.Owner.Type, &w.Owner.ID,
		&w.AddressOrKey, &w.Kind, &w.KeyVariant, &w.Label, &w.Description, &w.Category, &w.CategoryIcon,
		&w.GoalAmount, &w.GoalCurrency,
		&w.BalanceBTC, &w.TxCount, &w.BalanceUpdatedAt, &w.IsPrimary, &w.IsActive, &w.DisplayOrder,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func scanWallets(rows pgx.Rows) ([]domain.Wallet, error) {
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, *w)
	}
	return wallets, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create inserts a new wallet inside tx. Constraint and trigger violations are
// reported as ports.ErrDuplicateAddress, ports.ErrPrimaryConflict or ports.ErrWalletLimit.
func (r *WalletRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, profile_id, project_id, address_or_key, kind, key_variant,
			label, description, category, category_icon, goal_amount, goal_currency,
			balance_btc, tx_count, is_primary, is_active, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := tx.Exec(ctx, query,
		w.ID, w.Owner.ProfileID(), w.Owner.ProjectID(), w.AddressOrKey, string(w.Kind), w.KeyVariant,
		w.Label, w.Description, string(w.Category), w.CategoryIcon, w.GoalAmount, nullString(w.GoalCurrency),
		w.BalanceBTC, w.TxCount, w.IsPrimary, w.IsActive, w.DisplayOrder, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if mapped := translateWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByID fetches a wallet by its UUID (without locking). Inactive wallets are returned too.
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`

	w, err := scanWallet(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by id: %w", err)
	}
	return w, nil
}

// GetByIDForUpdate fetches a wallet by ID with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 FOR UPDATE`

	w, err := scanWallet(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet for update: %w", err)
	}
	return w, nil
}

// ListByOwner returns the owner's active wallets in display order.
func (r *WalletRepo) ListByOwner(ctx context.Context, owner domain.Owner) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets
		WHERE ` + ownerColumn(owner) + ` = $1 AND is_active
		ORDER BY display_order, created_at`

	rows, err := r.pool.Query(ctx, query, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list wallets by owner: %w", err)
	}
	wallets, err := scanWallets(rows)
	if err != nil {
		return nil, fmt.Errorf("scan wallets: %w", err)
	}
	return wallets, nil
}

// LockOwner takes a transaction-scoped advisory lock on the owner.
// The wallets limit trigger takes the same lock, so it is re-entrant here.
func (r *WalletRepo) LockOwner(ctx context.Context, tx pgx.Tx, owner domain.Owner) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, owner.LockKey())
	if err != nil {
		return fmt.Errorf("lock owner %s: %w", owner, err)
	}
	return nil
}

// ActiveStats counts the owner's active wallets and computes the next display_order.
func (r *WalletRepo) ActiveStats(ctx context.Context, tx pgx.Tx, owner domain.Owner) (ports.ActiveWalletStats, error) {
	query := `SELECT COUNT(*), COALESCE(MAX(display_order), -1) + 1 FROM wallets
		WHERE ` + ownerColumn(owner) + ` = $1 AND is_active`

	var stats ports.ActiveWalletStats
	if err := tx.QueryRow(ctx, query, owner.ID).Scan(&stats.Count, &stats.NextDisplayOrder); err != nil {
		return stats, fmt.Errorf("count active wallets: %w", err)
	}
	return stats, nil
}

// ExistsActiveAddress reports whether the owner already has an active claim on addressOrKey.
func (r *WalletRepo) ExistsActiveAddress(ctx context.Context, tx pgx.Tx, owner domain.Owner, addressOrKey string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM wallets
		WHERE ` + ownerColumn(owner) + ` = $1 AND address_or_key = $2 AND is_active)`

	var exists bool
	if err := tx.QueryRow(ctx, query, owner.ID, addressOrKey).Scan(&exists); err != nil {
		return false, fmt.Errorf("check duplicate address: %w", err)
	}
	return exists, nil
}

// Update writes the mutable fields of a wallet. Owner and balance columns are never touched.
func (r *WalletRepo) Update(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `UPDATE wallets SET label = $1, description = $2, category = $3, category_icon = $4,
			goal_amount = $5, goal_currency = $6, display_order = $7, is_primary = $8, updated_at = $9
		WHERE id = $10 AND is_active`

	tag, err := tx.Exec(ctx, query,
		w.Label, w.Description, string(w.Category), w.CategoryIcon,
		w.GoalAmount, nullString(w.GoalCurrency), w.DisplayOrder, w.IsPrimary, w.UpdatedAt,
		w.ID,
	)
	if err != nil {
		if mapped := translateWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("update wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", w.ID)
	}
	return nil
}

// ClearPrimary demotes the owner's current primary wallet, if any.
func (r *WalletRepo) ClearPrimary(ctx context.Context, tx pgx.Tx, owner domain.Owner) error {
	query := `UPDATE wallets SET is_primary = FALSE, updated_at = NOW()
		WHERE ` + ownerColumn(owner) + ` = $1 AND is_active AND is_primary`

	if _, err := tx.Exec(ctx, query, owner.ID); err != nil {
		return fmt.Errorf("clear primary wallet: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a wallet. A deactivated wallet is never primary.
func (r *WalletRepo) Deactivate(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `UPDATE wallets SET is_active = FALSE, is_primary = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", id)
	}
	return nil
}

// PromoteNextPrimary marks the active wallet with the lowest display_order as primary.
// It returns nil when the owner has no active wallet left.
func (r *WalletRepo) PromoteNextPrimary(ctx context.Context, tx pgx.Tx, owner domain.Owner) (*uuid.UUID, error) {
	query := `UPDATE wallets SET is_primary = TRUE, updated_at = NOW()
		WHERE id = (
			SELECT id FROM wallets
			WHERE ` + ownerColumn(owner) + ` = $1 AND is_active
			ORDER BY display_order, created_at
			LIMIT 1
		)
		RETURNING id`

	var id uuid.UUID
	if err := tx.QueryRow(ctx, query, owner.ID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if mapped := translateWriteError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("promote primary wallet: %w", err)
	}
	return &id, nil
}

// SetBalance is a compare-and-set on balance_updated_at: results observed at or
// before the stored timestamp are dropped.
func (r *WalletRepo) SetBalance(ctx context.Context, id uuid.UUID, balanceBTC decimal.Decimal, txCount int64, asOf time.Time) (bool, error) {
	query := `UPDATE wallets SET balance_btc = $1, tx_count = $2, balance_updated_at = $3, updated_at = NOW()
		WHERE id = $4 AND (balance_updated_at IS NULL OR balance_updated_at < $3)`

	tag, err := r.pool.Exec(ctx, query, balanceBTC, txCount, asOf, id)
	if err != nil {
		return false, fmt.Errorf("set wallet balance: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListStale returns active wallets never refreshed or refreshed before the cutoff, oldest first.
func (r *WalletRepo) ListStale(ctx context.Context, before time.Time, limit int) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets
		WHERE is_active AND (balance_updated_at IS NULL OR balance_updated_at < $1)
		ORDER BY balance_updated_at NULLS FIRST, created_at
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, before, limit)
	if err != nil {
		return nil, fmt.Errorf("list stale wallets: %w", err)
	}
	wallets, err := scanWallets(rows)
	if err != nil {
		return nil, fmt.Errorf("scan stale wallets: %w", err)
	}
	return wallets, nil
}
