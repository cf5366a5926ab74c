package ports

import (
	"context"
	"errors"
	"time"

	"orangecat-wallets/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=repositories.go -destination=mocks/repositories_mock.go -package=mocks

// Errors returned by WalletRepository when a database-level invariant rejects a write.
var (
	ErrDuplicateAddress = errors.New("address or key already registered for this owner")
	ErrWalletLimit      = errors.New("active wallet limit reached for this owner")
	ErrPrimaryConflict  = errors.New("owner already has a primary wallet")
)

// ActiveWalletStats summarizes an owner's active wallets inside a write transaction.
type ActiveWalletStats struct {
	Count            int
	NextDisplayOrder int
}

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx must be called inside a transaction that holds the owner lock.
type WalletRepository interface {
	Create(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	ListByOwner(ctx context.Context, owner domain.Owner) ([]domain.Wallet, error)
	LockOwner(ctx context.Context, tx pgx.Tx, owner domain.Owner) error
	ActiveStats(ctx context.Context, tx pgx.Tx, owner domain.Owner) (ActiveWalletStats, error)
	ExistsActiveAddress(ctx context.Context, tx pgx.Tx, owner domain.Owner, addressOrKey string) (bool, error)
	Update(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error
	ClearPrimary(ctx context.Context, tx pgx.Tx, owner domain.Owner) error
	Deactivate(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	PromoteNextPrimary(ctx context.Context, tx pgx.Tx, owner domain.Owner) (*uuid.UUID, error)
	// SetBalance writes the balance only if asOf is newer than the stored balance_updated_at.
	// It reports whether the write was applied.
	SetBalance(ctx context.Context, id uuid.UUID, balanceBTC decimal.Decimal, txCount int64, asOf time.Time) (bool, error)
	// ListStale returns active wallets whose balance is older than before, oldest first.
	ListStale(ctx context.Context, before time.Time, limit int) ([]domain.Wallet, error)
}

// WalletAddressRepository persists the derived-address breakdown of extended-key wallets.
type WalletAddressRepository interface {
	Upsert(ctx context.Context, addresses []domain.WalletAddress) error
	ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.WalletAddress, error)
}

// OwnerDirectory answers ownership and visibility questions about profiles and projects.
type OwnerDirectory interface {
	// CanManage reports whether the user may modify wallets of owner.
	CanManage(ctx context.Context, userID uuid.UUID, owner domain.Owner) (bool, error)
	// IsPublic reports whether the owner's active wallets are visible to everyone.
	IsPublic(ctx context.Context, owner domain.Owner) (bool, error)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
