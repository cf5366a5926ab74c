package ports

import (
	"context"
	"time"

	"orangecat-wallets/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=services.go -destination=mocks/services_mock.go -package=mocks

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(userID uuid.UUID) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID uuid.UUID
}

// --- Outbound ports (external data) ---

// BalanceFetcher returns the on-chain balance of an address or extended key.
type BalanceFetcher interface {
	Fetch(ctx context.Context, addressOrKey string, kind domain.WalletKind) (*domain.BalanceSnapshot, error)
}

// ExchangeRateSource fetches current BTC prices from an upstream API.
type ExchangeRateSource interface {
	Name() string
	FetchBTCRates(ctx context.Context, quotes []string) (map[string]decimal.Decimal, error)
}

// RateSnapshotStore shares the latest rate table between service instances.
type RateSnapshotStore interface {
	// Load returns nil, nil when no snapshot is stored.
	Load(ctx context.Context) ([]domain.ExchangeRate, error)
	Save(ctx context.Context, rates []domain.ExchangeRate, ttl time.Duration) error
}

// EventPublisher announces balance changes to other processes.
type EventPublisher interface {
	PublishBalanceUpdated(ctx context.Context, event domain.BalanceUpdatedEvent) error
}

// --- Service ports (business logic) ---

// RateSource supplies the current BTC price in a fiat currency.
type RateSource interface {
	Rate(ctx context.Context, quote string) (domain.ExchangeRate, error)
}

// RateQuote is a cached rate with its freshness.
type RateQuote struct {
	domain.ExchangeRate
	Stale bool `json:"stale"`
}

// ExchangeRateProvider is the cached, concurrently readable rate table.
type ExchangeRateProvider interface {
	RateSource
	Snapshot() []RateQuote
}

// CurrencyLedger converts amounts between BTC and every supported currency.
type CurrencyLedger interface {
	Supported() []domain.Currency
	Lookup(code string) (domain.Currency, error)
	ToBaseUnits(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error)
	FromBaseUnits(ctx context.Context, btc decimal.Decimal, currency string) (decimal.Decimal, error)
	// Value is FromBaseUnits that also reports the rate applied; rate is nil for BTC and SATS.
	Value(ctx context.Context, btc decimal.Decimal, currency string) (decimal.Decimal, *domain.ExchangeRate, error)
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

// CreateWalletInput holds validated transport input for wallet creation.
type CreateWalletInput struct {
	Owner        domain.Owner
	AddressOrKey string
	Label        string
	Description  string
	Category     string
	CategoryIcon string
	GoalAmount   *decimal.Decimal
	GoalCurrency string
}

// UpdateWalletInput is a partial update; nil fields are left untouched.
type UpdateWalletInput struct {
	Label        *string
	Description  *string
	Category     *string
	CategoryIcon *string
	GoalAmount   *decimal.Decimal
	GoalCurrency *string
	ClearGoal    bool
	DisplayOrder *int
	IsPrimary    *bool
}

// WalletService owns wallet invariants and visibility rules.
type WalletService interface {
	Create(ctx context.Context, caller domain.Caller, in CreateWalletInput) (*domain.Wallet, error)
	Update(ctx context.Context, caller domain.Caller, id uuid.UUID, in UpdateWalletInput) (*domain.Wallet, error)
	SoftDelete(ctx context.Context, caller domain.Caller, id uuid.UUID) error
	Get(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Wallet, error)
	List(ctx context.Context, caller domain.Caller, owner domain.Owner) ([]domain.Wallet, error)
	ListAddresses(ctx context.Context, caller domain.Caller, id uuid.UUID) ([]domain.WalletAddress, error)
	// SetBalance is the only balance mutation path. It reports whether the write was applied.
	SetBalance(ctx context.Context, id uuid.UUID, balanceBTC decimal.Decimal, txCount int64, asOf time.Time) (bool, error)
	// GetForRefresh loads a wallet without visibility filtering, for the refresh pipeline.
	GetForRefresh(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	CanManage(ctx context.Context, caller domain.Caller, owner domain.Owner) (bool, error)
}

// BalanceRefreshService orchestrates a single balance refresh.
type BalanceRefreshService interface {
	Refresh(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Wallet, error)
	RefreshSystem(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
}

// GoalService evaluates goal progress.
type GoalService interface {
	EvaluateWallet(ctx context.Context, wallet *domain.Wallet) (*domain.GoalProgress, error)
	EvaluateOwner(ctx context.Context, caller domain.Caller, owner domain.Owner, goal *domain.Goal) (*domain.GoalProgress, error)
}

// AuditService records audit entries asynchronously.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
