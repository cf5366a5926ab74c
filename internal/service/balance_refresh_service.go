package service

import (
	"context"
	"errors"
	"time"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"
	"orangecat-wallets/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BalanceRefreshServiceImpl fetches a wallet's on-chain balance and stores it.
// The cooldown is checked before any network call, and a fetch failure leaves the stored balance untouched.
type BalanceRefreshServiceImpl struct {
	wallets   ports.WalletService
	addresses ports.WalletAddressRepository
	fetcher   ports.BalanceFetcher
	limiter   *RefreshRateLimiter
	publisher ports.EventPublisher
	log       zerolog.Logger
	now       func() time.Time
}

var _ ports.BalanceRefreshService = (*BalanceRefreshServiceImpl)(nil)

// NewBalanceRefreshService creates a refresh service. publisher may be nil.
func NewBalanceRefreshService(
	wallets ports.WalletService,
	addresses ports.WalletAddressRepository,
	fetcher ports.BalanceFetcher,
	limiter *RefreshRateLimiter,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) *BalanceRefreshServiceImpl {
	return &BalanceRefreshServiceImpl{
		wallets:   wallets,
		addresses: addresses,
		fetcher:   fetcher,
		limiter:   limiter,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Refresh is the user-initiated refresh. Only callers who manage the owner may refresh.
func (s *BalanceRefreshServiceImpl) Refresh(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Wallet, error) {
	if caller.IsAnonymous() {
		return nil, apperror.ErrInvalidToken()
	}
	wallet, err := s.wallets.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.wallets.CanManage(ctx, caller, wallet.Owner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrForbidden()
	}
	return s.refresh(ctx, wallet)
}

// RefreshSystem refreshes on behalf of the background poller. The cooldown still applies.
func (s *BalanceRefreshServiceImpl) RefreshSystem(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.wallets.GetForRefresh(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, wallet)
}

func (s *BalanceRefreshServiceImpl) refresh(ctx context.Context, wallet *domain.Wallet) (*domain.Wallet, error) {
	decision := s.limiter.TryAcquire(wallet, s.now())
	if !decision.Allowed {
		return nil, apperror.ErrRateLimited(decision.RetryAfterSeconds)
	}

	snap, err := s.fetcher.Fetch(ctx, wallet.AddressOrKey, wallet.Kind)
	if err != nil {
		s.log.Warn().Err(err).Str("wallet_id", wallet.ID.String()).Msg("balance fetch failed")
		return nil, mapFetchError(err)
	}

	applied, err := s.wallets.SetBalance(ctx, wallet.ID, snap.BalanceBTC(), snap.TxCount, snap.AsOf)
	if err != nil {
		return nil, err
	}

	if applied {
		if wallet.IsExtendedKey() && len(snap.Addresses) > 0 {
			s.storeAddresses(ctx, wallet.ID, snap)
		}
		s.publish(ctx, wallet, snap)
		s.log.Info().
			Str("wallet_id", wallet.ID.String()).
			Str("balance_btc", snap.BalanceBTC().String()).
			Int64("tx_count", snap.TxCount).
			Str("provider", snap.Provider).
			Msg("balance refreshed")
	}

	return s.wallets.GetForRefresh(ctx, wallet.ID)
}

// storeAddresses persists the per-address breakdown. Failures are logged; the balance is already stored.
func (s *BalanceRefreshServiceImpl) storeAddresses(ctx context.Context, walletID uuid.UUID, snap *domain.BalanceSnapshot) {
	rows := make([]domain.WalletAddress, 0, len(snap.Addresses))
	for _, a := range snap.Addresses {
		rows = append(rows, domain.WalletAddress{
			WalletID:        walletID,
			Address:         a.Address,
			Chain:           a.Chain,
			DerivationIndex: a.DerivationIndex,
			DerivationPath:  a.Path,
			BalanceBTC:      domain.SatsToBTC(a.Balance),
			TxCount:         a.TxCount,
			DiscoveredAt:    snap.AsOf,
			UpdatedAt:       snap.AsOf,
		})
	}
	if err := s.addresses.Upsert(ctx, rows); err != nil {
		s.log.Warn().Err(err).Str("wallet_id", walletID.String()).Msg("failed to store derived addresses")
	}
}

func (s *BalanceRefreshServiceImpl) publish(ctx context.Context, wallet *domain.Wallet, snap *domain.BalanceSnapshot) {
	if s.publisher == nil {
		return
	}
	event := domain.BalanceUpdatedEvent{
		WalletID:   wallet.ID,
		Owner:      wallet.Owner,
		BalanceBTC: snap.BalanceBTC(),
		TxCount:    snap.TxCount,
		AsOf:       snap.AsOf,
		Provider:   snap.Provider,
	}
	if err := s.publisher.PublishBalanceUpdated(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("wallet_id", wallet.ID.String()).Msg("failed to publish balance event")
	}
}

// mapFetchError turns a fetcher failure into the caller-facing error. Provider details stay in the wrapped cause.
func mapFetchError(err error) error {
	var fe *ports.FetchError
	if errors.As(err, &fe) {
		switch fe.Kind {
		case ports.FetchRateLimited:
			return apperror.ErrExternalRateLimited(err)
		case ports.FetchTimeout:
			return apperror.ErrTimeout(err)
		case ports.FetchNetwork:
			return apperror.ErrNetwork(err)
		default:
			return apperror.ErrBalanceFetchFailed(err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperror.ErrTimeout(err)
	}
	return apperror.ErrBalanceFetchFailed(err)
}
