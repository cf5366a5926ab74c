package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"orangecat-wallets/internal/core/ports"
	"orangecat-wallets/pkg/apperror"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// BalancePoller refreshes stale wallets in the background through the same path as user refreshes.
type BalancePoller struct {
	walletRepo  ports.WalletRepository
	refresher   ports.BalanceRefreshService
	interval    time.Duration
	staleAfter  time.Duration
	batchSize   int
	concurrency int
	log         zerolog.Logger
	now         func() time.Time
}

// PollResult summarizes one poll cycle.
type PollResult struct {
	Candidates int
	Refreshed  int
	Skipped    int
	Failed     int
}

// NewBalancePoller creates a poller.
func NewBalancePoller(
	walletRepo ports.WalletRepository,
	refresher ports.BalanceRefreshService,
	interval, staleAfter time.Duration,
	batchSize, concurrency int,
	log zerolog.Logger,
) *BalancePoller {
	if concurrency <= 0 {
		concurrency = 1
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &BalancePoller{
		walletRepo:  walletRepo,
		refresher:   refresher,
		interval:    interval,
		staleAfter:  staleAfter,
		batchSize:   batchSize,
		concurrency: concurrency,
		log:         log,
		now:         time.Now,
	}
}

// Run polls every interval until ctx is canceled.
func (p *BalancePoller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if _, err := p.PollOnce(ctx); err != nil && ctx.Err() == nil {
			p.log.Error().Err(err).Msg("poll cycle failed")
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// PollOnce refreshes one batch of the stalest wallets. Per-wallet failures are counted, not returned.
func (p *BalancePoller) PollOnce(ctx context.Context) (PollResult, error) {
	var res PollResult

	wallets, err := p.walletRepo.ListStale(ctx, p.now().Add(-p.staleAfter), p.batchSize)
	if err != nil {
		return res, err
	}
	res.Candidates = len(wallets)
	if len(wallets) == 0 {
		return res, nil
	}

	var refreshed, skipped, failed atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i := range wallets {
		w := wallets[i]
		g.Go(func() error {
			_, err := p.refresher.RefreshSystem(gctx, w.ID)
			switch {
			case err == nil:
				refreshed.Add(1)
			case errors.Is(err, apperror.ErrRateLimited(0)), errors.Is(err, apperror.ErrNotFound("")):
				skipped.Add(1)
			default:
				failed.Add(1)
				p.log.Warn().Err(err).Str("wallet_id", w.ID.String()).Msg("background refresh failed")
			}
			return nil
		})
	}
	_ = g.Wait()

	res.Refreshed = int(refreshed.Load())
	res.Skipped = int(skipped.Load())
	res.Failed = int(failed.Load())

	p.log.Info().
		Int("candidates", res.Candidates).
		Int("refreshed", res.Refreshed).
		Int("skipped", res.Skipped).
		Int("failed", res.Failed).
		Msg("poll cycle complete")
	return res, nil
}
