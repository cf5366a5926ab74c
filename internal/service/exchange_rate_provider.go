package service

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const rateRefreshKey = "btc-rates"

// rateTable is an immutable set of rates. A refresh builds a new table and swaps the pointer.
type rateTable struct {
	rates map[string]domain.ExchangeRate
}

// ExchangeRateProvider caches BTC prices for the fiat currencies.
// Readers never block on a fresh table; a stale entry is served while a background refresh runs.
type ExchangeRateProvider struct {
	source         ports.ExchangeRateSource
	store          ports.RateSnapshotStore
	quotes         []string
	ttl            time.Duration
	refreshTimeout time.Duration

	table      atomic.Pointer[rateTable]
	refreshing atomic.Bool
	group      singleflight.Group

	now func() time.Time
	log zerolog.Logger
}

var _ ports.ExchangeRateProvider = (*ExchangeRateProvider)(nil)

// NewExchangeRateProvider creates a provider. store may be nil when Redis is disabled.
func NewExchangeRateProvider(
	source ports.ExchangeRateSource,
	store ports.RateSnapshotStore,
	quotes []string,
	ttl time.Duration,
	refreshTimeout time.Duration,
	log zerolog.Logger,
) *ExchangeRateProvider {
	normalized := make([]string, 0, len(quotes))
	for _, q := range quotes {
		normalized = append(normalized, domain.NormalizeCurrencyCode(q))
	}
	p := &ExchangeRateProvider{
		source:         source,
		store:          store,
		quotes:         normalized,
		ttl:            ttl,
		refreshTimeout: refreshTimeout,
		now:            time.Now,
		log:            log,
	}
	p.table.Store(&rateTable{rates: map[string]domain.ExchangeRate{}})
	return p
}

// Rate returns the cached BTC price in quote.
// An absent rate triggers one synchronous refresh; a stale one triggers a background refresh.
func (p *ExchangeRateProvider) Rate(ctx context.Context, quote string) (domain.ExchangeRate, error) {
	quote = domain.NormalizeCurrencyCode(quote)

	if r, ok := p.table.Load().rates[quote]; ok {
		if r.IsStale(p.ttl, p.now()) {
			p.refreshInBackground()
		}
		return r, nil
	}

	if err := p.refreshShared(ctx); err != nil {
		p.log.Warn().Err(err).Str("quote", quote).Msg("rate refresh failed")
	}
	if r, ok := p.table.Load().rates[quote]; ok {
		return r, nil
	}
	return domain.ExchangeRate{}, fmt.Errorf("%w: BTC/%s", domain.ErrRateUnavailable, quote)
}

// Snapshot returns every cached rate sorted by quote, flagged with its freshness.
func (p *ExchangeRateProvider) Snapshot() []ports.RateQuote {
	t := p.table.Load()
	now := p.now()
	out := make([]ports.RateQuote, 0, len(t.rates))
	for _, r := range t.rates {
		out = append(out, ports.RateQuote{ExchangeRate: r, Stale: r.IsStale(p.ttl, now)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quote < out[j].Quote })
	return out
}

// Refresh reloads the table, sharing the work with any refresh already in flight.
func (p *ExchangeRateProvider) Refresh(ctx context.Context) error {
	return p.refreshShared(ctx)
}

// Run refreshes the table every interval until ctx is canceled.
func (p *ExchangeRateProvider) Run(ctx context.Context, interval time.Duration) {
	if err := p.Refresh(ctx); err != nil {
		p.log.Warn().Err(err).Msg("initial rate refresh failed")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Refresh(ctx); err != nil {
				p.log.Warn().Err(err).Msg("periodic rate refresh failed")
			}
		}
	}
}

// refreshShared joins the in-flight refresh. The refresh itself runs on a detached
// context so one canceled caller does not fail the others.
func (p *ExchangeRateProvider) refreshShared(ctx context.Context) error {
	ch := p.group.DoChan(rateRefreshKey, func() (interface{}, error) {
		rctx, cancel := context.WithTimeout(context.Background(), p.refreshTimeout)
		defer cancel()
		return nil, p.load(rctx)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *ExchangeRateProvider) refreshInBackground() {
	if !p.refreshing.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer p.refreshing.Store(false)
		if err := p.refreshShared(context.Background()); err != nil {
			p.log.Warn().Err(err).Msg("background rate refresh failed")
		}
	}()
}

// load prefers a fresh shared snapshot, then the upstream source.
// On failure the current table is kept.
func (p *ExchangeRateProvider) load(ctx context.Context) error {
	if p.store != nil {
		rates, err := p.store.Load(ctx)
		if err != nil {
			p.log.Warn().Err(err).Msg("loading shared rate snapshot")
		} else if p.complete(rates) {
			p.swap(rates)
			p.log.Debug().Int("rates", len(rates)).Msg("rates loaded from shared snapshot")
			return nil
		}
	}

	prices, err := p.source.FetchBTCRates(ctx, p.quotes)
	if err != nil {
		return fmt.Errorf("fetching rates from %s: %w", p.source.Name(), err)
	}

	observedAt := p.now().UTC()
	fresh := make([]domain.ExchangeRate, 0, len(prices))
	for quote, price := range prices {
		if !price.IsPositive() {
			continue
		}
		fresh = append(fresh, domain.ExchangeRate{
			Base:       domain.BTC,
			Quote:      domain.NormalizeCurrencyCode(quote),
			Rate:       price,
			ObservedAt: observedAt,
			Source:     p.source.Name(),
		})
	}
	if len(fresh) == 0 {
		return fmt.Errorf("%s returned no usable rates", p.source.Name())
	}
	p.swap(fresh)
	p.log.Debug().Int("rates", len(fresh)).Str("source", p.source.Name()).Msg("rates refreshed")

	if p.store != nil {
		if err := p.store.Save(ctx, fresh, p.ttl); err != nil {
			p.log.Warn().Err(err).Msg("saving shared rate snapshot")
		}
	}
	return nil
}

// complete reports whether rates covers every quote with a fresh value.
func (p *ExchangeRateProvider) complete(rates []domain.ExchangeRate) bool {
	if len(rates) == 0 {
		return false
	}
	now := p.now()
	have := make(map[string]bool, len(rates))
	for _, r := range rates {
		if !r.IsStale(p.ttl, now) && r.Rate.IsPositive() {
			have[r.Quote] = true
		}
	}
	for _, q := range p.quotes {
		if !have[q] {
			return false
		}
	}
	return true
}

// swap merges rates over the current table. Quotes missing from rates keep their old value.
func (p *ExchangeRateProvider) swap(rates []domain.ExchangeRate) {
	old := p.table.Load()
	next := make(map[string]domain.ExchangeRate, len(old.rates)+len(rates))
	for k, v := range old.rates {
		next[k] = v
	}
	for _, r := range rates {
		next[r.Quote] = r
	}
	p.table.Store(&rateTable{rates: next})
}
