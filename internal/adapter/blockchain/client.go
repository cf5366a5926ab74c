package blockchain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"orangecat-wallets/config"
	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"
	"orangecat-wallets/pkg/logger"

	"github.com/rs/zerolog"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultTotalTimeout   = 20 * time.Second
)

// Client fetches balances from an ordered list of providers, failing over on
// every classified error. It implements ports.BalanceFetcher.
type Client struct {
	providers      []Provider
	requestTimeout time.Duration
	totalTimeout   time.Duration
	log            zerolog.Logger
}

var _ ports.BalanceFetcher = (*Client)(nil)

// NewClient creates a client over providers in failover order.
func NewClient(providers []Provider, requestTimeout, totalTimeout time.Duration, log zerolog.Logger) *Client {
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	if totalTimeout <= 0 {
		totalTimeout = defaultTotalTimeout
	}
	return &Client{
		providers:      providers,
		requestTimeout: requestTimeout,
		totalTimeout:   totalTimeout,
		log:            logger.Component(log, "blockchain"),
	}
}

// NewFromConfig builds the providers listed in cfg.
func NewFromConfig(cfg config.BlockchainConfig, log zerolog.Logger) (*Client, error) {
	httpClient := &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: 8,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	providers := make([]Provider, 0, len(cfg.Providers))
	for _, pc := range cfg.Providers {
		switch pc.Kind {
		case "esplora":
			providers = append(providers, NewEsplora(pc.Name, pc.BaseURL, httpClient))
		case "blockbook":
			providers = append(providers, NewBlockbook(pc.Name, pc.BaseURL, httpClient))
		default:
			return nil, fmt.Errorf("blockchain provider %q: unknown kind %q", pc.Name, pc.Kind)
		}
	}
	if len(providers) == 0 {
		return nil, errors.New("no blockchain providers configured")
	}
	return NewClient(providers, cfg.RequestTimeout, cfg.TotalTimeout, log), nil
}

// Fetch tries each provider supporting kind in order, each attempt bounded by
// the request timeout and the whole chain by the total timeout. It returns the
// first success. Earlier failures are only logged. When every provider fails
// the result is a *FetchError carrying the last attempt's classification.
// Cancellation of ctx aborts immediately with ctx.Err().
func (c *Client) Fetch(ctx context.Context, addressOrKey string, kind domain.WalletKind) (*domain.BalanceSnapshot, error) {
	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, c.totalTimeout)
	defer cancel()

	var (
		attempts int
		last     *ProviderError
	)
	for _, p := range c.providers {
		if !p.Supports(kind) {
			continue
		}
		if err := parent.Err(); err != nil {
			return nil, err
		}
		if ctx.Err() != nil {
			last = &ProviderError{Provider: p.Name(), Kind: KindTimeout, Err: ctx.Err()}
			break
		}

		attempts++
		snapshot, err := c.attempt(ctx, p, addressOrKey, kind)
		if err == nil {
			if attempts > 1 {
				c.log.Info().Str("provider", p.Name()).Int("attempt", attempts).Msg("Balance fetched after failover")
			}
			return snapshot, nil
		}
		if perr := parent.Err(); perr != nil {
			return nil, perr
		}

		var pe *ProviderError
		if !errors.As(err, &pe) {
			pe = &ProviderError{Provider: p.Name(), Kind: KindNetwork, Err: err}
		}
		last = pe
		c.log.Warn().
			Str("provider", p.Name()).
			Str("kind", string(pe.Kind)).
			Int("status", pe.StatusCode).
			Err(pe.Err).
			Msg("Balance provider attempt failed")
	}

	if last == nil {
		return nil, &FetchError{
			Kind:  KindUnsupported,
			Cause: fmt.Errorf("no provider supports wallet kind %q", kind),
		}
	}
	return nil, &FetchError{Kind: last.Kind, Provider: last.Provider, Attempts: attempts, Cause: last}
}

func (c *Client) attempt(ctx context.Context, p Provider, addressOrKey string, kind domain.WalletKind) (*domain.BalanceSnapshot, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	snapshot, err := p.Fetch(attemptCtx, addressOrKey, kind)
	if err != nil {
		return nil, err
	}
	if snapshot.Provider == "" {
		snapshot.Provider = p.Name()
	}
	return snapshot, nil
}
