package blockchain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"orangecat-wallets/internal/core/domain"
)

// maxResponseBytes bounds how much of an indexer response is decoded.
const maxResponseBytes = 4 << 20

const userAgent = "orangecat-wallets/1.0"

// Provider is one blockchain indexer backend.
type Provider interface {
	Name() string
	Supports(kind domain.WalletKind) bool
	Fetch(ctx context.Context, addressOrKey string, kind domain.WalletKind) (*domain.BalanceSnapshot, error)
}

// baseProvider holds what every HTTP indexer needs.
type baseProvider struct {
	name    string
	baseURL string
	client  *http.Client
	now     func() time.Time
}

func newBaseProvider(name, baseURL string, client *http.Client) baseProvider {
	if client == nil {
		client = &http.Client{}
	}
	return baseProvider{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		now:     time.Now,
	}
}

func (p *baseProvider) Name() string { return p.name }

func (p *baseProvider) fail(kind ErrorKind, status int, err error) *ProviderError {
	return &ProviderError{Provider: p.name, Kind: kind, StatusCode: status, Err: err}
}

// getJSON issues a GET and decodes the body into out, classifying every failure.
// Cancellation of ctx by the caller is returned unclassified.
func (p *baseProvider) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := p.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return p.fail(KindNetwork, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return p.classifyTransport(ctx, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return p.fail(KindRateLimited, resp.StatusCode, errors.New("provider rate limit"))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return p.fail(KindBadStatus, resp.StatusCode, errors.New(http.StatusText(resp.StatusCode)))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		if ctx.Err() != nil {
			return p.classifyTransport(ctx, err)
		}
		return p.fail(KindBadResponse, resp.StatusCode, fmt.Errorf("decode body: %w", err))
	}
	return nil
}

func (p *baseProvider) classifyTransport(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return p.fail(KindTimeout, 0, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return p.fail(KindTimeout, 0, err)
	}
	return p.fail(KindNetwork, 0, err)
}
