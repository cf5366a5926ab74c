package blockchain

import (
	"fmt"

	"orangecat-wallets/internal/core/ports"
)

// ErrorKind classifies why a provider attempt failed.
type ErrorKind = ports.FetchErrorKind

const (
	KindTimeout     = ports.FetchTimeout
	KindNetwork     = ports.FetchNetwork
	KindRateLimited = ports.FetchRateLimited
	KindBadStatus   = ports.FetchBadStatus
	KindBadResponse = ports.FetchBadResponse
	KindUnsupported = ports.FetchUnsupported
)

// FetchError is what Client.Fetch returns when every provider failed.
type FetchError = ports.FetchError

// ErrBalanceFetchFailed is matched by every *FetchError.
var ErrBalanceFetchFailed = ports.ErrBalanceFetchFailed

// ProviderError is one failed attempt against one provider.
type ProviderError struct {
	Provider   string
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
