package ports

import (
	"errors"
	"fmt"
)

// FetchErrorKind classifies why a balance fetch attempt failed.
type FetchErrorKind string

const (
	FetchTimeout     FetchErrorKind = "timeout"
	FetchNetwork     FetchErrorKind = "network"
	FetchRateLimited FetchErrorKind = "rate_limited"
	FetchBadStatus   FetchErrorKind = "bad_status"
	FetchBadResponse FetchErrorKind = "bad_response"
	FetchUnsupported FetchErrorKind = "unsupported"
)

// ErrBalanceFetchFailed is matched by every *FetchError.
var ErrBalanceFetchFailed = errors.New("balance fetch failed")

// FetchError is returned by a BalanceFetcher once every eligible provider has failed.
// Kind is the classification of the last attempt.
type FetchError struct {
	Kind     FetchErrorKind
	Provider string
	Attempts int
	Cause    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("balance fetch failed after %d attempt(s), last provider %q (%s): %v",
		e.Attempts, e.Provider, e.Kind, e.Cause)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrBalanceFetchFailed, e.Cause}
}
