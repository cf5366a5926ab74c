package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	// RetryAfter is the number of seconds a caller should wait before retrying.
	// Zero means no hint.
	RetryAfter int   `json:"retry_after_seconds,omitempty"`
	Err        error `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet input & invariants (WAL) ----

// InvalidInput reports a malformed request field. The message is shown to the caller.
func InvalidInput(message string) *AppError {
	return New("WAL_001", message, http.StatusBadRequest)
}

func ErrWalletLimitReached(limit int) *AppError {
	return New("WAL_002", fmt.Sprintf("Wallet limit reached: an owner can have at most %d active wallets", limit), http.StatusConflict)
}

func ErrDuplicateWallet() *AppError {
	return New("WAL_003", "This address or key is already registered for this owner", http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("WAL_004", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrInvalidBalance() *AppError {
	return New("WAL_005", "Balance must not be negative", http.StatusBadRequest)
}

// ---- Authentication & authorization (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New("AUTH_002", "You do not have permission to perform this action", http.StatusForbidden)
}

// ---- Rate limiting (RATE) ----

// ErrRateLimited is returned when a wallet refresh is still cooling down.
func ErrRateLimited(retryAfterSeconds int) *AppError {
	e := New("RATE_001", fmt.Sprintf("Balance was refreshed recently, try again in %d seconds", retryAfterSeconds), http.StatusTooManyRequests)
	e.RetryAfter = retryAfterSeconds
	return e
}

// ErrRateLimitExceeded is the generic per-caller API throttle.
func ErrRateLimitExceeded(retryAfterSeconds int) *AppError {
	e := New("RATE_002", "Too many requests", http.StatusTooManyRequests)
	e.RetryAfter = retryAfterSeconds
	return e
}

// ---- Blockchain providers (CHAIN) ----

func ErrExternalRateLimited(err error) *AppError {
	return Wrap("CHAIN_001", "Blockchain data provider is busy, try again later", http.StatusServiceUnavailable, err)
}

func ErrTimeout(err error) *AppError {
	return Wrap("CHAIN_002", "Blockchain data provider timed out, try again later", http.StatusGatewayTimeout, err)
}

func ErrNetwork(err error) *AppError {
	return Wrap("CHAIN_003", "Blockchain data provider is unreachable, try again later", http.StatusBadGateway, err)
}

func ErrBalanceFetchFailed(err error) *AppError {
	return Wrap("CHAIN_004", "Could not fetch balance, try again later", http.StatusBadGateway, err)
}

// ---- Currency (CUR) ----

func ErrInvalidCurrency(code string) *AppError {
	return New("CUR_001", fmt.Sprintf("Unsupported currency: %q", code), http.StatusBadRequest)
}

func ErrRateUnavailable(err error) *AppError {
	return Wrap("CUR_002", "Exchange rate is currently unavailable", http.StatusServiceUnavailable, err)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrPayloadTooLarge() *AppError {
	return New("SYS_002", "Request body too large", http.StatusRequestEntityTooLarge)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
