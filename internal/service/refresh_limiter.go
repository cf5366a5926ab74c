package service

import (
	"math"
	"time"

	"orangecat-wallets/internal/core/domain"
)

// RefreshDecision is the outcome of a cooldown check.
type RefreshDecision struct {
	Allowed           bool
	RetryAfterSeconds int
}

// RefreshRateLimiter enforces the per-wallet refresh cooldown.
// The cooldown is measured from balance_updated_at, so it holds across instances and restarts.
type RefreshRateLimiter struct {
	cooldown time.Duration
}

// NewRefreshRateLimiter creates a limiter. A non-positive cooldown uses the default.
func NewRefreshRateLimiter(cooldown time.Duration) *RefreshRateLimiter {
	if cooldown <= 0 {
		cooldown = domain.RefreshCooldown
	}
	return &RefreshRateLimiter{cooldown: cooldown}
}

// Cooldown returns the configured cooldown.
func (l *RefreshRateLimiter) Cooldown() time.Duration {
	return l.cooldown
}

// TryAcquire reports whether wallet may be refreshed at now.
// RetryAfterSeconds is rounded up and never exceeds the cooldown.
func (l *RefreshRateLimiter) TryAcquire(wallet *domain.Wallet, now time.Time) RefreshDecision {
	if wallet.BalanceUpdatedAt == nil {
		return RefreshDecision{Allowed: true}
	}
	remaining := l.cooldown - now.Sub(*wallet.BalanceUpdatedAt)
	if remaining <= 0 {
		return RefreshDecision{Allowed: true}
	}
	if remaining > l.cooldown {
		remaining = l.cooldown
	}
	secs := int(math.Ceil(remaining.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return RefreshDecision{RetryAfterSeconds: secs}
}
