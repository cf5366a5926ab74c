package service

import (
	"context"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"

	"github.com/shopspring/decimal"
)

// progressPlaces is the precision of ProgressFraction.
const progressPlaces = 8

var one = decimal.NewFromInt(1)

// GoalEvaluator computes goal progress from a BTC balance. It holds no state and never persists.
type GoalEvaluator struct {
	ledger  ports.CurrencyLedger
	wallets ports.WalletService
}

var _ ports.GoalService = (*GoalEvaluator)(nil)

// NewGoalEvaluator creates a goal evaluator.
func NewGoalEvaluator(ledger ports.CurrencyLedger, wallets ports.WalletService) *GoalEvaluator {
	return &GoalEvaluator{ledger: ledger, wallets: wallets}
}

// Evaluate values balanceBTC in the goal's currency. A nil or non-positive goal is not applicable.
// BTC and SATS goals are evaluated without an exchange rate.
func (e *GoalEvaluator) Evaluate(ctx context.Context, balanceBTC decimal.Decimal, goal *domain.Goal) (*domain.GoalProgress, error) {
	p := &domain.GoalProgress{BalanceBTC: balanceBTC}
	if goal == nil || !goal.Amount.IsPositive() {
		return p, nil
	}

	currency, err := e.ledger.Lookup(goal.Currency)
	if err != nil {
		return nil, err
	}

	value, rate, err := e.ledger.Value(ctx, balanceBTC, currency.Code)
	if err != nil {
		return nil, err
	}

	amount := goal.Amount
	fraction := value.DivRound(amount, progressPlaces)
	if fraction.GreaterThan(one) {
		fraction = one
	}

	p.Applicable = true
	p.GoalAmount = &amount
	p.GoalCurrency = currency.Code
	p.CurrentValue = &value
	p.ProgressFraction = &fraction
	p.GoalReached = value.GreaterThanOrEqual(amount)
	p.RateUsed = rate
	return p, nil
}

// EvaluateWallet evaluates a wallet against its own goal.
func (e *GoalEvaluator) EvaluateWallet(ctx context.Context, wallet *domain.Wallet) (*domain.GoalProgress, error) {
	return e.Evaluate(ctx, wallet.BalanceBTC, wallet.Goal())
}

// EvaluateOwner sums the owner's visible wallets and evaluates the total.
// When goal is nil the primary wallet's goal is used.
func (e *GoalEvaluator) EvaluateOwner(ctx context.Context, caller domain.Caller, owner domain.Owner, goal *domain.Goal) (*domain.GoalProgress, error) {
	wallets, err := e.wallets.List(ctx, caller, owner)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for i := range wallets {
		total = total.Add(wallets[i].BalanceBTC)
		if goal == nil && wallets[i].IsPrimary {
			goal = wallets[i].Goal()
		}
	}
	return e.Evaluate(ctx, total, goal)
}
