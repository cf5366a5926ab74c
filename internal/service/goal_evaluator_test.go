package service

import (
	"context"
	"fmt"
	"testing"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type goalTestDeps struct {
	eval    *GoalEvaluator
	rates   *mocks.MockRateSource
	wallets *mocks.MockWalletService
	ctrl    *gomock.Controller
}

func setupGoalEvaluator(t *testing.T) *goalTestDeps {
	ctrl := gomock.NewController(t)
	d := &goalTestDeps{
		rates:   mocks.NewMockRateSource(ctrl),
		wallets: mocks.NewMockWalletService(ctrl),
		ctrl:    ctrl,
	}
	d.eval = NewGoalEvaluator(NewCurrencyLedger(d.rates), d.wallets)
	return d
}

func TestGoalEvaluator_NoGoal(t *testing.T) {
	d := setupGoalEvaluator(t)
	defer d.ctrl.Finish()

	for _, goal := range []*domain.Goal{nil, {Amount: decimal.Zero, Currency: "USD"}} {
		p, err := d.eval.Evaluate(context.Background(), dec("0.5"), goal)
		require.NoError(t, err)
		assert.False(t, p.Applicable)
		assert.Nil(t, p.ProgressFraction)
		assert.Nil(t, p.CurrentValue)
		assert.False(t, p.GoalReached)
		assertDecimal(t, "0.5", p.BalanceBTC)
	}
}

// No rate expectations are set: BTC and SATS goals must not consult rates.
func TestGoalEvaluator_BitcoinGoals(t *testing.T) {
	tests := []struct {
		name     string
		balance  string
		goal     domain.Goal
		value    string
		fraction string
		reached  bool
	}{
		{"quarter of a bitcoin", "0.25", domain.Goal{Amount: dec("1"), Currency: "BTC"}, "0.25", "0.25", false},
		{"sats goal met exactly", "0.5", domain.Goal{Amount: dec("50000000"), Currency: "SATS"}, "50000000", "1", true},
		{"overshoot is clamped", "2", domain.Goal{Amount: dec("1"), Currency: "btc"}, "2", "1", true},
		{"empty wallet", "0", domain.Goal{Amount: dec("0.1"), Currency: "BTC"}, "0", "0", false},
		{"one sat short", "0.09999999", domain.Goal{Amount: dec("0.1"), Currency: "BTC"}, "0.09999999", "0.9999999", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupGoalEvaluator(t)
			defer d.ctrl.Finish()

			goal := tt.goal
			p, err := d.eval.Evaluate(context.Background(), dec(tt.balance), &goal)
			require.NoError(t, err)
			assert.True(t, p.Applicable)
			assertDecimal(t, tt.value, *p.CurrentValue)
			assertDecimal(t, tt.fraction, *p.ProgressFraction)
			assert.Equal(t, tt.reached, p.GoalReached)
			assert.Nil(t, p.RateUsed)
		})
	}
}

func TestGoalEvaluator_FiatGoal(t *testing.T) {
	d := setupGoalEvaluator(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.rates.EXPECT().Rate(ctx, "USD").Return(btcRate("USD", "50000"), nil)

	p, err := d.eval.Evaluate(ctx, dec("0.01"), &domain.Goal{Amount: dec("1000"), Currency: "usd"})
	require.NoError(t, err)
	assert.True(t, p.Applicable)
	assert.Equal(t, "USD", p.GoalCurrency)
	assertDecimal(t, "500", *p.CurrentValue)
	assertDecimal(t, "0.5", *p.ProgressFraction)
	assert.False(t, p.GoalReached)
	require.NotNil(t, p.RateUsed)
	assertDecimal(t, "50000", p.RateUsed.Rate)
}

// A fiat goal can be reached by the rate moving while the balance stays put.
func TestGoalEvaluator_FiatGoalReachedByAppreciation(t *testing.T) {
	d := setupGoalEvaluator(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	balance := dec("0.1")
	goal := &domain.Goal{Amount: dec("10000"), Currency: "USD"}

	gomock.InOrder(
		d.rates.EXPECT().Rate(ctx, "USD").Return(btcRate("USD", "50000"), nil),
		d.rates.EXPECT().Rate(ctx, "USD").Return(btcRate("USD", "120000"), nil),
	)

	before, err := d.eval.Evaluate(ctx, balance, goal)
	require.NoError(t, err)
	assertDecimal(t, "5000", *before.CurrentValue)
	assertDecimal(t, "0.5", *before.ProgressFraction)
	assert.False(t, before.GoalReached)

	after, err := d.eval.Evaluate(ctx, balance, goal)
	require.NoError(t, err)
	assertDecimal(t, "12000", *after.CurrentValue)
	assertDecimal(t, "1", *after.ProgressFraction)
	assert.True(t, after.GoalReached)
	assertDecimal(t, "0.1", after.BalanceBTC)
}

func TestGoalEvaluator_EmptyWalletAgainstFiatGoal(t *testing.T) {
	d := setupGoalEvaluator(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.rates.EXPECT().Rate(ctx, "USD").Return(btcRate("USD", "60000"), nil)

	p, err := d.eval.Evaluate(ctx, decimal.Zero, &domain.Goal{Amount: dec("1200"), Currency: "USD"})
	require.NoError(t, err)
	assert.True(t, p.Applicable)
	assertDecimal(t, "0", *p.CurrentValue)
	assertDecimal(t, "0", *p.ProgressFraction)
	assert.False(t, p.GoalReached)
}

func TestGoalEvaluator_RateUnavailable(t *testing.T) {
	d := setupGoalEvaluator(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.rates.EXPECT().Rate(ctx, "EUR").
		Return(domain.ExchangeRate{}, fmt.Errorf("%w: BTC/EUR", domain.ErrRateUnavailable))

	_, err := d.eval.Evaluate(ctx, dec("1"), &domain.Goal{Amount: dec("100"), Currency: "EUR"})
	assertAppError(t, err, "CUR_002")
}

func TestGoalEvaluator_UnknownCurrency(t *testing.T) {
	d := setupGoalEvaluator(t)
	defer d.ctrl.Finish()

	_, err := d.eval.Evaluate(context.Background(), dec("1"), &domain.Goal{Amount: dec("100"), Currency: "XAU"})
	assertAppError(t, err, "CUR_001")
}

func TestGoalEvaluator_EvaluateWallet(t *testing.T) {
	d := setupGoalEvaluator(t)
	defer d.ctrl.Finish()

	w := existingWallet(testOwner())
	w.BalanceBTC = dec("0.003")
	w.GoalAmount = decimal.NewNullDecimal(dec("300000"))
	w.GoalCurrency = "SATS"

	p, err := d.eval.EvaluateWallet(context.Background(), w)
	require.NoError(t, err)
	assert.True(t, p.GoalReached)
	assertDecimal(t, "1", *p.ProgressFraction)
}

func TestGoalEvaluator_EvaluateOwner(t *testing.T) {
	ctx := context.Background()
	owner := testOwner()
	caller := testCaller()

	primary := *existingWallet(owner)
	primary.IsPrimary = true
	primary.BalanceBTC = dec("0.2")
	primary.GoalAmount = decimal.NewNullDecimal(dec("1"))
	primary.GoalCurrency = "BTC"

	other := *existingWallet(owner)
	other.BalanceBTC = dec("0.3")

	t.Run("uses primary goal", func(t *testing.T) {
		d := setupGoalEvaluator(t)
		defer d.ctrl.Finish()
		d.wallets.EXPECT().List(ctx, caller, owner).Return([]domain.Wallet{primary, other}, nil)

		p, err := d.eval.EvaluateOwner(ctx, caller, owner, nil)
		require.NoError(t, err)
		assertDecimal(t, "0.5", p.BalanceBTC)
		assertDecimal(t, "0.5", *p.ProgressFraction)
	})

	t.Run("explicit goal wins", func(t *testing.T) {
		d := setupGoalEvaluator(t)
		defer d.ctrl.Finish()
		d.wallets.EXPECT().List(ctx, caller, owner).Return([]domain.Wallet{primary, other}, nil)

		p, err := d.eval.EvaluateOwner(ctx, caller, owner, &domain.Goal{Amount: dec("0.25"), Currency: "BTC"})
		require.NoError(t, err)
		assert.True(t, p.GoalReached)
	})

	t.Run("no wallets", func(t *testing.T) {
		d := setupGoalEvaluator(t)
		defer d.ctrl.Finish()
		d.wallets.EXPECT().List(ctx, caller, owner).Return([]domain.Wallet{}, nil)

		p, err := d.eval.EvaluateOwner(ctx, caller, owner, nil)
		require.NoError(t, err)
		assert.False(t, p.Applicable)
		assert.True(t, p.BalanceBTC.IsZero())
	})
}
