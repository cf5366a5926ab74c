package handler

import (
	"orangecat-wallets/internal/adapter/http/dto"
	"orangecat-wallets/internal/adapter/http/middleware"
	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"
	"orangecat-wallets/pkg/apperror"
	"orangecat-wallets/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProgressHandler serves goal progress for single wallets and whole owners.
type ProgressHandler struct {
	wallets ports.WalletService
	goals   ports.GoalService
	ledger  ports.CurrencyLedger
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(wallets ports.WalletService, goals ports.GoalService, ledger ports.CurrencyLedger) *ProgressHandler {
	return &ProgressHandler{wallets: wallets, goals: goals, ledger: ledger}
}

// WalletProgress handles GET /api/v1/wallets/:id/progress?currency=.
// The optional currency re-expresses the balance; the goal keeps its own currency.
func (h *ProgressHandler) WalletProgress(c *gin.Context) {
	id, ok := walletID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	wallet, err := h.wallets.Get(ctx, middleware.CallerFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	progress, err := h.goals.EvaluateWallet(ctx, wallet)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.WalletProgressResponse{WalletID: wallet.ID.String(), Progress: progress}
	if code := c.Query("currency"); code != "" {
		currency, err := h.ledger.Lookup(code)
		if err != nil {
			response.Error(c, err)
			return
		}
		value, _, err := h.ledger.Value(ctx, wallet.BalanceBTC, currency.Code)
		if err != nil {
			response.Error(c, err)
			return
		}
		resp.Value = &dto.MoneyResponse{Amount: value, Currency: currency.Code}
	}
	response.OK(c, resp)
}

// OwnerProgress handles GET /api/v1/owners/:type/:id/progress.
// Without goal_amount the owner's primary wallet goal is used.
func (h *ProgressHandler) OwnerProgress(c *gin.Context) {
	owner, err := parseOwner(c.Param("type"), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var q dto.OwnerProgressQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.InvalidInput("goal_amount must be a number and goal_currency a currency code"))
		return
	}

	goal, err := queryGoal(q)
	if err != nil {
		response.Error(c, err)
		return
	}

	progress, err := h.goals.EvaluateOwner(c.Request.Context(), middleware.CallerFrom(c), owner, goal)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, progress)
}

func queryGoal(q dto.OwnerProgressQuery) (*domain.Goal, error) {
	if q.GoalAmount == "" {
		if q.GoalCurrency != "" {
			return nil, apperror.InvalidInput("goal_currency requires goal_amount")
		}
		return nil, nil
	}
	amount, err := decimal.NewFromString(q.GoalAmount)
	if err != nil || !amount.IsPositive() {
		return nil, apperror.InvalidInput("goal_amount must be a positive number")
	}
	currency := domain.NormalizeCurrencyCode(q.GoalCurrency)
	if currency == "" {
		currency = domain.USD
	}
	return &domain.Goal{Amount: amount, Currency: currency}, nil
}
