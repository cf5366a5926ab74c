package handler

import (
	"time"

	"orangecat-wallets/internal/adapter/http/dto"
	"orangecat-wallets/internal/core/ports"
	"orangecat-wallets/pkg/apperror"
	"orangecat-wallets/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CurrencyHandler exposes the currency registry and the cached BTC rates.
type CurrencyHandler struct {
	ledger ports.CurrencyLedger
	rates  ports.ExchangeRateProvider
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(ledger ports.CurrencyLedger, rates ports.ExchangeRateProvider) *CurrencyHandler {
	return &CurrencyHandler{ledger: ledger, rates: rates}
}

// Currencies handles GET /api/v1/currencies.
func (h *CurrencyHandler) Currencies(c *gin.Context) {
	response.OK(c, h.ledger.Supported())
}

// Rates handles GET /api/v1/rates.
func (h *CurrencyHandler) Rates(c *gin.Context) {
	response.OK(c, h.rates.Snapshot())
}

// Convert handles GET /api/v1/convert?amount=&from=&to=.
func (h *CurrencyHandler) Convert(c *gin.Context) {
	var q dto.ConvertQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.InvalidInput("amount, from and to are required"))
		return
	}

	amount, err := decimal.NewFromString(q.Amount)
	if err != nil || amount.IsNegative() {
		response.Error(c, apperror.InvalidInput("amount must be a non-negative number"))
		return
	}
	from, err := h.ledger.Lookup(q.From)
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := h.ledger.Lookup(q.To)
	if err != nil {
		response.Error(c, err)
		return
	}

	converted, err := h.ledger.Convert(c.Request.Context(), amount, from.Code, to.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ConvertResponse{
		From: dto.MoneyResponse{Amount: amount, Currency: from.Code},
		To:   dto.MoneyResponse{Amount: converted, Currency: to.Code},
		AsOf: time.Now().UTC().Format(time.RFC3339),
	})
}
