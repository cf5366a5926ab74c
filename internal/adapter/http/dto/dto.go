package dto

import (
	"time"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"

	"github.com/shopspring/decimal"
)

// CreateWalletRequest is the request body for POST /wallets.
type CreateWalletRequest struct {
	OwnerType    string           `json:"owner_type" binding:"required,owner_type"`
	OwnerID      string           `json:"owner_id" binding:"required,uuid"`
	AddressOrKey string           `json:"address_or_key" binding:"required,max=200"`
	Label        string           `json:"label" binding:"required,max=400"`
	Description  string           `json:"description" binding:"max=2000"`
	Category     string           `json:"category" binding:"omitempty,wallet_category"`
	CategoryIcon string           `json:"category_icon" binding:"max=16"`
	GoalAmount   *decimal.Decimal `json:"goal_amount,omitempty"`
	GoalCurrency string           `json:"goal_currency" binding:"omitempty,currency_code"`
}

// UpdateWalletRequest is the request body for PATCH /wallets/:id. Absent fields are left unchanged.
type UpdateWalletRequest struct {
	Label        *string          `json:"label,omitempty" binding:"omitempty,max=400"`
	Description  *string          `json:"description,omitempty" binding:"omitempty,max=2000"`
	Category     *string          `json:"category,omitempty" binding:"omitempty,wallet_category"`
	CategoryIcon *string          `json:"category_icon,omitempty" binding:"omitempty,max=16"`
	GoalAmount   *decimal.Decimal `json:"goal_amount,omitempty"`
	GoalCurrency *string          `json:"goal_currency,omitempty" binding:"omitempty,currency_code"`
	ClearGoal    bool             `json:"clear_goal"`
	DisplayOrder *int             `json:"display_order,omitempty" binding:"omitempty,min=0"`
	IsPrimary    *bool            `json:"is_primary,omitempty"`
}

// ToInput converts the request to the service input.
func (r *UpdateWalletRequest) ToInput() ports.UpdateWalletInput {
	return ports.UpdateWalletInput{
		Label:        r.Label,
		Description:  r.Description,
		Category:     r.Category,
		CategoryIcon: r.CategoryIcon,
		GoalAmount:   r.GoalAmount,
		GoalCurrency: r.GoalCurrency,
		ClearGoal:    r.ClearGoal,
		DisplayOrder: r.DisplayOrder,
		IsPrimary:    r.IsPrimary,
	}
}

// ListWalletsQuery selects whose wallets to list.
type ListWalletsQuery struct {
	OwnerType string `form:"owner_type" binding:"required,owner_type"`
	OwnerID   string `form:"owner_id" binding:"required,uuid"`
}

// OwnerProgressQuery overrides the goal used for owner aggregate progress.
type OwnerProgressQuery struct {
	GoalAmount   string `form:"goal_amount" binding:"omitempty,numeric"`
	GoalCurrency string `form:"goal_currency" binding:"omitempty,currency_code"`
}

// ConvertQuery is the query for GET /convert.
type ConvertQuery struct {
	Amount string `form:"amount" binding:"required,numeric"`
	From   string `form:"from" binding:"required,currency_code"`
	To     string `form:"to" binding:"required,currency_code"`
}

// WalletResponse is the public shape of a wallet.
type WalletResponse struct {
	ID               string               `json:"id"`
	OwnerType        string               `json:"owner_type"`
	OwnerID          string               `json:"owner_id"`
	AddressOrKey     string               `json:"address_or_key"`
	Kind             string               `json:"kind"`
	KeyVariant       string               `json:"key_variant,omitempty"`
	Label            string               `json:"label"`
	Description      string               `json:"description,omitempty"`
	Category         string               `json:"category"`
	CategoryIcon     string               `json:"category_icon"`
	GoalAmount       *decimal.Decimal     `json:"goal_amount,omitempty"`
	GoalCurrency     string               `json:"goal_currency,omitempty"`
	BalanceBTC       decimal.Decimal      `json:"balance_btc"`
	BalanceSats      int64                `json:"balance_sats"`
	TxCount          int64                `json:"tx_count"`
	BalanceUpdatedAt *string              `json:"balance_updated_at,omitempty"`
	IsPrimary        bool                 `json:"is_primary"`
	DisplayOrder     int                  `json:"display_order"`
	CreatedAt        string               `json:"created_at"`
	UpdatedAt        string               `json:"updated_at"`
	Progress         *domain.GoalProgress `json:"progress,omitempty"`
}

// NewWalletResponse converts a domain wallet. progress may be nil.
func NewWalletResponse(w *domain.Wallet, progress *domain.GoalProgress) WalletResponse {
	resp := WalletResponse{
		ID:           w.ID.String(),
		OwnerType:    string(w.Owner.Type),
		OwnerID:      w.Owner.ID.String(),
		AddressOrKey: w.AddressOrKey,
		Kind:         string(w.Kind),
		KeyVariant:   w.KeyVariant,
		Label:        w.Label,
		Description:  w.Description,
		Category:     string(w.Category),
		CategoryIcon: w.CategoryIcon,
		BalanceBTC:   w.BalanceBTC,
		BalanceSats:  w.BalanceBTC.Shift(8).IntPart(),
		TxCount:      w.TxCount,
		IsPrimary:    w.IsPrimary,
		DisplayOrder: w.DisplayOrder,
		CreatedAt:    w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    w.UpdatedAt.Format(time.RFC3339),
		Progress:     progress,
	}
	if w.GoalAmount.Valid {
		amount := w.GoalAmount.Decimal
		resp.GoalAmount = &amount
		resp.GoalCurrency = w.GoalCurrency
	}
	if w.BalanceUpdatedAt != nil {
		s := w.BalanceUpdatedAt.Format(time.RFC3339)
		resp.BalanceUpdatedAt = &s
	}
	return resp
}

// WalletProgressResponse is a wallet's goal progress, with its balance optionally re-expressed.
type WalletProgressResponse struct {
	WalletID string               `json:"wallet_id"`
	Progress *domain.GoalProgress `json:"progress"`
	Value    *MoneyResponse       `json:"value,omitempty"`
}

// MoneyResponse is an amount in a named currency.
type MoneyResponse struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// ConvertResponse is the result of GET /convert.
type ConvertResponse struct {
	From MoneyResponse `json:"from"`
	To   MoneyResponse `json:"to"`
	AsOf string        `json:"as_of"`
}

// DeleteWalletResponse confirms a soft delete.
type DeleteWalletResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
