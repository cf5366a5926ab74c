package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"orangecat-wallets/internal/adapter/http/dto"
	"orangecat-wallets/internal/adapter/http/middleware"
	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"
	"orangecat-wallets/pkg/apperror"
	"orangecat-wallets/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WalletHandler handles wallet CRUD and refresh endpoints.
type WalletHandler struct {
	wallets   ports.WalletService
	refresher ports.BalanceRefreshService
	goals     ports.GoalService
	log       zerolog.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(wallets ports.WalletService, refresher ports.BalanceRefreshService, goals ports.GoalService, log zerolog.Logger) *WalletHandler {
	return &WalletHandler{
		wallets:   wallets,
		refresher: refresher,
		goals:     goals,
		log:       log,
	}
}

// List handles GET /api/v1/wallets?owner_type=&owner_id=.
func (h *WalletHandler) List(c *gin.Context) {
	var q dto.ListWalletsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.InvalidInput("owner_type and owner_id are required"))
		return
	}
	owner, err := parseOwner(q.OwnerType, q.OwnerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	wallets, err := h.wallets.List(c.Request.Context(), middleware.CallerFrom(c), owner)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.WalletResponse, 0, len(wallets))
	for i := range wallets {
		out = append(out, dto.NewWalletResponse(&wallets[i], h.progress(c, &wallets[i])))
	}
	response.OK(c, out)
}

// Create handles POST /api/v1/wallets.
func (h *WalletHandler) Create(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	dto.SanitizeStruct(&req)

	owner, err := parseOwner(req.OwnerType, req.OwnerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	wallet, err := h.wallets.Create(c.Request.Context(), middleware.CallerFrom(c), ports.CreateWalletInput{
		Owner:        owner,
		AddressOrKey: req.AddressOrKey,
		Label:        req.Label,
		Description:  req.Description,
		Category:     req.Category,
		CategoryIcon: req.CategoryIcon,
		GoalAmount:   req.GoalAmount,
		GoalCurrency: req.GoalCurrency,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxResourceID, wallet.ID.String())
	response.Created(c, dto.NewWalletResponse(wallet, h.progress(c, wallet)))
}

// Get handles GET /api/v1/wallets/:id.
func (h *WalletHandler) Get(c *gin.Context) {
	id, ok := walletID(c)
	if !ok {
		return
	}

	wallet, err := h.wallets.Get(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewWalletResponse(wallet, h.progress(c, wallet)))
}

// Update handles PATCH /api/v1/wallets/:id.
func (h *WalletHandler) Update(c *gin.Context) {
	id, ok := walletID(c)
	if !ok {
		return
	}

	var req dto.UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	dto.SanitizeStruct(&req)

	wallet, err := h.wallets.Update(c.Request.Context(), middleware.CallerFrom(c), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewWalletResponse(wallet, h.progress(c, wallet)))
}

// Delete handles DELETE /api/v1/wallets/:id. Wallets are deactivated, never removed.
func (h *WalletHandler) Delete(c *gin.Context) {
	id, ok := walletID(c)
	if !ok {
		return
	}

	if err := h.wallets.SoftDelete(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.DeleteWalletResponse{ID: id.String(), Deleted: true})
}

// Refresh handles POST /api/v1/wallets/:id/refresh.
func (h *WalletHandler) Refresh(c *gin.Context) {
	id, ok := walletID(c)
	if !ok {
		return
	}

	wallet, err := h.refresher.Refresh(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewWalletResponse(wallet, h.progress(c, wallet)))
}

// Addresses handles GET /api/v1/wallets/:id/addresses.
func (h *WalletHandler) Addresses(c *gin.Context) {
	id, ok := walletID(c)
	if !ok {
		return
	}

	addresses, err := h.wallets.ListAddresses(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, addresses)
}

// progress evaluates the wallet's goal for embedding in a response.
// A missing exchange rate only drops the progress block.
func (h *WalletHandler) progress(c *gin.Context, w *domain.Wallet) *domain.GoalProgress {
	if w.Goal() == nil {
		return nil
	}
	p, err := h.goals.EvaluateWallet(c.Request.Context(), w)
	if err != nil {
		h.log.Debug().Err(err).Str("wallet_id", w.ID.String()).Msg("goal progress unavailable")
		return nil
	}
	return p
}

// walletID parses the :id path parameter and writes the error response itself.
func walletID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.InvalidInput("wallet id must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func parseOwner(ownerType, ownerID string) (domain.Owner, error) {
	id, err := uuid.Parse(ownerID)
	if err != nil {
		return domain.Owner{}, apperror.InvalidInput("owner_id must be a UUID")
	}
	owner := domain.Owner{Type: domain.OwnerType(strings.ToLower(strings.TrimSpace(ownerType))), ID: id}
	if err := owner.Validate(); err != nil {
		return domain.Owner{}, apperror.InvalidInput("owner_type must be profile or project")
	}
	return owner, nil
}

// bindError keeps validator output but drops Go type names from JSON decode errors.
func bindError(err error) *apperror.AppError {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperror.ErrPayloadTooLarge()
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "json: ") || strings.Contains(msg, "cannot unmarshal") || errors.Is(err, io.EOF) {
		return apperror.InvalidInput("request body is not valid JSON for this endpoint")
	}
	return apperror.InvalidInput(msg)
}
