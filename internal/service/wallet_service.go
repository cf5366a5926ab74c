package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"
	"orangecat-wallets/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WalletServiceImpl owns the wallet invariants: the active-wallet limit, one active claim
// per address per owner, and at most one primary wallet per owner.
// Every mutation runs in a transaction holding the owner lock.
type WalletServiceImpl struct {
	walletRepo  ports.WalletRepository
	addressRepo ports.WalletAddressRepository
	owners      ports.OwnerDirectory
	transactor  ports.DBTransactor
	validator   *AddressValidator
	ledger      ports.CurrencyLedger
	maxPerOwner int
	log         zerolog.Logger
	now         func() time.Time
}

var _ ports.WalletService = (*WalletServiceImpl)(nil)

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	addressRepo ports.WalletAddressRepository,
	owners ports.OwnerDirectory,
	transactor ports.DBTransactor,
	validator *AddressValidator,
	ledger ports.CurrencyLedger,
	maxPerOwner int,
	log zerolog.Logger,
) *WalletServiceImpl {
	if maxPerOwner <= 0 {
		maxPerOwner = domain.MaxActiveWalletsPerOwner
	}
	return &WalletServiceImpl{
		walletRepo:  walletRepo,
		addressRepo: addressRepo,
		owners:      owners,
		transactor:  transactor,
		validator:   validator,
		ledger:      ledger,
		maxPerOwner: maxPerOwner,
		log:         log,
		now:         time.Now,
	}
}

// Create registers a new wallet for an owner the caller manages.
func (s *WalletServiceImpl) Create(ctx context.Context, caller domain.Caller, in ports.CreateWalletInput) (*domain.Wallet, error) {
	if err := in.Owner.Validate(); err != nil {
		return nil, apperror.InvalidInput("owner_type must be profile or project and owner_id must be set")
	}
	if err := s.requireManage(ctx, caller, in.Owner); err != nil {
		return nil, err
	}

	addr, err := s.validator.Validate(in.AddressOrKey)
	if err != nil {
		return nil, err
	}

	label := sanitizeText(in.Label, domain.MaxLabelLength, false)
	if label == "" {
		return nil, apperror.InvalidInput("label is required")
	}
	description := sanitizeText(in.Description, domain.MaxDescriptionLength, true)

	category := domain.CategoryGeneral
	if in.Category != "" {
		category = domain.WalletCategory(strings.ToLower(strings.TrimSpace(in.Category)))
		if !domain.ValidCategory(category) {
			return nil, apperror.InvalidInput("unknown category: " + in.Category)
		}
	}
	icon := domain.DefaultIcon(category)
	if in.CategoryIcon != "" {
		if !domain.AllowedIcon(in.CategoryIcon) {
			return nil, apperror.InvalidInput("category_icon is not an allowed icon")
		}
		icon = in.CategoryIcon
	}

	goalAmount, goalCurrency, err := s.normalizeGoal(in.GoalAmount, in.GoalCurrency)
	if err != nil {
		return nil, err
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := s.walletRepo.LockOwner(ctx, tx, in.Owner); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	stats, err := s.walletRepo.ActiveStats(ctx, tx, in.Owner)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if stats.Count >= s.maxPerOwner {
		return nil, apperror.ErrWalletLimitReached(s.maxPerOwner)
	}

	exists, err := s.walletRepo.ExistsActiveAddress(ctx, tx, in.Owner, addr.Canonical)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if exists {
		return nil, apperror.ErrDuplicateWallet()
	}

	now := s.now().UTC()
	wallet := &domain.Wallet{
		ID:           uuid.New(),
		Owner:        in.Owner,
		AddressOrKey: addr.Canonical,
		Kind:         addr.Kind,
		KeyVariant:   addr.Variant,
		Label:        label,
		Description:  description,
		Category:     category,
		CategoryIcon: icon,
		GoalAmount:   goalAmount,
		GoalCurrency: goalCurrency,
		BalanceBTC:   decimal.Zero,
		IsPrimary:    stats.Count == 0,
		IsActive:     true,
		DisplayOrder: stats.NextDisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.walletRepo.Create(ctx, tx, wallet); err != nil {
		return nil, s.mapWriteError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("owner", in.Owner.String()).
		Str("kind", string(wallet.Kind)).
		Bool("primary", wallet.IsPrimary).
		Msg("wallet created")

	return wallet, nil
}

// Update applies a partial update. Setting is_primary promotes the wallet and demotes the old primary.
func (s *WalletServiceImpl) Update(ctx context.Context, caller domain.Caller, id uuid.UUID, in ports.UpdateWalletInput) (*domain.Wallet, error) {
	current, err := s.loadManaged(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	patch, err := s.preparePatch(in)
	if err != nil {
		return nil, err
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := s.walletRepo.LockOwner(ctx, tx, current.Owner); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if wallet == nil || !wallet.IsActive {
		return nil, apperror.ErrNotFound("Wallet")
	}

	patch.apply(wallet)

	if in.IsPrimary != nil && *in.IsPrimary && !wallet.IsPrimary {
		if err := s.walletRepo.ClearPrimary(ctx, tx, wallet.Owner); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		wallet.IsPrimary = true
	}
	wallet.UpdatedAt = s.now().UTC()

	if err := s.walletRepo.Update(ctx, tx, wallet); err != nil {
		return nil, s.mapWriteError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Info().Str("wallet_id", id.String()).Msg("wallet updated")
	return wallet, nil
}

// SoftDelete deactivates a wallet. If it was primary, the next wallet in display order is promoted.
func (s *WalletServiceImpl) SoftDelete(ctx context.Context, caller domain.Caller, id uuid.UUID) error {
	current, err := s.loadManaged(ctx, caller, id)
	if err != nil {
		return err
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := s.walletRepo.LockOwner(ctx, tx, current.Owner); err != nil {
		return apperror.ErrDatabaseError(err)
	}

	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if wallet == nil || !wallet.IsActive {
		return apperror.ErrNotFound("Wallet")
	}

	if err := s.walletRepo.Deactivate(ctx, tx, id); err != nil {
		return apperror.ErrDatabaseError(err)
	}

	var promoted *uuid.UUID
	if wallet.IsPrimary {
		promoted, err = s.walletRepo.PromoteNextPrimary(ctx, tx, wallet.Owner)
		if err != nil {
			return apperror.ErrDatabaseError(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.ErrDatabaseError(err)
	}

	ev := s.log.Info().Str("wallet_id", id.String()).Str("owner", wallet.Owner.String())
	if promoted != nil {
		ev = ev.Str("promoted_primary", promoted.String())
	}
	ev.Msg("wallet deleted")
	return nil
}

// Get returns a wallet visible to the caller. Invisible and deleted wallets are reported as not found.
func (s *WalletServiceImpl) Get(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if wallet == nil || !wallet.IsActive {
		return nil, apperror.ErrNotFound("Wallet")
	}

	visible, err := s.visible(ctx, caller, wallet.Owner)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, apperror.ErrNotFound("Wallet")
	}
	return wallet, nil
}

// List returns the owner's active wallets if the caller may see them, otherwise an empty list.
func (s *WalletServiceImpl) List(ctx context.Context, caller domain.Caller, owner domain.Owner) ([]domain.Wallet, error) {
	if err := owner.Validate(); err != nil {
		return nil, apperror.InvalidInput("owner_type must be profile or project and owner_id must be set")
	}

	visible, err := s.visible(ctx, caller, owner)
	if err != nil {
		return nil, err
	}
	if !visible {
		return []domain.Wallet{}, nil
	}

	wallets, err := s.walletRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if wallets == nil {
		wallets = []domain.Wallet{}
	}
	return wallets, nil
}

// ListAddresses returns the derived-address breakdown of a visible wallet.
func (s *WalletServiceImpl) ListAddresses(ctx context.Context, caller domain.Caller, id uuid.UUID) ([]domain.WalletAddress, error) {
	wallet, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !wallet.IsExtendedKey() {
		return []domain.WalletAddress{}, nil
	}

	addresses, err := s.addressRepo.ListByWallet(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if addresses == nil {
		addresses = []domain.WalletAddress{}
	}
	return addresses, nil
}

// SetBalance stores a fetched balance. Older snapshots never overwrite newer ones.
func (s *WalletServiceImpl) SetBalance(ctx context.Context, id uuid.UUID, balanceBTC decimal.Decimal, txCount int64, asOf time.Time) (bool, error) {
	if balanceBTC.IsNegative() || txCount < 0 {
		return false, apperror.ErrInvalidBalance()
	}

	applied, err := s.walletRepo.SetBalance(ctx, id, balanceBTC, txCount, asOf)
	if err != nil {
		return false, apperror.ErrDatabaseError(err)
	}
	if !applied {
		s.log.Debug().Str("wallet_id", id.String()).Time("as_of", asOf).Msg("balance write superseded by newer snapshot")
	}
	return applied, nil
}

// GetForRefresh loads an active wallet without visibility checks.
func (s *WalletServiceImpl) GetForRefresh(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if wallet == nil || !wallet.IsActive {
		return nil, apperror.ErrNotFound("Wallet")
	}
	return wallet, nil
}

// CanManage reports whether the caller may modify the owner's wallets.
func (s *WalletServiceImpl) CanManage(ctx context.Context, caller domain.Caller, owner domain.Owner) (bool, error) {
	if caller.IsAnonymous() {
		return false, nil
	}
	ok, err := s.owners.CanManage(ctx, caller.UserID, owner)
	if err != nil {
		return false, apperror.ErrDatabaseError(err)
	}
	return ok, nil
}

func (s *WalletServiceImpl) requireManage(ctx context.Context, caller domain.Caller, owner domain.Owner) error {
	if caller.IsAnonymous() {
		return apperror.ErrInvalidToken()
	}
	ok, err := s.CanManage(ctx, caller, owner)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrForbidden()
	}
	return nil
}

// loadManaged resolves a wallet for mutation. A wallet the caller cannot even see is not found;
// a visible wallet the caller does not manage is forbidden.
func (s *WalletServiceImpl) loadManaged(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Wallet, error) {
	if caller.IsAnonymous() {
		return nil, apperror.ErrInvalidToken()
	}
	wallet, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if wallet == nil || !wallet.IsActive {
		return nil, apperror.ErrNotFound("Wallet")
	}

	ok, err := s.CanManage(ctx, caller, wallet.Owner)
	if err != nil {
		return nil, err
	}
	if ok {
		return wallet, nil
	}

	public, err := s.isPublic(ctx, wallet.Owner)
	if err != nil {
		return nil, err
	}
	if public {
		return nil, apperror.ErrForbidden()
	}
	return nil, apperror.ErrNotFound("Wallet")
}

func (s *WalletServiceImpl) visible(ctx context.Context, caller domain.Caller, owner domain.Owner) (bool, error) {
	ok, err := s.CanManage(ctx, caller, owner)
	if err != nil || ok {
		return ok, err
	}
	return s.isPublic(ctx, owner)
}

func (s *WalletServiceImpl) isPublic(ctx context.Context, owner domain.Owner) (bool, error) {
	public, err := s.owners.IsPublic(ctx, owner)
	if err != nil {
		return false, apperror.ErrDatabaseError(err)
	}
	return public, nil
}

// normalizeGoal validates a goal pair. The currency defaults to USD when only an amount is given.
func (s *WalletServiceImpl) normalizeGoal(amount *decimal.Decimal, currency string) (decimal.NullDecimal, string, error) {
	currency = strings.TrimSpace(currency)
	if amount == nil {
		if currency != "" {
			return decimal.NullDecimal{}, "", apperror.InvalidInput("goal_currency requires goal_amount")
		}
		return decimal.NullDecimal{}, "", nil
	}
	if !amount.IsPositive() {
		return decimal.NullDecimal{}, "", apperror.InvalidInput("goal_amount must be positive")
	}
	if currency == "" {
		currency = domain.USD
	}
	c, err := s.ledger.Lookup(currency)
	if err != nil {
		return decimal.NullDecimal{}, "", err
	}
	return decimal.NewNullDecimal(*amount), c.Code, nil
}

func (s *WalletServiceImpl) mapWriteError(err error) error {
	switch {
	case errors.Is(err, ports.ErrWalletLimit):
		return apperror.ErrWalletLimitReached(s.maxPerOwner)
	case errors.Is(err, ports.ErrDuplicateAddress):
		return apperror.ErrDuplicateWallet()
	default:
		return apperror.ErrDatabaseError(err)
	}
}

// walletPatch is a validated UpdateWalletInput.
type walletPatch struct {
	label        *string
	description  *string
	category     *domain.WalletCategory
	icon         *string
	goalSet      bool
	goalAmount   decimal.NullDecimal
	goalCurrency string
	displayOrder *int
}

func (s *WalletServiceImpl) preparePatch(in ports.UpdateWalletInput) (*walletPatch, error) {
	p := &walletPatch{}

	if in.IsPrimary != nil && !*in.IsPrimary {
		return nil, apperror.InvalidInput("is_primary can only be set to true; promote another wallet instead")
	}
	if in.Label != nil {
		label := sanitizeText(*in.Label, domain.MaxLabelLength, false)
		if label == "" {
			return nil, apperror.InvalidInput("label must not be empty")
		}
		p.label = &label
	}
	if in.Description != nil {
		d := sanitizeText(*in.Description, domain.MaxDescriptionLength, true)
		p.description = &d
	}
	if in.Category != nil {
		c := domain.WalletCategory(strings.ToLower(strings.TrimSpace(*in.Category)))
		if !domain.ValidCategory(c) {
			return nil, apperror.InvalidInput("unknown category: " + *in.Category)
		}
		p.category = &c
	}
	if in.CategoryIcon != nil {
		if !domain.AllowedIcon(*in.CategoryIcon) {
			return nil, apperror.InvalidInput("category_icon is not an allowed icon")
		}
		p.icon = in.CategoryIcon
	}
	switch {
	case in.ClearGoal:
		if in.GoalAmount != nil {
			return nil, apperror.InvalidInput("goal_amount cannot be set while clearing the goal")
		}
		p.goalSet = true
	case in.GoalAmount != nil:
		currency := ""
		if in.GoalCurrency != nil {
			currency = *in.GoalCurrency
		}
		amount, code, err := s.normalizeGoal(in.GoalAmount, currency)
		if err != nil {
			return nil, err
		}
		p.goalSet = true
		p.goalAmount = amount
		p.goalCurrency = code
	case in.GoalCurrency != nil:
		// Re-denominate the existing goal; validated here, checked against the row in apply.
		c, err := s.ledger.Lookup(*in.GoalCurrency)
		if err != nil {
			return nil, err
		}
		p.goalCurrency = c.Code
	}
	if in.DisplayOrder != nil {
		if *in.DisplayOrder < 0 {
			return nil, apperror.InvalidInput("display_order must not be negative")
		}
		p.displayOrder = in.DisplayOrder
	}
	return p, nil
}

func (p *walletPatch) apply(w *domain.Wallet) {
	if p.label != nil {
		w.Label = *p.label
	}
	if p.description != nil {
		w.Description = *p.description
	}
	if p.category != nil && *p.category != w.Category {
		// Follow the category's default icon unless a custom icon was chosen earlier.
		if w.CategoryIcon == domain.DefaultIcon(w.Category) {
			w.CategoryIcon = domain.DefaultIcon(*p.category)
		}
		w.Category = *p.category
	}
	if p.icon != nil {
		w.CategoryIcon = *p.icon
	}
	switch {
	case p.goalSet:
		w.GoalAmount = p.goalAmount
		w.GoalCurrency = p.goalCurrency
	case p.goalCurrency != "" && w.GoalAmount.Valid:
		w.GoalCurrency = p.goalCurrency
	}
	if p.displayOrder != nil {
		w.DisplayOrder = *p.displayOrder
	}
}

// sanitizeText strips control characters, trims, and truncates to max runes.
// Multi-line text keeps newlines and tabs.
func sanitizeText(s string, max int, multiline bool) string {
	s = strings.Map(func(r rune) rune {
		if multiline && (r == '\n' || r == '\t') {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > max {
		s = strings.TrimSpace(string(r[:max]))
	}
	return s
}
