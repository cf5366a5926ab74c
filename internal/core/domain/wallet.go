package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet limits.
const (
	MaxActiveWalletsPerOwner = 10
	MaxLabelLength           = 100
	MaxDescriptionLength     = 500
	RefreshCooldown          = 300 * time.Second
)

// OwnerType identifies which kind of entity owns a wallet.
type OwnerType string

const (
	OwnerProfile OwnerType = "profile"
	OwnerProject OwnerType = "project"
)

// Owner references the profile or project a wallet belongs to.
type Owner struct {
	Type OwnerType `json:"owner_type"`
	ID   uuid.UUID `json:"owner_id"`
}

var ErrInvalidOwner = errors.New("owner must be a profile or a project with a non-nil id")

// Validate checks that exactly one kind of owner is referenced.
func (o Owner) Validate() error {
	if o.Type != OwnerProfile && o.Type != OwnerProject {
		return ErrInvalidOwner
	}
	if o.ID == uuid.Nil {
		return ErrInvalidOwner
	}
	return nil
}

// LockKey is the key used to serialize wallet writes for one owner.
func (o Owner) LockKey() string {
	return fmt.Sprintf("wallet-owner:%s:%s", o.Type, o.ID)
}

func (o Owner) String() string {
	return string(o.Type) + ":" + o.ID.String()
}

// ProfileID returns the owner id when the owner is a profile.
func (o Owner) ProfileID() *uuid.UUID {
	if o.Type != OwnerProfile {
		return nil
	}
	id := o.ID
	return &id
}

// ProjectID returns the owner id when the owner is a project.
func (o Owner) ProjectID() *uuid.UUID {
	if o.Type != OwnerProject {
		return nil
	}
	id := o.ID
	return &id
}

// OwnerFromColumns rebuilds an Owner from the profile_id / project_id pair.
func OwnerFromColumns(profileID, projectID *uuid.UUID) (Owner, error) {
	switch {
	case profileID != nil && projectID == nil:
		return Owner{Type: OwnerProfile, ID: *profileID}, nil
	case projectID != nil && profileID == nil:
		return Owner{Type: OwnerProject, ID: *projectID}, nil
	default:
		return Owner{}, ErrInvalidOwner
	}
}

// WalletKind distinguishes a single address from an extended public key.
type WalletKind string

const (
	WalletKindAddress     WalletKind = "address"
	WalletKindExtendedKey WalletKind = "extended_key"
)

// Wallet is a claim that a Bitcoin address or extended public key belongs to one owner.
type Wallet struct {
	ID               uuid.UUID           `json:"id"`
	Owner            Owner               `json:"owner"`
	AddressOrKey     string              `json:"address_or_key"`
	Kind             WalletKind          `json:"kind"`
	KeyVariant       string              `json:"key_variant"`
	Label            string              `json:"label"`
	Description      string              `json:"description,omitempty"`
	Category         WalletCategory      `json:"category"`
	CategoryIcon     string              `json:"category_icon"`
	GoalAmount       decimal.NullDecimal `json:"goal_amount"`
	GoalCurrency     string              `json:"goal_currency,omitempty"`
	BalanceBTC       decimal.Decimal     `json:"balance_btc"`
	TxCount          int64               `json:"tx_count"`
	BalanceUpdatedAt *time.Time          `json:"balance_updated_at,omitempty"`
	IsPrimary        bool                `json:"is_primary"`
	IsActive         bool                `json:"is_active"`
	DisplayOrder     int                 `json:"display_order"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// Goal returns the wallet's goal, or nil if none is set.
func (w *Wallet) Goal() *Goal {
	if !w.GoalAmount.Valid || w.GoalCurrency == "" {
		return nil
	}
	return &Goal{Amount: w.GoalAmount.Decimal, Currency: w.GoalCurrency}
}

// IsExtendedKey reports whether the wallet tracks an xpub-style key.
func (w *Wallet) IsExtendedKey() bool {
	return w.Kind == WalletKindExtendedKey
}

// WalletAddress is one concrete chain address derived from an extended-key wallet.
type WalletAddress struct {
	WalletID        uuid.UUID       `json:"wallet_id"`
	Address         string          `json:"address"`
	Chain           int             `json:"chain"` // 0 receive, 1 change
	DerivationIndex int             `json:"derivation_index"`
	DerivationPath  string          `json:"derivation_path,omitempty"`
	BalanceBTC      decimal.Decimal `json:"balance_btc"`
	TxCount         int64           `json:"tx_count"`
	DiscoveredAt    time.Time       `json:"discovered_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
