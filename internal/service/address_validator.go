package service

import (
	"bytes"
	"fmt"
	"strings"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/pkg/apperror"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// Address variants.
const (
	VariantP2PKH  = "p2pkh"
	VariantP2SH   = "p2sh"
	VariantP2WPKH = "p2wpkh"
	VariantP2WSH  = "p2wsh"
	VariantP2TR   = "p2tr"
)

// extendedKeyVersion is a SLIP-132 public key prefix.
type extendedKeyVersion struct {
	version [4]byte
	mainnet bool
}

var extendedKeyVersions = map[string]extendedKeyVersion{
	"xpub": {[4]byte{0x04, 0x88, 0xb2, 0x1e}, true},
	"ypub": {[4]byte{0x04, 0x9d, 0x7c, 0xb2}, true},
	"zpub": {[4]byte{0x04, 0xb2, 0x47, 0x46}, true},
	"Ypub": {[4]byte{0x02, 0x95, 0xb4, 0x3f}, true},
	"Zpub": {[4]byte{0x02, 0xaa, 0x7e, 0xd3}, true},
	"tpub": {[4]byte{0x04, 0x35, 0x87, 0xcf}, false},
	"upub": {[4]byte{0x04, 0x4a, 0x52, 0x62}, false},
	"vpub": {[4]byte{0x04, 0x5f, 0x1c, 0xf6}, false},
	"Upub": {[4]byte{0x02, 0x42, 0x89, 0xef}, false},
	"Vpub": {[4]byte{0x02, 0x57, 0x54, 0x83}, false},
}

var privateKeyPrefixes = []string{
	"xprv", "yprv", "zprv", "Yprv", "Zprv",
	"tprv", "uprv", "vprv", "Uprv", "Vprv",
}

// ValidatedAddress is the normalized form of a wallet's address or key.
type ValidatedAddress struct {
	Kind      domain.WalletKind
	Variant   string
	Canonical string
}

// AddressValidator checks addresses and extended public keys against one network.
type AddressValidator struct {
	params *chaincfg.Params
}

// NewAddressValidator creates a validator for mainnet or testnet.
func NewAddressValidator(network string) (*AddressValidator, error) {
	switch network {
	case "mainnet", "":
		return &AddressValidator{params: &chaincfg.MainNetParams}, nil
	case "testnet":
		return &AddressValidator{params: &chaincfg.TestNet3Params}, nil
	default:
		return nil, fmt.Errorf("unknown bitcoin network %q", network)
	}
}

// Validate classifies input as an address or an extended public key.
// Private keys and raw public keys are rejected.
func (v *AddressValidator) Validate(input string) (ValidatedAddress, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return ValidatedAddress{}, apperror.InvalidInput("address_or_key is required")
	}
	if len(s) >= 4 {
		prefix := s[:4]
		for _, p := range privateKeyPrefixes {
			if prefix == p {
				return ValidatedAddress{}, apperror.InvalidInput("Private keys are never accepted, use the extended public key")
			}
		}
		if ver, ok := extendedKeyVersions[prefix]; ok {
			return v.validateExtendedKey(s, prefix, ver)
		}
	}
	return v.validateAddress(s)
}

func (v *AddressValidator) validateExtendedKey(s, prefix string, ver extendedKeyVersion) (ValidatedAddress, error) {
	key, err := hdkeychain.NewKeyFromString(s)
	if err != nil {
		return ValidatedAddress{}, apperror.InvalidInput("Invalid extended public key")
	}
	if key.IsPrivate() {
		return ValidatedAddress{}, apperror.InvalidInput("Private keys are never accepted, use the extended public key")
	}
	if raw := base58.Decode(s); len(raw) < 4 || !bytes.Equal(raw[:4], ver.version[:]) {
		return ValidatedAddress{}, apperror.InvalidInput("Invalid extended public key")
	}
	if ver.mainnet != v.isMainnet() {
		return ValidatedAddress{}, apperror.InvalidInput(fmt.Sprintf("Extended key is not for %s", v.params.Name))
	}
	return ValidatedAddress{
		Kind:      domain.WalletKindExtendedKey,
		Variant:   prefix,
		Canonical: s,
	}, nil
}

func (v *AddressValidator) validateAddress(s string) (ValidatedAddress, error) {
	addr, err := btcutil.DecodeAddress(s, v.params)
	if err != nil {
		return ValidatedAddress{}, apperror.InvalidInput("Invalid Bitcoin address or extended public key")
	}
	if !addr.IsForNet(v.params) {
		return ValidatedAddress{}, apperror.InvalidInput(fmt.Sprintf("Address is not for %s", v.params.Name))
	}

	var variant string
	switch addr.(type) {
	case *btcutil.AddressPubKeyHash:
		variant = VariantP2PKH
	case *btcutil.AddressScriptHash:
		variant = VariantP2SH
	case *btcutil.AddressWitnessPubKeyHash:
		variant = VariantP2WPKH
	case *btcutil.AddressWitnessScriptHash:
		variant = VariantP2WSH
	case *btcutil.AddressTaproot:
		variant = VariantP2TR
	default:
		return ValidatedAddress{}, apperror.InvalidInput("Unsupported address type")
	}

	return ValidatedAddress{
		Kind:      domain.WalletKindAddress,
		Variant:   variant,
		Canonical: addr.EncodeAddress(),
	}, nil
}

func (v *AddressValidator) isMainnet() bool {
	return v.params.Net == chaincfg.MainNetParams.Net
}
