package dto

import (
	"reflect"
	"regexp"
	"strings"

	"orangecat-wallets/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// currencyCodeRe only checks the shape; the ledger decides whether a code is supported.
var currencyCodeRe = regexp.MustCompile(`^[A-Za-z]{3,4}$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterValidators(v)
	}
}

// RegisterValidators installs the wallet-specific tags on v.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("currency_code", validateCurrencyCode)
	_ = v.RegisterValidation("owner_type", validateOwnerType)
	_ = v.RegisterValidation("wallet_category", validateWalletCategory)
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	return currencyCodeRe.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateOwnerType(fl validator.FieldLevel) bool {
	switch domain.OwnerType(strings.ToLower(fl.Field().String())) {
	case domain.OwnerProfile, domain.OwnerProject:
		return true
	}
	return false
}

func validateWalletCategory(fl validator.FieldLevel) bool {
	c := domain.WalletCategory(strings.ToLower(strings.TrimSpace(fl.Field().String())))
	return domain.ValidCategory(c)
}

// SanitizeStruct trims surrounding whitespace from every exported string
// field (including *string) of a struct pointer.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(strings.TrimSpace(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			if elem := f.Elem(); elem.Kind() == reflect.String {
				elem.SetString(strings.TrimSpace(elem.String()))
			}
		}
	}
}
