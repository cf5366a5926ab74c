package domain

// WalletCategory tags what a wallet's funds are for.
type WalletCategory string

const (
	CategoryGeneral        WalletCategory = "general"
	CategoryRent           WalletCategory = "rent"
	CategoryFood           WalletCategory = "food"
	CategoryMedical        WalletCategory = "medical"
	CategoryEducation      WalletCategory = "education"
	CategoryEmergency      WalletCategory = "emergency"
	CategoryTransportation WalletCategory = "transportation"
	CategoryUtilities      WalletCategory = "utilities"
	CategoryProjects       WalletCategory = "projects"
	CategoryLegal          WalletCategory = "legal"
	CategoryOther          WalletCategory = "other"
)

// categoryIcons maps each category to its default icon.
var categoryIcons = map[WalletCategory]string{
	CategoryGeneral:        "💰",
	CategoryRent:           "🏠",
	CategoryFood:           "🍔",
	CategoryMedical:        "💊",
	CategoryEducation:      "📚",
	CategoryEmergency:      "🚨",
	CategoryTransportation: "🚗",
	CategoryUtilities:      "💡",
	CategoryProjects:       "🚀",
	CategoryLegal:          "⚖️",
	CategoryOther:          "📦",
}

// extraIcons are neutral icons any category may use.
var extraIcons = []string{"₿", "⚡", "🎯", "🌱", "❤️", "🎁"}

// ValidCategory reports whether c is a known category.
func ValidCategory(c WalletCategory) bool {
	_, ok := categoryIcons[c]
	return ok
}

// DefaultIcon returns the icon used when none is chosen.
func DefaultIcon(c WalletCategory) string {
	return categoryIcons[c]
}

// AllowedIcon reports whether icon is in the allow-list.
func AllowedIcon(icon string) bool {
	for _, i := range categoryIcons {
		if i == icon {
			return true
		}
	}
	for _, i := range extraIcons {
		if i == icon {
			return true
		}
	}
	return false
}

// Categories lists all categories in display order.
func Categories() []WalletCategory {
	return []WalletCategory{
		CategoryGeneral, CategoryRent, CategoryFood, CategoryMedical,
		CategoryEducation, CategoryEmergency, CategoryTransportation,
		CategoryUtilities, CategoryProjects, CategoryLegal, CategoryOther,
	}
}
