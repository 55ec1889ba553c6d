// Package base holds the pieces shared by all retailer adapters.
package base

import (
	"fmt"
	"strconv"
	"strings"
)

// SearchOptions bound a retailer search to the caller's context
type SearchOptions struct {
	Gender   string
	Locale   string
	MaxPrice string
}

// BrandAllowed reports whether a hit's brand passes the allow-list.
// An empty list allows everything.
func BrandAllowed(brand string, allowList []string) bool {
	if len(allowList) == 0 {
		return true
	}
	for _, allowed := range allowList {
		if allowed == "" {
			continue
		}
		if strings.Contains(strings.ToLower(brand), strings.ToLower(allowed)) {
			return true
		}
	}
	return false
}

// PriceCeiling parses a max-price string into a whole number the search
// endpoints accept. Fractional amounts truncate so the ceiling never
// exceeds the planned maximum. Zero means unbounded.
func PriceCeiling(maxPrice string) int {
	value, err := strconv.ParseFloat(strings.TrimSpace(maxPrice), 64)
	if err != nil || value <= 0 {
		return 0
	}
	return int(value)
}

// LocaleStore maps a normalized locale to the store country, language
// and currency triple retailer endpoints key their catalogs by.
func LocaleStore(locale string) (store, lang, currency string) {
	switch locale {
	case "en-GB":
		return "GB", "en-GB", "GBP"
	case "de-DE":
		return "DE", "de-DE", "EUR"
	case "fr-FR":
		return "FR", "fr-FR", "EUR"
	default:
		return "US", "en-US", "USD"
	}
}

// ExternalID builds the globally unique product key for one retailer hit
func ExternalID(source string, nativeID interface{}) string {
	return fmt.Sprintf("%s-%v", source, nativeID)
}
