package sourcing

import (
	"strings"

	"github.com/wearloom/stylist-backend/models"
	"github.com/wearloom/stylist-backend/sourcing/base"
)

// SourceRequest is one retailer query derived from a planned item. The
// primary URL searches by the item's free-text query; the backup URL
// searches by the shorter canonical plan key.
type SourceRequest struct {
	Source         string
	PrimaryURL     string
	BackupURL      string
	Locale         string
	BrandAllowList []string

	// Item is the planned item that produced this request; its plan
	// metadata is carried onto any scraped hit.
	Item models.PlannedItem
}

// NormalizeLocale canonicalizes locale strings like "en_us" or "EN-US"
// into the "en-US" form the retailer endpoints expect.
func NormalizeLocale(locale string) string {
	locale = strings.TrimSpace(strings.ReplaceAll(locale, "_", "-"))
	parts := strings.SplitN(locale, "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "en-US"
	}
	return strings.ToLower(parts[0]) + "-" + strings.ToUpper(parts[1])
}

// BuildRequests constructs one SourceRequest per registered adapter.
func (s *Service) BuildRequests(item models.PlannedItem, gender, locale string, brandAllowList []string) []SourceRequest {
	locale = NormalizeLocale(locale)

	var requests []SourceRequest
	for _, adapter := range s.adapters {
		opts := base.SearchOptions{
			Gender:   gender,
			Locale:   locale,
			MaxPrice: item.MaxPrice,
		}
		requests = append(requests, SourceRequest{
			Source:         adapter.Name(),
			PrimaryURL:     adapter.SearchURL(item.SearchQuery, opts),
			BackupURL:      adapter.SearchURL(item.PlanKey, opts),
			Locale:         locale,
			BrandAllowList: brandAllowList,
			Item:           item,
		})
	}
	return requests
}
