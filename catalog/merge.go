package catalog

import (
	"time"

	"github.com/wearloom/stylist-backend/models"
)

// newCanonical seeds a canonical product from its first scraped hit.
func newCanonical(in models.ScrapedProduct, now time.Time) models.CanonicalProduct {
	return models.CanonicalProduct{
		ExternalID:  in.ExternalID,
		Brand:       in.Brand,
		Source:      in.Source,
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		Colors:      in.Colors,
		Details:     []models.LocaleDetail{in.Detail},
		Metadata:    copyMetadata(nil, in.Raw),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// merge folds a new scraped hit into an existing canonical product and
// returns the merged value. Identity fields are taken from the fresh
// sourcing pass; optional fields are never overwritten with empty
// incoming values; locale details keep at most one entry per locale with
// the incoming one winning.
func merge(existing models.CanonicalProduct, in models.ScrapedProduct, now time.Time) models.CanonicalProduct {
	out := existing

	out.Brand = in.Brand
	out.Source = in.Source
	out.Name = in.Name

	if in.Description != "" {
		out.Description = in.Description
	}
	if in.Image != "" {
		out.Image = in.Image
	}
	if len(in.Colors) > 0 {
		out.Colors = in.Colors
	}

	out.Details = mergeDetails(existing.Details, in.Detail)
	out.Metadata = copyMetadata(existing.Metadata, in.Raw)
	out.UpdatedAt = now
	return out
}

// mergeDetails drops any existing entry for the incoming locale and
// appends the new one, so each locale keeps exactly its latest detail.
func mergeDetails(existing []models.LocaleDetail, incoming models.LocaleDetail) []models.LocaleDetail {
	merged := make([]models.LocaleDetail, 0, len(existing)+1)
	for _, detail := range existing {
		if detail.Locale != incoming.Locale {
			merged = append(merged, detail)
		}
	}
	return append(merged, incoming)
}

// copyMetadata shallow-merges incoming keys over existing ones into a
// fresh map, leaving both inputs untouched.
func copyMetadata(existing, incoming map[string]interface{}) map[string]interface{} {
	if len(existing) == 0 && len(incoming) == 0 {
		return nil
	}
	merged := make(map[string]interface{}, len(existing)+len(incoming))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range incoming {
		merged[k] = v
	}
	return merged
}
