package zalando

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/wearloom/stylist-backend/models"
	"github.com/wearloom/stylist-backend/sourcing/base"
)

const sourceName = "zalando"

// Adapter queries the Zalando catalog articles API
type Adapter struct{}

func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string {
	return sourceName
}

func (a *Adapter) SearchURL(query string, opts base.SearchOptions) string {
	if query == "" {
		return ""
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("locale", opts.Locale)
	params.Set("limit", "10")
	if gender := normalizeGender(opts.Gender); gender != "" {
		params.Set("gender", gender)
	}
	if ceiling := base.PriceCeiling(opts.MaxPrice); ceiling > 0 {
		params.Set("price_to", fmt.Sprintf("%d", ceiling))
	}

	return "https://www.zalando.com/api/catalog/articles?" + params.Encode()
}

func normalizeGender(gender string) string {
	switch strings.ToLower(gender) {
	case "male", "men", "man":
		return "MALE"
	case "female", "women", "woman":
		return "FEMALE"
	}
	return ""
}

func (a *Adapter) Headers() http.Header {
	headers := http.Header{}
	headers.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	headers.Set("Accept", "application/json")
	headers.Set("Accept-Language", "en-US,en;q=0.9")
	headers.Set("X-Requested-With", "XMLHttpRequest")
	return headers
}

type catalogResponse struct {
	Articles []article `json:"articles"`
}

type article struct {
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	BrandName string `json:"brand_name"`
	URLKey    string `json:"url_key"`
	Available bool   `json:"available"`
	Media     []struct {
		Path string `json:"path"`
	} `json:"media"`
	Price struct {
		Original    string `json:"original"`
		Promotional string `json:"promotional"`
		Currency    string `json:"currency"`
	} `json:"price"`
	Colors []struct {
		Name string `json:"name"`
		Path string `json:"path"`
	} `json:"colors"`
}

// Parse maps the catalog payload to the first complete, allow-listed
// article. Returns nil when nothing qualifies.
func (a *Adapter) Parse(body []byte, item models.PlannedItem, locale string, brandAllowList []string) *models.ScrapedProduct {
	var response catalogResponse
	if err := json.Unmarshal(body, &response); err != nil {
		fmt.Printf("[Zalando] Failed to parse catalog payload: %v\n", err)
		return nil
	}

	var generic struct {
		Articles []map[string]interface{} `json:"articles"`
	}
	_ = json.Unmarshal(body, &generic)

	for i, art := range response.Articles {
		price := parsePrice(art.Price.Promotional)
		if price <= 0 {
			price = parsePrice(art.Price.Original)
		}
		if art.SKU == "" || art.Name == "" || len(art.Media) == 0 || art.Media[0].Path == "" || price <= 0 {
			continue
		}
		if !base.BrandAllowed(art.BrandName, brandAllowList) {
			continue
		}

		availability := "in_stock"
		if !art.Available {
			availability = "out_of_stock"
		}

		var colors []models.ColorVariant
		for _, c := range art.Colors {
			if c.Name == "" {
				continue
			}
			colors = append(colors, models.ColorVariant{Name: c.Name, Image: mediaURL(c.Path)})
		}

		var raw map[string]interface{}
		if i < len(generic.Articles) {
			raw = generic.Articles[i]
		}

		return &models.ScrapedProduct{
			Brand:       art.BrandName,
			Source:      sourceName,
			ExternalID:  base.ExternalID(sourceName, art.SKU),
			Name:        art.Name,
			Description: art.Name,
			Image:       mediaURL(art.Media[0].Path),
			Colors:      colors,
			Detail: models.LocaleDetail{
				Locale:       locale,
				Currency:     art.Price.Currency,
				Price:        price,
				ProductURL:   "https://www.zalando.com/" + strings.TrimPrefix(art.URLKey, "/") + ".html",
				Availability: availability,
			},
			Raw:         raw,
			PlanKey:     item.PlanKey,
			SearchQuery: item.SearchQuery,
			MinPrice:    item.MinPrice,
			MaxPrice:    item.MaxPrice,
		}
	}

	return nil
}

// parsePrice handles formatted amounts like "29,95 €", "29.95" or
// "1.299,00". The last separator is the decimal point; earlier ones are
// thousands grouping.
func parsePrice(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	lastSep := strings.LastIndexAny(s, ".,")
	var cleaned strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			cleaned.WriteRune(r)
		case i == lastSep:
			cleaned.WriteRune('.')
		}
	}
	var value float64
	if _, err := fmt.Sscanf(cleaned.String(), "%f", &value); err != nil {
		return 0
	}
	return value
}

func mediaURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http") {
		return path
	}
	return "https://img01.ztat.net/article/" + strings.TrimPrefix(path, "/")
}
