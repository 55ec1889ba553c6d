package asos

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/wearloom/stylist-backend/models"
	"github.com/wearloom/stylist-backend/sourcing/base"
)

const sourceName = "asos"

// Gendered section attributes for the search API
const (
	sectionMen   = "8410"
	sectionWomen = "8392"
)

// Adapter queries the ASOS product search API
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
	store, lang, currency := base.LocaleStore(opts.Locale)

	params := url.Values{}
	params.Set("q", query)
	params.Set("store", store)
	params.Set("lang", lang)
	params.Set("currency", currency)
	params.Set("limit", "10")
	if ceiling := base.PriceCeiling(opts.MaxPrice); ceiling > 0 {
		params.Set("priceMax", fmt.Sprintf("%d", ceiling))
	}
	if section := genderSection(opts.Gender); section != "" {
		params.Set("attribute_1047", section)
	}

	return "https://www.asos.com/api/product/search/v2/?" + params.Encode()
}

func genderSection(gender string) string {
	switch strings.ToLower(gender) {
	case "male", "men", "man":
		return sectionMen
	case "female", "women", "woman":
		return sectionWomen
	}
	return ""
}

func (a *Adapter) Headers() http.Header {
	headers := http.Header{}
	headers.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	headers.Set("Accept", "application/json")
	headers.Set("Accept-Language", "en-US,en;q=0.9")
	return headers
}

type searchResponse struct {
	Products []searchHit `json:"products"`
}

type searchHit struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price struct {
		Current struct {
			Value float64 `json:"value"`
		} `json:"current"`
		Currency string `json:"currency"`
	} `json:"price"`
	Colour              string   `json:"colour"`
	BrandName           string   `json:"brandName"`
	URL                 string   `json:"url"`
	ImageURL            string   `json:"imageUrl"`
	AdditionalImageURLs []string `json:"additionalImageUrls"`
}

// Parse maps the search payload to the first hit that has all mandatory
// fields and passes the brand allow-list. Returns nil on no match.
func (a *Adapter) Parse(body []byte, item models.PlannedItem, locale string, brandAllowList []string) *models.ScrapedProduct {
	var response searchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		fmt.Printf("[ASOS] Failed to parse search payload: %v\n", err)
		return nil
	}

	// Generic decode kept alongside for the raw payload of the chosen hit
	var generic struct {
		Products []map[string]interface{} `json:"products"`
	}
	_ = json.Unmarshal(body, &generic)

	for i, hit := range response.Products {
		if hit.ID == 0 || hit.Name == "" || hit.ImageURL == "" || hit.Price.Current.Value <= 0 {
			continue
		}
		if !base.BrandAllowed(hit.BrandName, brandAllowList) {
			continue
		}

		image := absoluteURL(hit.ImageURL)
		colors := []models.ColorVariant{}
		if hit.Colour != "" {
			colors = append(colors, models.ColorVariant{Name: hit.Colour, Image: image})
		}
		for _, extra := range hit.AdditionalImageURLs {
			if hit.Colour != "" && extra != "" {
				colors = append(colors, models.ColorVariant{Name: hit.Colour, Image: absoluteURL(extra)})
			}
		}

		var raw map[string]interface{}
		if i < len(generic.Products) {
			raw = generic.Products[i]
		}

		return &models.ScrapedProduct{
			Brand:       hit.BrandName,
			Source:      sourceName,
			ExternalID:  base.ExternalID(sourceName, hit.ID),
			Name:        hit.Name,
			Description: hit.Name,
			Image:       image,
			Colors:      colors,
			Detail: models.LocaleDetail{
				Locale:       locale,
				Currency:     hit.Price.Currency,
				Price:        hit.Price.Current.Value,
				ProductURL:   absoluteURL(hit.URL),
				Availability: "in_stock",
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

func absoluteURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http") {
		return path
	}
	if strings.HasPrefix(path, "//") {
		return "https:" + path
	}
	return "https://www.asos.com/" + strings.TrimPrefix(path, "/")
}
