package sourcing

import (
	"net/http"

	"github.com/wearloom/stylist-backend/models"
	"github.com/wearloom/stylist-backend/sourcing/base"
)

// Adapter holds the retailer-specific request building and response
// parsing logic. Parsers must return nil on missing mandatory fields
// rather than erroring, so one malformed record never aborts a batch.
type Adapter interface {
	// Name identifies the retailer, used as the product Source
	Name() string
	// SearchURL builds a search endpoint URL for the given query
	SearchURL(query string, opts base.SearchOptions) string
	// Headers returns the request headers this retailer expects
	Headers() http.Header
	// Parse maps the retailer's native JSON payload to the first
	// acceptable hit, or nil when there is none
	Parse(body []byte, item models.PlannedItem, locale string, brandAllowList []string) *models.ScrapedProduct
}
