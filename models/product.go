package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ColorVariant represents a named color option with its swatch/image
type ColorVariant struct {
	Name  string `bson:"name" json:"name"`
	Image string `bson:"image" json:"image"`
}

// LocaleDetail holds the priced listing of a product for one store locale
type LocaleDetail struct {
	Locale       string  `bson:"locale" json:"locale"`
	Currency     string  `bson:"currency" json:"currency"`
	Price        float64 `bson:"price" json:"price"`
	ProductURL   string  `bson:"product_url" json:"product_url"`
	Availability string  `bson:"availability" json:"availability"`
}

// ScrapedProduct is one normalized retailer hit for one planned item.
// It is ephemeral: the catalog store merges it into a CanonicalProduct.
type ScrapedProduct struct {
	Brand       string                 `json:"brand"`
	Source      string                 `json:"source"`
	ExternalID  string                 `json:"external_id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Image       string                 `json:"image"`
	Colors      []ColorVariant         `json:"colors"`
	Detail      LocaleDetail           `json:"detail"`
	Raw         map[string]interface{} `json:"raw,omitempty"`

	// Plan metadata from the item that sourced this hit
	PlanKey     string `json:"plan_key"`
	SearchQuery string `json:"search_query"`
	MinPrice    string `json:"min_price"`
	MaxPrice    string `json:"max_price"`
}

// CanonicalProduct is the deduplicated, persisted product. It is keyed by
// ExternalID and accumulates colors and per-locale details across runs.
type CanonicalProduct struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	ExternalID  string                 `bson:"external_id" json:"external_id"`
	Brand       string                 `bson:"brand" json:"brand"`
	Source      string                 `bson:"source" json:"source"`
	Name        string                 `bson:"name" json:"name"`
	Description string                 `bson:"description,omitempty" json:"description,omitempty"`
	Image       string                 `bson:"image,omitempty" json:"image,omitempty"`
	Colors      []ColorVariant         `bson:"colors,omitempty" json:"colors,omitempty"`
	Details     []LocaleDetail         `bson:"details" json:"details"`
	Metadata    map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt   time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time              `bson:"updated_at" json:"updated_at"`
}

// StoredProduct is the catalog store's receipt for one persisted product
type StoredProduct struct {
	ProductID primitive.ObjectID `json:"product_id"`
	Brand     string             `json:"brand"`
	Source    string             `json:"source"`
}
