package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Generation statuses
const (
	GenerationPending   = "pending"
	GenerationCompleted = "completed"
	GenerationFailed    = "failed"
)

// GenerationRequest is the intake form for one outfit generation
type GenerationRequest struct {
	Occasion       string `bson:"occasion" json:"occasion"`
	PreferredBrand string `bson:"preferred_brand" json:"preferred_brand"`
	Budget         string `bson:"budget" json:"budget"`
	Description    string `bson:"description" json:"description"`
}

// GenerationRecord is the durable audit record for one pipeline run.
// Status moves pending -> completed or pending -> failed exactly once.
type GenerationRecord struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID            string               `bson:"user_id" json:"user_id"`
	Form              GenerationRequest    `bson:"form" json:"form"`
	Status            string               `bson:"status" json:"status"`
	Plan              *StylePlan           `bson:"plan,omitempty" json:"plan,omitempty"`
	FailureReason     string               `bson:"failure_reason,omitempty" json:"failure_reason,omitempty"`
	OutfitID          primitive.ObjectID   `bson:"outfit_id,omitempty" json:"outfit_id,omitempty"`
	ScrapedProductIDs []primitive.ObjectID `bson:"scraped_product_ids,omitempty" json:"scraped_product_ids,omitempty"`
	CreatedAt         time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time            `bson:"updated_at" json:"updated_at"`
}
