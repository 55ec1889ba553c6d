package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OutfitItem binds one persisted product back to its planned slot
type OutfitItem struct {
	ProductID   primitive.ObjectID `bson:"product_id" json:"product_id"`
	PlanKey     string             `bson:"plan_key" json:"plan_key"`
	SearchQuery string             `bson:"search_query" json:"search_query"`
	MinPrice    string             `bson:"min_price" json:"min_price"`
	MaxPrice    string             `bson:"max_price" json:"max_price"`
}

// Outfit is a purchasable set of products assembled from one generation
type Outfit struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       string             `bson:"user_id" json:"user_id"`
	GenerationID primitive.ObjectID `bson:"generation_id" json:"generation_id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Items        []OutfitItem       `bson:"items" json:"items"`
	IsPublic     bool               `bson:"is_public" json:"is_public"` // sharing is a separate mutation, always created private
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
