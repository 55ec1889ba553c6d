package outfit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wearloom/stylist-backend/models"
)

// outfitCollection is the slice of mongo.Collection the assembler needs
type outfitCollection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
}

// Assembler binds persisted products back to the plan that sourced them
// and saves the resulting outfit.
type Assembler struct {
	collection outfitCollection
}

func NewAssembler(collection *mongo.Collection) *Assembler {
	return &Assembler{collection: collection}
}

func newAssemblerWithCollection(collection outfitCollection) *Assembler {
	return &Assembler{collection: collection}
}

// Assemble zips the stored products positionally against the planned
// items to recover each slot's plan metadata, then persists the outfit.
// Outfits are always created private; sharing is a separate mutation.
func (a *Assembler) Assemble(ctx context.Context, userID string, generationID primitive.ObjectID, planned models.PlannedOutfit, stored []models.StoredProduct) (*models.Outfit, error) {
	items := make([]models.OutfitItem, 0, len(stored))
	for i, product := range stored {
		item := models.OutfitItem{ProductID: product.ProductID}
		if i < len(planned.Items) {
			plannedItem := planned.Items[i]
			item.PlanKey = plannedItem.PlanKey
			item.SearchQuery = plannedItem.SearchQuery
			item.MinPrice = plannedItem.MinPrice
			item.MaxPrice = plannedItem.MaxPrice
		}
		items = append(items, item)
	}

	outfit := &models.Outfit{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		GenerationID: generationID,
		Name:         planned.Label,
		Description:  planned.Description,
		Items:        items,
		IsPublic:     false,
		CreatedAt:    time.Now(),
	}

	if _, err := a.collection.InsertOne(ctx, outfit); err != nil {
		return nil, fmt.Errorf("failed to save outfit: %w", err)
	}

	return outfit, nil
}

// FindByID loads one saved outfit for the read API.
func (a *Assembler) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Outfit, error) {
	var out models.Outfit
	if err := a.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
