package generator

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wearloom/stylist-backend/models"
)

// MongoRecordStore persists generation records. Terminal transitions
// filter on the pending status so a record moves pending -> completed or
// pending -> failed exactly once.
type MongoRecordStore struct {
	collection *mongo.Collection
}

func NewMongoRecordStore(collection *mongo.Collection) *MongoRecordStore {
	return &MongoRecordStore{collection: collection}
}

func (s *MongoRecordStore) Create(ctx context.Context, userID string, form models.GenerationRequest) (primitive.ObjectID, error) {
	now := time.Now()
	record := models.GenerationRecord{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Form:      form,
		Status:    models.GenerationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.collection.InsertOne(ctx, record); err != nil {
		return primitive.NilObjectID, err
	}
	return record.ID, nil
}

func (s *MongoRecordStore) MarkCompleted(ctx context.Context, id primitive.ObjectID, plan *models.StylePlan, outfitID primitive.ObjectID, productIDs []primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{
		"status":              models.GenerationCompleted,
		"plan":                plan,
		"outfit_id":           outfitID,
		"scraped_product_ids": productIDs,
		"updated_at":          time.Now(),
	}}
	return s.transition(ctx, id, update)
}

func (s *MongoRecordStore) MarkFailed(ctx context.Context, id primitive.ObjectID, reason string) error {
	update := bson.M{"$set": bson.M{
		"status":         models.GenerationFailed,
		"failure_reason": reason,
		"updated_at":     time.Now(),
	}}
	return s.transition(ctx, id, update)
}

func (s *MongoRecordStore) transition(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.GenerationPending},
		update,
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("generation %s is not pending", id.Hex())
	}
	return nil
}

// FindByID loads one generation record for audit lookups.
func (s *MongoRecordStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.GenerationRecord, error) {
	var record models.GenerationRecord
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record); err != nil {
		return nil, err
	}
	return &record, nil
}
