package outfit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wearloom/stylist-backend/models"
)

type fakeCollection struct {
	inserted interface{}
	err      error
}

func (f *fakeCollection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inserted = document
	return &mongo.InsertOneResult{}, nil
}

func (f *fakeCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	if f.inserted == nil {
		return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
	}
	return mongo.NewSingleResultFromDocument(f.inserted, nil, nil)
}

func plannedFixture() models.PlannedOutfit {
	return models.PlannedOutfit{
		Label:       "Elegant Wedding Guest",
		Description: "A refined look for a formal wedding",
		Items: []models.PlannedItem{
			{SearchQuery: "navy slim fit blazer", PlanKey: "navy blazer", MinPrice: "80", MaxPrice: "150"},
			{SearchQuery: "white dress shirt", PlanKey: "white shirt", MinPrice: "25", MaxPrice: "60"},
			{SearchQuery: "grey wool trousers", PlanKey: "grey trousers", MinPrice: "40", MaxPrice: "90"},
		},
	}
}

func TestAssembleBindsPlanMetadata(t *testing.T) {
	inserter := &fakeCollection{}
	assembler := newAssemblerWithCollection(inserter)

	generationID := primitive.NewObjectID()
	stored := []models.StoredProduct{
		{ProductID: primitive.NewObjectID(), Brand: "Topman", Source: "asos"},
		{ProductID: primitive.NewObjectID(), Brand: "Mango", Source: "zalando"},
	}

	result, err := assembler.Assemble(context.Background(), "user-1", generationID, plannedFixture(), stored)
	require.NoError(t, err)

	assert.Equal(t, "user-1", result.UserID)
	assert.Equal(t, generationID, result.GenerationID)
	assert.Equal(t, "Elegant Wedding Guest", result.Name)
	assert.False(t, result.IsPublic)
	assert.False(t, result.ID.IsZero())

	require.Len(t, result.Items, 2)
	assert.Equal(t, stored[0].ProductID, result.Items[0].ProductID)
	assert.Equal(t, "navy blazer", result.Items[0].PlanKey)
	assert.Equal(t, "navy slim fit blazer", result.Items[0].SearchQuery)
	assert.Equal(t, "white shirt", result.Items[1].PlanKey)

	assert.Same(t, result, inserter.inserted)
}

func TestAssembleMoreProductsThanPlanned(t *testing.T) {
	assembler := newAssemblerWithCollection(&fakeCollection{})

	planned := plannedFixture()
	planned.Items = planned.Items[:1]
	stored := []models.StoredProduct{
		{ProductID: primitive.NewObjectID()},
		{ProductID: primitive.NewObjectID()},
	}

	result, err := assembler.Assemble(context.Background(), "user-1", primitive.NewObjectID(), planned, stored)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "navy blazer", result.Items[0].PlanKey)
	assert.Empty(t, result.Items[1].PlanKey)
}

func TestFindByID(t *testing.T) {
	assembler := newAssemblerWithCollection(&fakeCollection{})

	saved, err := assembler.Assemble(context.Background(), "user-1", primitive.NewObjectID(), plannedFixture(), []models.StoredProduct{{ProductID: primitive.NewObjectID()}})
	require.NoError(t, err)

	loaded, err := assembler.FindByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)
	assert.Equal(t, "Elegant Wedding Guest", loaded.Name)
}

func TestFindByIDMissing(t *testing.T) {
	assembler := newAssemblerWithCollection(&fakeCollection{})

	_, err := assembler.FindByID(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestAssembleInsertFailure(t *testing.T) {
	assembler := newAssemblerWithCollection(&fakeCollection{err: errors.New("write concern")})

	_, err := assembler.Assemble(context.Background(), "user-1", primitive.NewObjectID(), plannedFixture(), []models.StoredProduct{{ProductID: primitive.NewObjectID()}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save outfit")
}
