package generator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wearloom/stylist-backend/models"
	"github.com/wearloom/stylist-backend/sourcing"
)

type fakePlanner struct {
	plan *models.StylePlan
	err  error
}

func (f *fakePlanner) Plan(ctx context.Context, form models.GenerationRequest, profile models.StyleProfile) (*models.StylePlan, error) {
	return f.plan, f.err
}

// fakeSourcer hits items whose plan key appears in the hits set and
// records the allow-list each item was sourced with.
type fakeSourcer struct {
	hits       map[string]bool
	allowLists map[string][]string
}

func (f *fakeSourcer) BuildRequests(item models.PlannedItem, gender, locale string, brandAllowList []string) []sourcing.SourceRequest {
	if f.allowLists == nil {
		f.allowLists = map[string][]string{}
	}
	f.allowLists[item.PlanKey] = brandAllowList
	return []sourcing.SourceRequest{{Source: "asos", PrimaryURL: "u", Locale: locale, Item: item}}
}

func (f *fakeSourcer) FindOne(ctx context.Context, requests []sourcing.SourceRequest) *models.ScrapedProduct {
	item := requests[0].Item
	if !f.hits[item.PlanKey] {
		return nil
	}
	return &models.ScrapedProduct{
		Source:     "asos",
		ExternalID: "asos-" + item.PlanKey,
		Name:       item.SearchQuery,
		PlanKey:    item.PlanKey,
	}
}

type fakeCatalog struct {
	err       error
	persisted []models.ScrapedProduct
}

func (f *fakeCatalog) Persist(ctx context.Context, scraped []models.ScrapedProduct) ([]models.StoredProduct, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.persisted = scraped
	stored := make([]models.StoredProduct, 0, len(scraped))
	for _, s := range scraped {
		stored = append(stored, models.StoredProduct{ProductID: primitive.NewObjectID(), Brand: s.Brand, Source: s.Source})
	}
	return stored, nil
}

type fakeAssembler struct {
	err     error
	planned models.PlannedOutfit
	stored  []models.StoredProduct
}

func (f *fakeAssembler) Assemble(ctx context.Context, userID string, generationID primitive.ObjectID, planned models.PlannedOutfit, stored []models.StoredProduct) (*models.Outfit, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.planned = planned
	f.stored = stored
	return &models.Outfit{ID: primitive.NewObjectID(), UserID: userID, GenerationID: generationID, CreatedAt: time.Now()}, nil
}

type fakeRecords struct {
	createErr error

	created      bool
	completed    int
	failed       int
	failedReason string
	plan         *models.StylePlan
	outfitID     primitive.ObjectID
	productIDs   []primitive.ObjectID
}

func (f *fakeRecords) Create(ctx context.Context, userID string, form models.GenerationRequest) (primitive.ObjectID, error) {
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	f.created = true
	return primitive.NewObjectID(), nil
}

func (f *fakeRecords) MarkCompleted(ctx context.Context, id primitive.ObjectID, plan *models.StylePlan, outfitID primitive.ObjectID, productIDs []primitive.ObjectID) error {
	f.completed++
	f.plan = plan
	f.outfitID = outfitID
	f.productIDs = productIDs
	return nil
}

func (f *fakeRecords) MarkFailed(ctx context.Context, id primitive.ObjectID, reason string) error {
	f.failed++
	f.failedReason = reason
	return nil
}

func weddingPlan() *models.StylePlan {
	return &models.StylePlan{
		Outfits: []models.PlannedOutfit{
			{
				Label:       "Elegant Wedding Guest",
				Description: "A refined look",
				Items: []models.PlannedItem{
					{SearchQuery: "navy slim fit blazer", PlanKey: "blazer", PreferredBrand: "any"},
					{SearchQuery: "white dress shirt", PlanKey: "shirt", PreferredBrand: "any"},
					{SearchQuery: "grey wool trousers", PlanKey: "trousers", PreferredBrand: "any"},
					{SearchQuery: "brown leather loafers", PlanKey: "loafers", PreferredBrand: "any"},
				},
			},
		},
	}
}

type fixture struct {
	planner   *fakePlanner
	sourcer   *fakeSourcer
	catalog   *fakeCatalog
	assembler *fakeAssembler
	records   *fakeRecords
}

func newFixture() *fixture {
	return &fixture{
		planner:   &fakePlanner{plan: weddingPlan()},
		sourcer:   &fakeSourcer{hits: map[string]bool{"blazer": true, "shirt": true, "trousers": true, "loafers": true}},
		catalog:   &fakeCatalog{},
		assembler: &fakeAssembler{},
		records:   &fakeRecords{},
	}
}

func (f *fixture) orchestrator() *Orchestrator {
	return NewOrchestrator(f.planner, f.sourcer, f.catalog, f.assembler, f.records, "en-US")
}

func TestRunPartialSourcingStillCompletes(t *testing.T) {
	f := newFixture()
	f.sourcer.hits["loafers"] = false

	result, err := f.orchestrator().Run(context.Background(), "user-1", models.GenerationRequest{Occasion: "wedding"}, models.StyleProfile{Gender: "male"})
	require.NoError(t, err)

	assert.False(t, result.GenerationID.IsZero())
	assert.False(t, result.OutfitID.IsZero())

	// The miss is skipped, not fatal; three of four items survive
	assert.Len(t, f.catalog.persisted, 3)
	assert.Len(t, f.assembler.stored, 3)
	assert.Len(t, f.records.productIDs, 3)

	assert.Equal(t, 1, f.records.completed)
	assert.Equal(t, 0, f.records.failed)
	assert.Equal(t, result.OutfitID, f.records.outfitID)
	require.NotNil(t, f.records.plan)
	assert.Len(t, f.records.plan.Outfits, 1)
}

func TestRunUsesOnlyFirstPlannedOutfit(t *testing.T) {
	f := newFixture()
	second := weddingPlan().Outfits[0]
	second.Label = "Backup Look"
	f.planner.plan.Outfits = append(f.planner.plan.Outfits, second)

	_, err := f.orchestrator().Run(context.Background(), "user-1", models.GenerationRequest{}, models.StyleProfile{})
	require.NoError(t, err)

	assert.Equal(t, "Elegant Wedding Guest", f.assembler.planned.Label)
	// The full plan still lands on the audit record
	assert.Len(t, f.records.plan.Outfits, 2)
}

func TestRunPlannerReturnsNoOutfits(t *testing.T) {
	f := newFixture()
	f.planner.plan = &models.StylePlan{}

	result, err := f.orchestrator().Run(context.Background(), "user-1", models.GenerationRequest{}, models.StyleProfile{})
	require.Error(t, err)

	assert.False(t, result.GenerationID.IsZero())
	assert.True(t, result.OutfitID.IsZero())
	assert.Equal(t, 1, f.records.failed)
	assert.Equal(t, 0, f.records.completed)
	assert.Equal(t, "AI did not return any outfits.", f.records.failedReason)
}

func TestRunNoProductsSourced(t *testing.T) {
	f := newFixture()
	f.sourcer.hits = map[string]bool{}

	_, err := f.orchestrator().Run(context.Background(), "user-1", models.GenerationRequest{}, models.StyleProfile{})
	require.Error(t, err)

	assert.Equal(t, 1, f.records.failed)
	assert.Equal(t, 0, f.records.completed)
	assert.Equal(t, "Could not find any products for the generated outfit", f.records.failedReason)
}

func TestRunPlannerError(t *testing.T) {
	f := newFixture()
	f.planner.plan = nil
	f.planner.err = errors.New("model quota exceeded")

	_, err := f.orchestrator().Run(context.Background(), "user-1", models.GenerationRequest{}, models.StyleProfile{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model quota exceeded")

	assert.Equal(t, 1, f.records.failed)
	assert.Equal(t, 0, f.records.completed)
	assert.Equal(t, "model quota exceeded", f.records.failedReason)
}

func TestRunCatalogError(t *testing.T) {
	f := newFixture()
	f.catalog.err = errors.New("server selection timeout")

	_, err := f.orchestrator().Run(context.Background(), "user-1", models.GenerationRequest{}, models.StyleProfile{})
	require.Error(t, err)
	assert.Equal(t, 1, f.records.failed)
	assert.Equal(t, "server selection timeout", f.records.failedReason)
}

func TestRunCreateRecordError(t *testing.T) {
	f := newFixture()
	f.records.createErr = errors.New("connection refused")

	_, err := f.orchestrator().Run(context.Background(), "user-1", models.GenerationRequest{}, models.StyleProfile{})
	require.Error(t, err)

	// No record exists, so neither terminal transition may fire
	assert.Equal(t, 0, f.records.failed)
	assert.Equal(t, 0, f.records.completed)
}

func TestRunBrandAllowLists(t *testing.T) {
	f := newFixture()
	f.planner.plan.Outfits[0].Items[0].PreferredBrand = "Topman"

	form := models.GenerationRequest{PreferredBrand: "zara"}
	_, err := f.orchestrator().Run(context.Background(), "user-1", form, models.StyleProfile{})
	require.NoError(t, err)

	// Item preference stacks on the form preference; "any" adds nothing
	assert.Equal(t, []string{"zara", "Topman"}, f.sourcer.allowLists["blazer"])
	assert.Equal(t, []string{"zara"}, f.sourcer.allowLists["shirt"])
}
