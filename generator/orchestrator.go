package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wearloom/stylist-backend/models"
	"github.com/wearloom/stylist-backend/sourcing"
	"github.com/wearloom/stylist-backend/utils"
)

// Failure reasons recorded on the generation record
const (
	reasonNoOutfits  = "AI did not return any outfits."
	reasonNoProducts = "Could not find any products for the generated outfit"
)

// Planner produces a validated style plan for the intake form
type Planner interface {
	Plan(ctx context.Context, form models.GenerationRequest, profile models.StyleProfile) (*models.StylePlan, error)
}

// Sourcer finds one real product per planned item
type Sourcer interface {
	BuildRequests(item models.PlannedItem, gender, locale string, brandAllowList []string) []sourcing.SourceRequest
	FindOne(ctx context.Context, requests []sourcing.SourceRequest) *models.ScrapedProduct
}

// Catalog durably persists scraped products
type Catalog interface {
	Persist(ctx context.Context, scraped []models.ScrapedProduct) ([]models.StoredProduct, error)
}

// Assembler builds and saves the outfit from persisted products
type Assembler interface {
	Assemble(ctx context.Context, userID string, generationID primitive.ObjectID, planned models.PlannedOutfit, stored []models.StoredProduct) (*models.Outfit, error)
}

// RecordStore owns the generation audit record state machine
type RecordStore interface {
	Create(ctx context.Context, userID string, form models.GenerationRequest) (primitive.ObjectID, error)
	MarkCompleted(ctx context.Context, id primitive.ObjectID, plan *models.StylePlan, outfitID primitive.ObjectID, productIDs []primitive.ObjectID) error
	MarkFailed(ctx context.Context, id primitive.ObjectID, reason string) error
}

// Result carries the ids of a successful generation
type Result struct {
	GenerationID primitive.ObjectID `json:"generation_id"`
	OutfitID     primitive.ObjectID `json:"outfit_id"`
}

// Orchestrator drives the end-to-end outfit generation pipeline
type Orchestrator struct {
	planner   Planner
	sourcer   Sourcer
	catalog   Catalog
	assembler Assembler
	records   RecordStore
	locale    string
}

func NewOrchestrator(planner Planner, sourcer Sourcer, catalog Catalog, assembler Assembler, records RecordStore, locale string) *Orchestrator {
	return &Orchestrator{
		planner:   planner,
		sourcer:   sourcer,
		catalog:   catalog,
		assembler: assembler,
		records:   records,
		locale:    locale,
	}
}

// Run executes one generation. The audit record is created before any
// external call; every failure after that point is written onto it once
// and returned. A started run cannot be aborted mid-flight.
func (o *Orchestrator) Run(ctx context.Context, userID string, form models.GenerationRequest, profile models.StyleProfile) (Result, error) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Outfit Generation]")

	generationID, err := o.records.Create(ctx, userID, form)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create generation record: %w", err)
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Generation started: %s", generationID.Hex()))

	result, err := o.run(ctx, &logMessageBuilder, generationID, userID, form, profile)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Generation failed: %v", err))
		if markErr := o.records.MarkFailed(ctx, generationID, err.Error()); markErr != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to record failure: %v", markErr))
		}
		return Result{GenerationID: generationID}, err
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Generation completed: outfit %s", result.OutfitID.Hex()))
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, logMessageBuilder *strings.Builder, generationID primitive.ObjectID, userID string, form models.GenerationRequest, profile models.StyleProfile) (Result, error) {
	plan, err := o.planner.Plan(ctx, form, profile)
	if err != nil {
		return Result{}, err
	}
	if len(plan.Outfits) == 0 {
		return Result{}, errors.New(reasonNoOutfits)
	}

	// Only the first planned outfit is used even when the model proposes
	// several; the full plan still lands on the audit record.
	chosen := plan.Outfits[0]
	utils.AddToLogMessage(logMessageBuilder, fmt.Sprintf("Plan: %q with %d items", chosen.Label, len(chosen.Items)))

	// Items run sequentially to bound outbound load; a miss is a skip,
	// not an error.
	var scraped []models.ScrapedProduct
	for _, item := range chosen.Items {
		requests := o.sourcer.BuildRequests(item, profile.Gender, o.locale, allowListFor(form, item))
		product := o.sourcer.FindOne(ctx, requests)
		if product == nil {
			utils.AddToLogMessage(logMessageBuilder, fmt.Sprintf("No match for item %q", item.PlanKey))
			continue
		}
		utils.AddToLogMessage(logMessageBuilder, fmt.Sprintf("Sourced %q from %s", item.PlanKey, product.Source))
		scraped = append(scraped, *product)
	}
	if len(scraped) == 0 {
		return Result{}, errors.New(reasonNoProducts)
	}

	stored, err := o.catalog.Persist(ctx, scraped)
	if err != nil {
		return Result{}, err
	}

	outfitDoc, err := o.assembler.Assemble(ctx, userID, generationID, chosen, stored)
	if err != nil {
		return Result{}, err
	}

	productIDs := make([]primitive.ObjectID, 0, len(stored))
	for _, product := range stored {
		productIDs = append(productIDs, product.ProductID)
	}

	if err := o.records.MarkCompleted(ctx, generationID, plan, outfitDoc.ID, productIDs); err != nil {
		return Result{}, err
	}

	return Result{GenerationID: generationID, OutfitID: outfitDoc.ID}, nil
}

// allowListFor combines the form's preferred brand with the item's own
// preference. "any" from the model means no constraint.
func allowListFor(form models.GenerationRequest, item models.PlannedItem) []string {
	var allowList []string
	if form.PreferredBrand != "" {
		allowList = append(allowList, form.PreferredBrand)
	}
	if item.PreferredBrand != "" && !strings.EqualFold(item.PreferredBrand, "any") {
		allowList = append(allowList, item.PreferredBrand)
	}
	return allowList
}
