package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wearloom/stylist-backend/generator"
	"github.com/wearloom/stylist-backend/models"
	"github.com/wearloom/stylist-backend/utils"
)

const profileCollection = "style_profiles"

// GenerateRequest is the request body for outfit generation
type GenerateRequest struct {
	UserID         string `json:"user_id"`
	ProfileID      string `json:"profile_id"`
	Occasion       string `json:"occasion"`
	PreferredBrand string `json:"preferred_brand"`
	Budget         string `json:"budget"`
	Description    string `json:"description"`
}

// Handler exposes the generation pipeline over HTTP
type Handler struct {
	orchestrator *generator.Orchestrator
	records      *generator.MongoRecordStore
	outfits      outfitReader
	products     productReader
}

func NewHandler(orchestrator *generator.Orchestrator, records *generator.MongoRecordStore, outfits outfitReader, products productReader) *Handler {
	return &Handler{orchestrator: orchestrator, records: records, outfits: outfits, products: products}
}

// GenerateHandler handles the outfit generation request
func (h *Handler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Generate API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.ProfileID == "" {
		utils.RespondError(w, &logMessageBuilder, "user_id and profile_id are required", http.StatusBadRequest)
		return
	}

	profileObjID, err := primitive.ObjectIDFromHex(req.ProfileID)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid profile ID", http.StatusBadRequest)
		return
	}

	lookupCtx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var profile models.StyleProfile
	err = utils.GetCollection(profileCollection).FindOne(lookupCtx, bson.M{"_id": profileObjID}).Decode(&profile)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Style profile not found", http.StatusNotFound)
		return
	}

	form := models.GenerationRequest{
		Occasion:       req.Occasion,
		PreferredBrand: req.PreferredBrand,
		Budget:         req.Budget,
		Description:    req.Description,
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Generation request: user=%s occasion=%q", req.UserID, req.Occasion))

	// A started generation runs to completion even if the client goes
	// away, so the pipeline gets its own context.
	runCtx, cancelRun := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancelRun()

	result, err := h.orchestrator.Run(runCtx, req.UserID, form, profile)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

// GetGenerationHandler returns the audit record for one generation
func (h *Handler) GetGenerationHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Get Generation API]")

	id := r.URL.Query().Get("id")
	if id == "" {
		utils.RespondError(w, &logMessageBuilder, "Please provide an 'id' query parameter", http.StatusBadRequest)
		return
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid generation ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	record, err := h.records.FindByID(ctx, objID)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Generation not found", http.StatusNotFound)
		return
	}

	utils.RespondJSON(w, http.StatusOK, record)
}
