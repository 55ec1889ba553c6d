package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wearloom/stylist-backend/models"
	"github.com/wearloom/stylist-backend/utils"
)

// outfitReader loads saved outfits
type outfitReader interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Outfit, error)
}

// productReader loads persisted catalog products
type productReader interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.CanonicalProduct, error)
}

// OutfitResponse pairs a saved outfit with its resolved products
type OutfitResponse struct {
	Outfit   *models.Outfit            `json:"outfit"`
	Products []models.CanonicalProduct `json:"products"`
}

// GetOutfitHandler returns one outfit with its products, presigning
// stored image keys on the way out.
func (h *Handler) GetOutfitHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Get Outfit API]")

	id := r.URL.Query().Get("id")
	if id == "" {
		utils.RespondError(w, &logMessageBuilder, "Please provide an 'id' query parameter", http.StatusBadRequest)
		return
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid outfit ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	outfitDoc, err := h.outfits.FindByID(ctx, objID)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Outfit not found", http.StatusNotFound)
		return
	}

	ids := make([]primitive.ObjectID, 0, len(outfitDoc.Items))
	for _, item := range outfitDoc.Items {
		ids = append(ids, item.ProductID)
	}

	var products []models.CanonicalProduct
	if len(ids) > 0 {
		products, err = h.products.FindByIDs(ctx, ids)
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, "Failed to load outfit products", http.StatusInternalServerError)
			return
		}
	}
	presignProductImages(ctx, products)

	utils.RespondJSON(w, http.StatusOK, OutfitResponse{Outfit: outfitDoc, Products: products})
}

// presignProductImages swaps stored object keys for presigned read URLs
// in place. Remote URLs kept by the re-host fallback pass through as is.
func presignProductImages(ctx context.Context, products []models.CanonicalProduct) {
	for i := range products {
		urls := []string{products[i].Image}
		for _, color := range products[i].Colors {
			urls = append(urls, color.Image)
		}

		presigned := utils.PresignImageURLs(ctx, urls)
		products[i].Image = presigned[0]
		colors := make([]models.ColorVariant, len(products[i].Colors))
		copy(colors, products[i].Colors)
		for j := range colors {
			colors[j].Image = presigned[j+1]
		}
		products[i].Colors = colors
	}
}
