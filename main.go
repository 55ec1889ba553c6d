package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/wearloom/stylist-backend/api"
	"github.com/wearloom/stylist-backend/catalog"
	"github.com/wearloom/stylist-backend/config"
	"github.com/wearloom/stylist-backend/generator"
	"github.com/wearloom/stylist-backend/outfit"
	"github.com/wearloom/stylist-backend/planner"
	"github.com/wearloom/stylist-backend/sourcing"
	"github.com/wearloom/stylist-backend/utils"
)

func main() {
	config.LoadConfig()

	// Initialize MongoDB
	if err := utils.ConnectMongo(config.MongoURI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	// Wire the generation pipeline
	stylePlanner := planner.New()
	sourcingService := sourcing.NewService(sourcing.NewFetcher())
	catalogStore := catalog.NewStore(utils.GetCollection("products"))
	outfitAssembler := outfit.NewAssembler(utils.GetCollection("outfits"))
	recordStore := generator.NewMongoRecordStore(utils.GetCollection("generations"))

	orchestrator := generator.NewOrchestrator(
		stylePlanner,
		sourcingService,
		catalogStore,
		outfitAssembler,
		recordStore,
		config.DefaultLocale,
	)

	handler := api.NewHandler(orchestrator, recordStore, outfitAssembler, catalogStore)

	// CORS Middleware
	corsMiddleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/generate", corsMiddleware(handler.GenerateHandler))
	mux.HandleFunc("/generations", corsMiddleware(handler.GetGenerationHandler))
	mux.HandleFunc("/outfits", corsMiddleware(handler.GetOutfitHandler))

	port := config.Port
	fmt.Printf("Server starting on port %s...\n", port)
	fmt.Printf("Usage: curl -X POST \"http://localhost:%s/generate\" -d '{\"user_id\":\"...\",\"profile_id\":\"...\"}'\n", port)
	if err := http.ListenAndServe(":"+port, utils.LatencyMiddleware(mux)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
