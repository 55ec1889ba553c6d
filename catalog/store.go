package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wearloom/stylist-backend/models"
	"github.com/wearloom/stylist-backend/utils"
)

const imageFolder = "product_images"

// productCollection is the slice of mongo.Collection the store needs
type productCollection interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

type rehostFunc func(ctx context.Context, urls []string, folderPrefix string) map[string]string

// Store owns durable upsert/merge of canonical products, including the
// re-hosting of their images.
type Store struct {
	collection productCollection
	rehost     rehostFunc

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(collection *mongo.Collection) *Store {
	return &Store{
		collection: collection,
		rehost:     utils.RehostImages,
		locks:      make(map[string]*sync.Mutex),
	}
}

func newStoreWithCollection(collection productCollection, rehost rehostFunc) *Store {
	return &Store{
		collection: collection,
		rehost:     rehost,
		locks:      make(map[string]*sync.Mutex),
	}
}

// Persist upserts the scraped products one at a time in sourced order and
// returns a receipt per product.
func (s *Store) Persist(ctx context.Context, scraped []models.ScrapedProduct) ([]models.StoredProduct, error) {
	stored := make([]models.StoredProduct, 0, len(scraped))
	for _, product := range scraped {
		receipt, err := s.persistOne(ctx, product)
		if err != nil {
			return nil, fmt.Errorf("failed to persist product %s: %w", product.ExternalID, err)
		}
		stored = append(stored, receipt)
	}
	return stored, nil
}

func (s *Store) persistOne(ctx context.Context, in models.ScrapedProduct) (models.StoredProduct, error) {
	in = s.rehostImages(ctx, in)

	// Serialize writes per externalId so two concurrent generations
	// merging the same product cannot interleave read-modify-write.
	lock := s.lockFor(in.ExternalID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now()

	var existing models.CanonicalProduct
	err := s.collection.FindOne(ctx, bson.M{"external_id": in.ExternalID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		doc := newCanonical(in, now)
		doc.ID = primitive.NewObjectID()
		if _, err := s.collection.InsertOne(ctx, doc); err != nil {
			return models.StoredProduct{}, err
		}
		return models.StoredProduct{ProductID: doc.ID, Brand: doc.Brand, Source: doc.Source}, nil
	}
	if err != nil {
		return models.StoredProduct{}, err
	}

	merged := merge(existing, in, now)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": existing.ID}, merged); err != nil {
		return models.StoredProduct{}, err
	}

	return models.StoredProduct{ProductID: existing.ID, Brand: merged.Brand, Source: merged.Source}, nil
}

// rehostImages copies the main and color images to durable storage,
// replacing each URL with its object key. Best effort: a failed re-host
// keeps the original remote URL and never aborts the persist.
func (s *Store) rehostImages(ctx context.Context, in models.ScrapedProduct) models.ScrapedProduct {
	urls := []string{in.Image}
	for _, color := range in.Colors {
		urls = append(urls, color.Image)
	}

	urlToKey := s.rehost(ctx, urls, imageFolder)
	if len(urlToKey) == 0 {
		return in
	}

	if key, ok := urlToKey[in.Image]; ok {
		in.Image = key
	}
	colors := make([]models.ColorVariant, len(in.Colors))
	copy(colors, in.Colors)
	for i := range colors {
		if key, ok := urlToKey[colors[i].Image]; ok {
			colors[i].Image = key
		}
	}
	in.Colors = colors
	return in
}

// FindByIDs loads persisted products for an outfit read
func (s *Store) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.CanonicalProduct, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	var products []models.CanonicalProduct
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (s *Store) lockFor(externalID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lock, ok := s.locks[externalID]; ok {
		return lock
	}
	lock := &sync.Mutex{}
	s.locks[externalID] = lock
	return lock
}
