package items

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xyz-asif/trackback/internal/models"
	apperrors "github.com/xyz-asif/trackback/pkg/errors"
)

// Repository stores item reports. Listings come back in insertion order.
type Repository interface {
	Insert(ctx context.Context, item *models.Item) error
	All(ctx context.Context) ([]models.Item, error)
	// Search matches name and, when non-empty, location as case-insensitive
	// substrings.
	Search(ctx context.Context, query, location string) ([]models.Item, error)
	ByReporter(ctx context.Context, username string) ([]models.Item, error)
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(ctx context.Context, db *mongo.Database) (*MongoRepository, error) {
	collection := db.Collection("items")

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "reporter", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("create items indexes: %w", err)
	}

	return &MongoRepository{collection: collection}, nil
}

func (r *MongoRepository) Insert(ctx context.Context, item *models.Item) error {
	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: item %s", apperrors.ErrDuplicate, item.ID)
		}
		return err
	}
	return nil
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M) ([]models.Item, error) {
	// createdAt is assigned on insert, so it orders by insertion.
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []models.Item{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) All(ctx context.Context) ([]models.Item, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoRepository) Search(ctx context.Context, query, location string) ([]models.Item, error) {
	filter := bson.M{}
	if query != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
	}
	if location != "" {
		filter["location"] = bson.M{"$regex": regexp.QuoteMeta(location), "$options": "i"}
	}
	return r.find(ctx, filter)
}

func (r *MongoRepository) ByReporter(ctx context.Context, username string) ([]models.Item, error) {
	return r.find(ctx, bson.M{"reporter": username})
}

// MemoryRepository keeps reports in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []models.Item
	ids   map[string]struct{}
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{ids: make(map[string]struct{})}
}

func (r *MemoryRepository) Insert(_ context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[item.ID]; ok {
		return fmt.Errorf("%w: item %s", apperrors.ErrDuplicate, item.ID)
	}
	r.ids[item.ID] = struct{}{}
	r.items = append(r.items, *item)
	return nil
}

func (r *MemoryRepository) filter(keep func(models.Item) bool) []models.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Item{}
	for _, it := range r.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func (r *MemoryRepository) All(context.Context) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Item{}, r.items...), nil
}

func (r *MemoryRepository) Search(_ context.Context, query, location string) ([]models.Item, error) {
	q, loc := strings.ToLower(query), strings.ToLower(location)
	return r.filter(func(it models.Item) bool {
		if !strings.Contains(strings.ToLower(it.Name), q) {
			return false
		}
		return loc == "" || strings.Contains(strings.ToLower(it.Location), loc)
	}), nil
}

func (r *MemoryRepository) ByReporter(_ context.Context, username string) ([]models.Item, error) {
	return r.filter(func(it models.Item) bool { return it.Reporter == username }), nil
}
