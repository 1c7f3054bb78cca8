package shopRepo

import (
	"context"
	"fmt"
	"time"

	"tastetrail/database"
	"tastetrail/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoShopRepo implements ShopRepository and ScoreWriter using MongoDB.
type MongoShopRepo struct {
	coll *mongo.Collection
}

// NewMongoShopRepo creates a new shop repository backed by MongoDB.
func NewMongoShopRepo() *MongoShopRepo {
	coll := database.MongoClient.Database("tastetrail").Collection("shops")
	repo := &MongoShopRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create shop indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

func (r *MongoShopRepo) GetByID(ctx context.Context, id int64) (*models.Shop, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var shop models.Shop
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&shop); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch shop with id %d: %w", id, err)
	}
	return &shop, nil
}

func (r *MongoShopRepo) GetBySlug(ctx context.Context, slug string) (*models.Shop, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var shop models.Shop
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&shop); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch shop with slug %s: %w", slug, err)
	}
	return &shop, nil
}

func (r *MongoShopRepo) GetAllActive(ctx context.Context) ([]models.Shop, error) {
	ctx, cancel := newContext(ctx, 30*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve shops: %w", err)
	}
	defer cursor.Close(ctx)

	var shops []models.Shop
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, fmt.Errorf("failed to decode shops: %w", err)
	}
	return shops, nil
}
