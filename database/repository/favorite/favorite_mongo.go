package favoriteRepo

import (
	"context"
	"fmt"
	"time"

	"tastetrail/database"
	"tastetrail/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FavoriteRepository is the aggregate view over shop favorites.
type FavoriteRepository interface {
	// ListByUser returns the user's favorites, newest first, with shop id and
	// category available on every entry.
	ListByUser(ctx context.Context, userID int64) ([]models.Favorite, error)
	// CountByShopSince returns shopId -> favorite count created after the timestamp.
	CountByShopSince(ctx context.Context, since time.Time) (map[int64]int64, error)
	// ExistsByUserAndShop reports whether the user has favorited the shop.
	ExistsByUserAndShop(ctx context.Context, userID, shopID int64) (bool, error)
}

// MongoFavoriteRepo implements FavoriteRepository using MongoDB.
type MongoFavoriteRepo struct {
	coll *mongo.Collection
}

// NewMongoFavoriteRepo creates a new favorite repository backed by MongoDB.
func NewMongoFavoriteRepo() FavoriteRepository {
	coll := database.MongoClient.Database("tastetrail").Collection("favorites")
	return &MongoFavoriteRepo{coll: coll}
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

func (r *MongoFavoriteRepo) ListByUser(ctx context.Context, userID int64) ([]models.Favorite, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites for user %d: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var favorites []models.Favorite
	if err := cursor.All(ctx, &favorites); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}
	return favorites, nil
}

func (r *MongoFavoriteRepo) CountByShopSince(ctx context.Context, since time.Time) (map[int64]int64, error) {
	ctx, cancel := newContext(ctx, 15*time.Second)
	defer cancel()

	pipeline := []bson.D{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$shopId",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("favorite count aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[int64]int64)
	for cursor.Next(ctx) {
		var row struct {
			ID    int64 `bson:"_id"`
			Count int64 `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode favorite count: %w", err)
		}
		counts[row.ID] = row.Count
	}
	return counts, cursor.Err()
}

func (r *MongoFavoriteRepo) ExistsByUserAndShop(ctx context.Context, userID, shopID int64) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"userId": userID, "shopId": shopID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check favorite existence: %w", err)
	}
	return count > 0, nil
}
