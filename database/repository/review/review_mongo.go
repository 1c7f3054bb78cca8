package reviewRepo

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

// ReviewRepository is the aggregate view over shop reviews.
type ReviewRepository interface {
	// ListByUser returns the user's reviews, newest first.
	ListByUser(ctx context.Context, userID int64) ([]models.ShopReview, error)
	// CountByShopSince returns shopId -> review count created after the timestamp.
	CountByShopSince(ctx context.Context, since time.Time) (map[int64]int64, error)
}

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a new review repository backed by MongoDB.
func NewMongoReviewRepo() ReviewRepository {
	coll := database.MongoClient.Database("tastetrail").Collection("reviews")
	return &MongoReviewRepo{coll: coll}
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

func (r *MongoReviewRepo) ListByUser(ctx context.Context, userID int64) ([]models.ShopReview, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for user %d: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.ShopReview
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

func (r *MongoReviewRepo) CountByShopSince(ctx context.Context, since time.Time) (map[int64]int64, error) {
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
		return nil, fmt.Errorf("review count aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[int64]int64)
	for cursor.Next(ctx) {
		var row struct {
			ID    int64 `bson:"_id"`
			Count int64 `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode review count: %w", err)
		}
		counts[row.ID] = row.Count
	}
	return counts, cursor.Err()
}
