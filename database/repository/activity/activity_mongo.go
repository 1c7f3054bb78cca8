package activityRepo

import (
	"context"
	"fmt"
	"time"

	"tastetrail/database"
	"tastetrail/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoActivityRepo implements ActivityRepository using MongoDB.
type MongoActivityRepo struct {
	coll *mongo.Collection
}

// NewMongoActivityRepo creates a new activity repository backed by MongoDB.
func NewMongoActivityRepo() ActivityRepository {
	coll := database.MongoClient.Database("tastetrail").Collection("user_activities")
	return &MongoActivityRepo{coll: coll}
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

// countByShop groups matching events by targetId.
func (r *MongoActivityRepo) countByShop(ctx context.Context, match bson.M) (map[int64]int64, error) {
	ctx, cancel := newContext(ctx, 15*time.Second)
	defer cancel()

	pipeline := []bson.D{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$targetId",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("activity count aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[int64]int64)
	for cursor.Next(ctx) {
		var row struct {
			ID    int64 `bson:"_id"`
			Count int64 `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode activity count: %w", err)
		}
		counts[row.ID] = row.Count
	}
	return counts, cursor.Err()
}

func (r *MongoActivityRepo) CountByShopSince(ctx context.Context, activityType models.ActivityType, since time.Time) (map[int64]int64, error) {
	return r.countByShop(ctx, bson.M{
		"activityType": activityType,
		"createdAt":    bson.M{"$gte": since},
		"targetId":     bson.M{"$gt": 0},
	})
}

func (r *MongoActivityRepo) CountByShopForTypesSince(ctx context.Context, types []models.ActivityType, since time.Time) (map[int64]int64, error) {
	return r.countByShop(ctx, bson.M{
		"activityType": bson.M{"$in": types},
		"createdAt":    bson.M{"$gte": since},
		"targetId":     bson.M{"$gt": 0},
	})
}

// topCategories groups matching events by category, most frequent first.
func (r *MongoActivityRepo) topCategories(ctx context.Context, match bson.M, limit int) ([]string, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	match["category"] = bson.M{"$nin": bson.A{nil, ""}}
	pipeline := []bson.D{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$category",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("category aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []string
	for cursor.Next(ctx) {
		var row struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode category row: %w", err)
		}
		categories = append(categories, row.ID)
	}
	return categories, cursor.Err()
}

func (r *MongoActivityRepo) TopCategoriesByUser(ctx context.Context, userID int64, limit int) ([]string, error) {
	return r.topCategories(ctx, bson.M{"userId": userID}, limit)
}

func (r *MongoActivityRepo) TopCategoriesByDevice(ctx context.Context, deviceID string, limit int) ([]string, error) {
	return r.topCategories(ctx, bson.M{"deviceId": deviceID}, limit)
}
