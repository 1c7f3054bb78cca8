package userRepo

import (
	"context"
	"fmt"
	"time"

	"tastetrail/database"
	"tastetrail/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository is the read surface over user profiles and their
// engagement aggregates.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// GetEngagement fetches every count segmentation needs in one round trip.
	GetEngagement(ctx context.Context, userID int64, recentSince time.Time) (*models.EngagementStats, error)
}

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new user repository backed by MongoDB.
func NewMongoUserRepo() UserRepository {
	coll := database.MongoClient.Database("tastetrail").Collection("users")
	return &MongoUserRepo{coll: coll}
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

func (r *MongoUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", username, err)
	}
	return &user, nil
}

// countLookup builds a $lookup stage that counts documents in another
// collection matching the user id plus an optional extra filter.
func countLookup(from, as string, userID int64, extra bson.M) bson.D {
	match := bson.M{"userId": userID}
	for k, v := range extra {
		match[k] = v
	}
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from": from,
		"pipeline": []bson.M{
			{"$match": match},
			{"$count": "n"},
		},
		"as": as,
	}}}
}

// GetEngagement runs one aggregation that pulls activity, favorite (shop and
// menu-item) and review counts together, so segmentation costs a single
// database round trip.
func (r *MongoUserRepo) GetEngagement(ctx context.Context, userID int64, recentSince time.Time) (*models.EngagementStats, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := []bson.D{
		{{Key: "$match", Value: bson.M{"id": userID}}},
		countLookup("user_activities", "totalActivities", userID, nil),
		countLookup("user_activities", "recentActivities", userID, bson.M{"createdAt": bson.M{"$gte": recentSince}}),
		countLookup("favorites", "shopFavorites", userID, nil),
		countLookup("menu_favorites", "menuFavorites", userID, nil),
		countLookup("reviews", "totalReviews", userID, nil),
		{{Key: "$project", Value: bson.M{
			"totalActivities":  bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$totalActivities.n", 0}}, 0}},
			"recentActivities": bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$recentActivities.n", 0}}, 0}},
			"shopFavorites":    bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$shopFavorites.n", 0}}, 0}},
			"menuFavorites":    bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$menuFavorites.n", 0}}, 0}},
			"totalReviews":     bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$totalReviews.n", 0}}, 0}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("engagement aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var row struct {
		TotalActivities  int64 `bson:"totalActivities"`
		RecentActivities int64 `bson:"recentActivities"`
		ShopFavorites    int64 `bson:"shopFavorites"`
		MenuFavorites    int64 `bson:"menuFavorites"`
		TotalReviews     int64 `bson:"totalReviews"`
	}
	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("engagement aggregation failed: %w", err)
		}
		return &models.EngagementStats{}, nil
	}
	if err := cursor.Decode(&row); err != nil {
		return nil, fmt.Errorf("failed to decode engagement stats: %w", err)
	}

	return &models.EngagementStats{
		TotalActivities:  row.TotalActivities,
		TotalFavorites:   row.ShopFavorites + row.MenuFavorites,
		TotalReviews:     row.TotalReviews,
		RecentActivities: row.RecentActivities,
	}, nil
}
