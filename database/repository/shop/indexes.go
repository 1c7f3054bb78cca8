package shopRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for fields that are frequently used in queries.
func (r *MongoShopRepo) ensureIndexes() error {
	ctx, cancel := newContext(nil, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "districtId", Value: 1}}},
		{Keys: bson.D{{Key: "trendingScore", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		// Create a 2dsphere index on the locationGeo field for geospatial queries.
		{Keys: bson.D{{Key: "locationGeo", Value: "2dsphere"}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
