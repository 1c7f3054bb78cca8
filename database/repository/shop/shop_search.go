package shopRepo

import (
	"context"
	"fmt"
	"time"

	"tastetrail/models"

	"go.mongodb.org/mongo-driver/bson"
)

// geoNearShops runs a $geoNear pipeline against the 2dsphere index. The
// extra filter is applied inside the $geoNear stage so the index does all
// the work.
func (r *MongoShopRepo) geoNearShops(ctx context.Context, lat, lon, radiusKm float64, query bson.M, sort bson.D, limit int) ([]models.Shop, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	if query == nil {
		query = bson.M{}
	}
	query["isActive"] = true

	// $geoNear must be the first stage; it filters by distance and emits a
	// "distance" field (meters) we can sort on.
	pipeline := []bson.D{
		{
			{Key: "$geoNear", Value: bson.D{
				{Key: "near", Value: bson.D{
					{Key: "type", Value: "Point"},
					{Key: "coordinates", Value: []float64{lon, lat}},
				}},
				{Key: "distanceField", Value: "distance"},
				{Key: "spherical", Value: true},
				{Key: "maxDistance", Value: radiusKm * 1000},
				{Key: "query", Value: query},
			}},
		},
	}
	if sort != nil {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sort}})
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("geo query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var shops []models.Shop
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, fmt.Errorf("failed to decode shops: %w", err)
	}
	return shops, nil
}

func (r *MongoShopRepo) FindNearbyByCategories(ctx context.Context, lat, lon, radiusKm float64, categories []string, limit int) ([]models.Shop, error) {
	query := bson.M{"category": bson.M{"$in": categories}}
	// Nearest first; $geoNear already orders by distance.
	return r.geoNearShops(ctx, lat, lon, radiusKm, query, nil, limit)
}

func (r *MongoShopRepo) FindNearbyTrending(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]models.Shop, error) {
	sort := bson.D{
		{Key: "trendingScore", Value: -1},
		{Key: "distance", Value: 1},
	}
	return r.geoNearShops(ctx, lat, lon, radiusKm, nil, sort, limit)
}

func (r *MongoShopRepo) FindRecentNearby(ctx context.Context, lat, lon, radiusKm float64, categories []string, since time.Time, limit int) ([]models.Shop, error) {
	query := bson.M{"createdAt": bson.M{"$gte": since}}
	if len(categories) > 0 {
		query["category"] = bson.M{"$in": categories}
	}
	sort := bson.D{{Key: "createdAt", Value: -1}}
	return r.geoNearShops(ctx, lat, lon, radiusKm, query, sort, limit)
}
