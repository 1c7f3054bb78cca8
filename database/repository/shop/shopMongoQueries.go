package shopRepo

import (
	"context"
	"fmt"
	"time"

	"tastetrail/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// findShops runs a filtered Find with the given sort and limit.
func (r *MongoShopRepo) findShops(ctx context.Context, filter bson.M, sort bson.D, limit int) ([]models.Shop, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("shop query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var shops []models.Shop
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, fmt.Errorf("failed to decode shops: %w", err)
	}
	return shops, nil
}

// trendingSort orders by trending score first, then rating.
var trendingSort = bson.D{
	{Key: "trendingScore", Value: -1},
	{Key: "ratingAvg", Value: -1},
}

func (r *MongoShopRepo) FindByCategories(ctx context.Context, categories []string, limit int) ([]models.Shop, error) {
	filter := bson.M{
		"isActive": true,
		"category": bson.M{"$in": categories},
	}
	return r.findShops(ctx, filter, trendingSort, limit)
}

func (r *MongoShopRepo) FindByCategoriesExcluding(ctx context.Context, categories []string, excluded models.NonEmptyIDSet) ([]models.Shop, error) {
	filter := bson.M{
		"isActive": true,
		"category": bson.M{"$in": categories},
		"id":       bson.M{"$nin": excluded.IDs()},
	}
	return r.findShops(ctx, filter, trendingSort, 0)
}

func (r *MongoShopRepo) FindByDistrictAndCategories(ctx context.Context, districtID int64, categories []string, limit int) ([]models.Shop, error) {
	filter := bson.M{
		"isActive":   true,
		"districtId": districtID,
	}
	if len(categories) > 0 {
		filter["category"] = bson.M{"$in": categories}
	}
	return r.findShops(ctx, filter, trendingSort, limit)
}

func (r *MongoShopRepo) FindTrendingByDistrict(ctx context.Context, districtID int64, limit int) ([]models.Shop, error) {
	filter := bson.M{
		"isActive":   true,
		"districtId": districtID,
	}
	return r.findShops(ctx, filter, trendingSort, limit)
}

func (r *MongoShopRepo) FindRecentByDistrict(ctx context.Context, districtID int64, categories []string, since time.Time, limit int) ([]models.Shop, error) {
	filter := bson.M{
		"isActive":   true,
		"districtId": districtID,
		"createdAt":  bson.M{"$gte": since},
	}
	if len(categories) > 0 {
		filter["category"] = bson.M{"$in": categories}
	}
	return r.findShops(ctx, filter, bson.D{{Key: "createdAt", Value: -1}}, limit)
}

func (r *MongoShopRepo) FindRecent(ctx context.Context, since time.Time, limit int) ([]models.Shop, error) {
	filter := bson.M{
		"isActive":  true,
		"createdAt": bson.M{"$gte": since},
	}
	return r.findShops(ctx, filter, bson.D{{Key: "createdAt", Value: -1}}, limit)
}

func (r *MongoShopRepo) TopByTrendingScore(ctx context.Context, n int) ([]models.Shop, error) {
	filter := bson.M{"isActive": true}
	return r.findShops(ctx, filter, trendingSort, n)
}

func (r *MongoShopRepo) TopByTrendingScoreExcluding(ctx context.Context, excluded models.NonEmptyIDSet, n int) ([]models.Shop, error) {
	filter := bson.M{
		"isActive": true,
		"id":       bson.M{"$nin": excluded.IDs()},
	}
	return r.findShops(ctx, filter, trendingSort, n)
}
