package geoRepo

import (
	"context"
	"fmt"
	"time"

	"tastetrail/database"
	"tastetrail/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GeoRepository resolves the city/district hierarchy.
type GeoRepository interface {
	GetDistrictByID(ctx context.Context, id int64) (*models.District, error)
	GetCityByDistrict(ctx context.Context, districtID int64) (*models.City, error)
}

// MongoGeoRepo implements GeoRepository using MongoDB.
type MongoGeoRepo struct {
	districts *mongo.Collection
	cities    *mongo.Collection
}

// NewMongoGeoRepo creates a new geographic hierarchy repository backed by MongoDB.
func NewMongoGeoRepo() GeoRepository {
	db := database.MongoClient.Database("tastetrail")
	return &MongoGeoRepo{
		districts: db.Collection("districts"),
		cities:    db.Collection("cities"),
	}
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

func (r *MongoGeoRepo) GetDistrictByID(ctx context.Context, id int64) (*models.District, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var district models.District
	if err := r.districts.FindOne(ctx, bson.M{"id": id, "active": true}).Decode(&district); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch district %d: %w", id, err)
	}
	return &district, nil
}

func (r *MongoGeoRepo) GetCityByDistrict(ctx context.Context, districtID int64) (*models.City, error) {
	district, err := r.GetDistrictByID(ctx, districtID)
	if err != nil || district == nil {
		return nil, err
	}

	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var city models.City
	if err := r.cities.FindOne(ctx, bson.M{"id": district.CityID}).Decode(&city); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch city for district %d: %w", districtID, err)
	}
	return &city, nil
}
