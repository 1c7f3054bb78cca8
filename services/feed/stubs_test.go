package feed

import (
	"context"
	"sync"
	"time"

	shopRepo "tastetrail/database/repository/shop"
	"tastetrail/models"
	"tastetrail/services/recommendation"
)

// stubUsers satisfies userRepo.UserRepository with canned answers.
type stubUsers struct {
	user  *models.User
	stats *models.EngagementStats

	byUsernameCalls int
}

func (s *stubUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.byUsernameCalls++
	return s.user, nil
}

func (s *stubUsers) GetEngagement(ctx context.Context, userID int64, recentSince time.Time) (*models.EngagementStats, error) {
	if s.stats == nil {
		return &models.EngagementStats{}, nil
	}
	return s.stats, nil
}

// stubShops provides canned results per query path and records which paths
// were taken. Section builders run concurrently, so the call log is guarded
// by a mutex. Unimplemented interface methods panic if reached.
type stubShops struct {
	shopRepo.ShopRepository

	nearbyByCategories      []models.Shop
	byDistrictAndCategories []models.Shop
	byCategories            []models.Shop
	trendingByDistrict      []models.Shop
	nearbyTrending          []models.Shop
	recentByDistrict        []models.Shop
	recentNearby            []models.Shop
	recent                  []models.Shop

	mu    sync.Mutex
	calls map[string]int
}

func newStubShops() *stubShops {
	return &stubShops{calls: make(map[string]int)}
}

func (s *stubShops) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[name]++
}

func (s *stubShops) callCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *stubShops) FindNearbyByCategories(ctx context.Context, lat, lon, radiusKm float64, categories []string, limit int) ([]models.Shop, error) {
	s.record("FindNearbyByCategories")
	return s.nearbyByCategories, nil
}

func (s *stubShops) FindByDistrictAndCategories(ctx context.Context, districtID int64, categories []string, limit int) ([]models.Shop, error) {
	s.record("FindByDistrictAndCategories")
	return s.byDistrictAndCategories, nil
}

func (s *stubShops) FindByCategories(ctx context.Context, categories []string, limit int) ([]models.Shop, error) {
	s.record("FindByCategories")
	return s.byCategories, nil
}

func (s *stubShops) FindTrendingByDistrict(ctx context.Context, districtID int64, limit int) ([]models.Shop, error) {
	s.record("FindTrendingByDistrict")
	return s.trendingByDistrict, nil
}

func (s *stubShops) FindNearbyTrending(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]models.Shop, error) {
	s.record("FindNearbyTrending")
	return s.nearbyTrending, nil
}

func (s *stubShops) FindRecentByDistrict(ctx context.Context, districtID int64, categories []string, since time.Time, limit int) ([]models.Shop, error) {
	s.record("FindRecentByDistrict")
	return s.recentByDistrict, nil
}

func (s *stubShops) FindRecentNearby(ctx context.Context, lat, lon, radiusKm float64, categories []string, since time.Time, limit int) ([]models.Shop, error) {
	s.record("FindRecentNearby")
	return s.recentNearby, nil
}

func (s *stubShops) FindRecent(ctx context.Context, since time.Time, limit int) ([]models.Shop, error) {
	s.record("FindRecent")
	return s.recent, nil
}

// stubRecommender satisfies recommendation.RecommendationService.
type stubRecommender struct {
	profile recommendation.AffinityProfile
	shops   []models.Shop

	buildProfileCalls int
}

func (s *stubRecommender) Recommend(ctx context.Context, identity recommendation.Identity) ([]models.Shop, error) {
	return s.shops, nil
}

func (s *stubRecommender) BuildProfileForUser(ctx context.Context, user *models.User, deviceID string) (recommendation.AffinityProfile, error) {
	s.buildProfileCalls++
	return s.profile, nil
}

func (s *stubRecommender) RecommendFromProfile(ctx context.Context, profile recommendation.AffinityProfile) ([]models.Shop, error) {
	return s.shops, nil
}

// stubTrending satisfies trending.TrendingService.
type stubTrending struct {
	top []models.Shop
}

func (s *stubTrending) RecomputeScores(ctx context.Context) error {
	return nil
}

func (s *stubTrending) TopTrending(ctx context.Context, n int) ([]models.Shop, error) {
	if n < len(s.top) {
		return s.top[:n], nil
	}
	return s.top, nil
}

// stubGeo satisfies geoRepo.GeoRepository.
type stubGeo struct {
	districts map[int64]*models.District
}

func (s *stubGeo) GetDistrictByID(ctx context.Context, id int64) (*models.District, error) {
	return s.districts[id], nil
}

func (s *stubGeo) GetCityByDistrict(ctx context.Context, districtID int64) (*models.City, error) {
	return nil, nil
}

func namedShop(id int64, category string) models.Shop {
	return models.Shop{
		ID:          id,
		Name:        "Shop",
		Slug:        "shop",
		Category:    category,
		LocationGeo: models.NewGeoPoint(16.8, 96.15),
		IsActive:    true,
		CreatedAt:   time.Now().AddDate(0, 0, -100),
	}
}
