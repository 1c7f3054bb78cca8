package recommendation

import (
	"context"
	"testing"
	"time"

	shopRepo "tastetrail/database/repository/shop"
	"tastetrail/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubShops struct {
	shopRepo.ShopRepository
	byCategory []models.Shop
	trending   []models.Shop

	lastCategories []string
	lastExcluded   models.NonEmptyIDSet
}

func (s *stubShops) FindByCategoriesExcluding(ctx context.Context, categories []string, excluded models.NonEmptyIDSet) ([]models.Shop, error) {
	s.lastCategories = categories
	s.lastExcluded = excluded
	return s.byCategory, nil
}

func (s *stubShops) TopByTrendingScoreExcluding(ctx context.Context, excluded models.NonEmptyIDSet, n int) ([]models.Shop, error) {
	s.lastExcluded = excluded
	if n < len(s.trending) {
		return s.trending[:n], nil
	}
	return s.trending, nil
}

type stubUsers struct {
	user *models.User
}

func (s *stubUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.user, nil
}

func (s *stubUsers) GetEngagement(ctx context.Context, userID int64, recentSince time.Time) (*models.EngagementStats, error) {
	return &models.EngagementStats{}, nil
}

type stubFavorites struct {
	favorites []models.Favorite
}

func (s *stubFavorites) ListByUser(ctx context.Context, userID int64) ([]models.Favorite, error) {
	return s.favorites, nil
}

func (s *stubFavorites) CountByShopSince(ctx context.Context, since time.Time) (map[int64]int64, error) {
	return nil, nil
}

func (s *stubFavorites) ExistsByUserAndShop(ctx context.Context, userID, shopID int64) (bool, error) {
	return false, nil
}

type stubReviews struct {
	reviews []models.ShopReview
}

func (s *stubReviews) ListByUser(ctx context.Context, userID int64) ([]models.ShopReview, error) {
	return s.reviews, nil
}

func (s *stubReviews) CountByShopSince(ctx context.Context, since time.Time) (map[int64]int64, error) {
	return nil, nil
}

type stubActivities struct {
	userCategories   []string
	deviceCategories []string
}

func (s *stubActivities) CountByShopSince(ctx context.Context, activityType models.ActivityType, since time.Time) (map[int64]int64, error) {
	return nil, nil
}

func (s *stubActivities) CountByShopForTypesSince(ctx context.Context, types []models.ActivityType, since time.Time) (map[int64]int64, error) {
	return nil, nil
}

func (s *stubActivities) TopCategoriesByUser(ctx context.Context, userID int64, limit int) ([]string, error) {
	return s.userCategories, nil
}

func (s *stubActivities) TopCategoriesByDevice(ctx context.Context, deviceID string, limit int) ([]string, error) {
	return s.deviceCategories, nil
}

func newTestService(shops *stubShops, users *stubUsers, favorites *stubFavorites, reviews *stubReviews, activities *stubActivities) *DefaultRecommendationService {
	return &DefaultRecommendationService{
		Shops:      shops,
		Users:      users,
		Favorites:  favorites,
		Reviews:    reviews,
		Activities: activities,
		Logger:     zap.NewNop(),
	}
}

func shopWithID(id int64) models.Shop {
	return models.Shop{ID: id, Slug: "shop", Category: "Cafe", IsActive: true}
}

func TestBuildProfileMergesSourcesInOrder(t *testing.T) {
	svc := newTestService(
		&stubShops{},
		&stubUsers{user: &models.User{ID: 7, Username: "maya"}},
		&stubFavorites{favorites: []models.Favorite{
			{ShopID: 1, ShopCategory: "Cafe"},
			{ShopID: 2, ShopCategory: "BBQ"},
		}},
		&stubReviews{reviews: []models.ShopReview{
			{ShopID: 3, ShopCategory: "Bar", Rating: 5},
			{ShopID: 4, ShopCategory: "Pub", Rating: 2},
			{ShopID: 5, ShopCategory: "Cafe", Rating: 4},
		}},
		&stubActivities{userCategories: []string{"Cafe", "Dessert"}},
	)

	profile, err := svc.BuildProfileForUser(context.Background(), &models.User{ID: 7, Username: "maya"}, "")
	require.NoError(t, err)

	// Favorites first, then positive reviews, then activity, deduplicated.
	assert.Equal(t, []string{"Cafe", "BBQ", "Bar", "Dessert"}, profile.PreferredCategories)

	// Every favorited and reviewed shop is excluded, even the low-rated one.
	for _, id := range []int64{1, 2, 3, 4, 5} {
		assert.True(t, profile.ExcludedIDs.Contains(id), "id %d", id)
	}
	assert.Equal(t, 5, profile.ExcludedIDs.Len())
}

func TestBuildProfileDevicePathHasNoExclusions(t *testing.T) {
	svc := newTestService(
		&stubShops{},
		&stubUsers{},
		&stubFavorites{},
		&stubReviews{},
		&stubActivities{deviceCategories: []string{"Noodle Shop", "Cafe"}},
	)

	profile, err := svc.BuildProfileForUser(context.Background(), nil, "device-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Noodle Shop", "Cafe"}, profile.PreferredCategories)
	assert.Equal(t, 0, profile.ExcludedIDs.Len())
	assert.Equal(t, []int64{models.SentinelShopID}, profile.ExcludedIDs.IDs())
}

func TestRecommendFillsWithTrendingAndDeduplicates(t *testing.T) {
	shops := &stubShops{
		byCategory: []models.Shop{shopWithID(10), shopWithID(11)},
		trending:   []models.Shop{shopWithID(11), shopWithID(20), shopWithID(21)},
	}
	svc := newTestService(
		shops,
		&stubUsers{user: &models.User{ID: 7, Username: "maya"}},
		&stubFavorites{favorites: []models.Favorite{{ShopID: 1, ShopCategory: "Cafe"}}},
		&stubReviews{},
		&stubActivities{},
	)

	got, err := svc.Recommend(context.Background(), Identity{Username: "maya"})
	require.NoError(t, err)

	ids := make([]int64, 0, len(got))
	for _, shop := range got {
		ids = append(ids, shop.ID)
	}
	assert.Equal(t, []int64{10, 11, 20, 21}, ids)

	// The favorited shop is excluded from both query paths.
	assert.True(t, shops.lastExcluded.Contains(1))
	assert.Equal(t, []string{"Cafe"}, shops.lastCategories)
}

func TestRecommendCapsAtTen(t *testing.T) {
	var trending []models.Shop
	for id := int64(1); id <= 15; id++ {
		trending = append(trending, shopWithID(id))
	}
	shops := &stubShops{trending: trending}
	svc := newTestService(shops, &stubUsers{}, &stubFavorites{}, &stubReviews{}, &stubActivities{})

	got, err := svc.Recommend(context.Background(), Identity{Username: "ghost"})
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestRecommendAnonymousDegeneratesToTrendingFill(t *testing.T) {
	shops := &stubShops{trending: []models.Shop{shopWithID(1), shopWithID(2)}}
	svc := newTestService(shops, &stubUsers{}, &stubFavorites{}, &stubReviews{}, &stubActivities{})

	got, err := svc.Recommend(context.Background(), Identity{})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// No category query ran; the sentinel keeps the exclusion operand valid.
	assert.Nil(t, shops.lastCategories)
	assert.Equal(t, []int64{models.SentinelShopID}, shops.lastExcluded.IDs())
}
