package feed

import (
	"context"
	"testing"
	"time"

	"tastetrail/models"
	"tastetrail/services/recommendation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int64) *int64       { return &v }

func newTestFeedService(shops *stubShops, users *stubUsers, rec *stubRecommender, trend *stubTrending, geo *stubGeo) *DefaultFeedService {
	if geo == nil {
		geo = &stubGeo{}
	}
	return &DefaultFeedService{
		Shops:       shops,
		Users:       users,
		Geo:         geo,
		Recommender: rec,
		Trending:    trend,
		Segments:    &DefaultSegmentClassifier{Users: users},
		Logger:      zap.NewNop(),
	}
}

func TestNormalizeRadius(t *testing.T) {
	assert.Equal(t, 5.0, normalizeRadius(nil))
	assert.Equal(t, 5.0, normalizeRadius(floatPtr(0)))
	assert.Equal(t, 5.0, normalizeRadius(floatPtr(-3)))
	assert.Equal(t, 30.0, normalizeRadius(floatPtr(30)))
	assert.Equal(t, 50.0, normalizeRadius(floatPtr(80)))
}

func TestGenerateFeedAnonymousWithLocation(t *testing.T) {
	shops := newStubShops()
	shops.nearbyByCategories = []models.Shop{namedShop(1, "Cafe")}
	shops.nearbyTrending = []models.Shop{namedShop(2, "BBQ")}
	shops.recentNearby = []models.Shop{namedShop(3, "Bar")}
	rec := &stubRecommender{shops: []models.Shop{namedShop(4, "Restaurant")}}

	svc := newTestFeedService(shops, &stubUsers{}, rec, &stubTrending{}, nil)

	feed, err := svc.GenerateFeed(context.Background(), Request{
		Latitude:  floatPtr(16.8),
		Longitude: floatPtr(96.15),
	})
	require.NoError(t, err)

	assert.Equal(t, models.SectionForYou, feed.ForYouNow.SectionType)
	assert.Equal(t, models.SectionTrendingNearby, feed.TrendingNearby.SectionType)
	assert.Equal(t, models.SectionBasedOnFavorites, feed.BasedOnFavorites.SectionType)
	assert.Equal(t, models.SectionNewShops, feed.NewShops.SectionType)

	require.Len(t, feed.ForYouNow.Shops, 1)
	assert.Equal(t, int64(1), feed.ForYouNow.Shops[0].ID)
	assert.Equal(t, 1, feed.ForYouNow.TotalCount)
	require.Len(t, feed.TrendingNearby.Shops, 1)
	assert.Equal(t, int64(2), feed.TrendingNearby.Shops[0].ID)
	require.Len(t, feed.NewShops.Shops, 1)
	assert.Equal(t, int64(3), feed.NewShops.Shops[0].ID)
	require.Len(t, feed.BasedOnFavorites.Shops, 1)
	assert.Equal(t, int64(4), feed.BasedOnFavorites.Shops[0].ID)

	// Anonymous requests get the guest copy.
	assert.Equal(t, "Based on Your Browsing", feed.BasedOnFavorites.Title)

	assert.NotEmpty(t, feed.Metadata.FeedID)
	assert.True(t, feed.Metadata.LocationUsed)
	assert.Equal(t, 5.0, feed.Metadata.RadiusKm)
	assert.Equal(t, models.SegmentCasual, feed.Metadata.UserSegment)
	assert.NotEmpty(t, feed.Metadata.TimeContext)

	// Every item carries a distance when location is known.
	for _, item := range feed.ForYouNow.Shops {
		assert.NotNil(t, item.DistanceKm)
	}

	// No district was given, so no district query may run.
	assert.Zero(t, shops.callCount("FindTrendingByDistrict"))
	assert.Zero(t, shops.callCount("FindRecentByDistrict"))
	assert.Equal(t, 1, shops.callCount("FindRecentNearby"))
}

func TestGenerateFeedWithoutLocationFallsBackGlobally(t *testing.T) {
	shops := newStubShops()
	shops.byCategories = []models.Shop{namedShop(1, "Cafe")}
	shops.recent = []models.Shop{namedShop(3, "Bar")}
	trend := &stubTrending{top: []models.Shop{namedShop(2, "BBQ")}}

	svc := newTestFeedService(shops, &stubUsers{}, &stubRecommender{}, trend, nil)

	feed, err := svc.GenerateFeed(context.Background(), Request{})
	require.NoError(t, err)

	assert.False(t, feed.Metadata.LocationUsed)
	assert.Equal(t, 1, shops.callCount("FindByCategories"))
	assert.Equal(t, 1, shops.callCount("FindRecent"))
	assert.Zero(t, shops.callCount("FindNearbyByCategories"))
	require.Len(t, feed.TrendingNearby.Shops, 1)
	assert.Equal(t, int64(2), feed.TrendingNearby.Shops[0].ID)
	assert.Nil(t, feed.ForYouNow.Shops[0].DistanceKm)
}

func TestGenerateFeedDistrictFallsThroughWhenEmpty(t *testing.T) {
	shops := newStubShops()
	shops.nearbyByCategories = []models.Shop{namedShop(1, "Cafe")}
	shops.nearbyTrending = []models.Shop{namedShop(2, "BBQ")}
	shops.recent = []models.Shop{namedShop(3, "Bar")}
	rec := &stubRecommender{
		profile: recommendation.AffinityProfile{PreferredCategories: []string{"Cafe"}},
	}
	geo := &stubGeo{districts: map[int64]*models.District{
		5: {ID: 5, NameEn: "Downtown", Active: true},
	}}

	svc := newTestFeedService(shops, &stubUsers{}, rec, &stubTrending{}, geo)

	feed, err := svc.GenerateFeed(context.Background(), Request{
		Latitude:   floatPtr(16.8),
		Longitude:  floatPtr(96.15),
		DistrictID: intPtr(5),
	})
	require.NoError(t, err)

	// Empty district trending falls through to the geo query.
	assert.Equal(t, 1, shops.callCount("FindTrendingByDistrict"))
	assert.Equal(t, 1, shops.callCount("FindNearbyTrending"))
	require.Len(t, feed.TrendingNearby.Shops, 1)
	assert.Equal(t, int64(2), feed.TrendingNearby.Shops[0].ID)

	// New shops: affinity-category district query, then bare district query,
	// then the global recent page.
	assert.Equal(t, 2, shops.callCount("FindRecentByDistrict"))
	assert.Equal(t, 1, shops.callCount("FindRecent"))
	require.Len(t, feed.NewShops.Shops, 1)
	assert.Equal(t, int64(3), feed.NewShops.Shops[0].ID)
}

func TestGenerateFeedUnknownDistrictIsIgnored(t *testing.T) {
	shops := newStubShops()
	shops.byCategories = []models.Shop{namedShop(1, "Cafe")}
	shops.recent = []models.Shop{namedShop(3, "Bar")}
	trend := &stubTrending{top: []models.Shop{namedShop(2, "BBQ")}}

	svc := newTestFeedService(shops, &stubUsers{}, &stubRecommender{}, trend, &stubGeo{})

	_, err := svc.GenerateFeed(context.Background(), Request{DistrictID: intPtr(99)})
	require.NoError(t, err)
	assert.Zero(t, shops.callCount("FindTrendingByDistrict"))
	assert.Zero(t, shops.callCount("FindRecentByDistrict"))
}

func TestGenerateFeedAppliesDietaryFilter(t *testing.T) {
	veg := namedShop(1, "Cafe")
	veg.IsVegetarian = true
	meat := namedShop(2, "BBQ")

	shops := newStubShops()
	shops.byCategories = []models.Shop{veg, meat}
	shops.recent = []models.Shop{meat}
	trend := &stubTrending{top: []models.Shop{veg, meat}}
	users := &stubUsers{user: &models.User{ID: 7, Username: "maya", IsVegetarian: true}}

	svc := newTestFeedService(shops, users, &stubRecommender{shops: []models.Shop{veg, meat}}, trend, nil)

	feed, err := svc.GenerateFeed(context.Background(), Request{Username: "maya"})
	require.NoError(t, err)

	require.Len(t, feed.ForYouNow.Shops, 1)
	assert.Equal(t, int64(1), feed.ForYouNow.Shops[0].ID)
	assert.Equal(t, 1, feed.ForYouNow.TotalCount)
	require.Len(t, feed.TrendingNearby.Shops, 1)
	assert.Equal(t, int64(1), feed.TrendingNearby.Shops[0].ID)
	require.Len(t, feed.BasedOnFavorites.Shops, 1)

	// The filter may empty a section outright.
	assert.Empty(t, feed.NewShops.Shops)
	assert.Equal(t, 0, feed.NewShops.TotalCount)

	assert.Equal(t, "Based on Your Favorites", feed.BasedOnFavorites.Title)
}

func TestGenerateFeedLoadsUserAndProfileOnce(t *testing.T) {
	users := &stubUsers{user: &models.User{ID: 7, Username: "maya", CreatedAt: time.Now().AddDate(0, 0, -100)}}
	rec := &stubRecommender{}

	svc := newTestFeedService(newStubShops(), users, rec, &stubTrending{}, nil)

	_, err := svc.GenerateFeed(context.Background(), Request{Username: "maya", DeviceID: "device-1"})
	require.NoError(t, err)

	assert.Equal(t, 1, users.byUsernameCalls)
	assert.Equal(t, 1, rec.buildProfileCalls)
}
