package feed

import (
	"testing"
	"time"

	"tastetrail/models"

	"github.com/stretchr/testify/assert"
)

func TestBadgesForYoungRisingShop(t *testing.T) {
	now := time.Now()
	shop := models.Shop{
		ID:            1,
		TrendingScore: 40,
		RatingAvg:     4.5,
		RatingCount:   10,
		ViewCount:     50,
		CreatedAt:     now.AddDate(0, 0, -5),
	}

	badges := BadgesFor(shop, now)
	assert.ElementsMatch(t, []models.ShopBadge{
		models.BadgeNew, models.BadgeHiddenGem, models.BadgeRisingStar,
	}, badges)
	assert.NotContains(t, badges, models.BadgeTrendingNow)
	assert.NotContains(t, badges, models.BadgeCrowdFavorite)
}

func TestBadgesForEstablishedPopularShop(t *testing.T) {
	now := time.Now()
	shop := models.Shop{
		ID:            2,
		TrendingScore: 60,
		RatingAvg:     3.8,
		RatingCount:   80,
		ViewCount:     5000,
		CreatedAt:     now.AddDate(-2, 0, 0),
	}

	badges := BadgesFor(shop, now)
	assert.ElementsMatch(t, []models.ShopBadge{
		models.BadgeTrendingNow, models.BadgeCrowdFavorite,
	}, badges)
}

func TestBadgesForThresholdsAreStrict(t *testing.T) {
	now := time.Now()
	shop := models.Shop{
		ID:            3,
		TrendingScore: 50, // not > 50
		RatingCount:   50, // not > 50
		RatingAvg:     3.9,
		ViewCount:     200,
		CreatedAt:     now.AddDate(-1, 0, 0),
	}
	assert.Empty(t, BadgesFor(shop, now))
}

func TestRelevanceScore(t *testing.T) {
	perfect := models.Shop{RatingAvg: 5, TrendingScore: 100, RatingCount: 50}
	assert.Equal(t, 100.0, RelevanceScore(perfect))

	mid := models.Shop{RatingAvg: 2.5, TrendingScore: 50, RatingCount: 25}
	assert.InDelta(t, 50.0, RelevanceScore(mid), 1e-9)

	// Runaway trending scores and review counts are capped.
	capped := models.Shop{RatingAvg: 5, TrendingScore: 9000, RatingCount: 9000}
	assert.Equal(t, 100.0, RelevanceScore(capped))

	assert.Equal(t, 0.0, RelevanceScore(models.Shop{}))
}

func TestApplyDietaryFilter(t *testing.T) {
	veg := namedShop(1, "Cafe")
	veg.IsVegetarian = true
	halal := namedShop(2, "Restaurant")
	halal.IsHalal = true
	plain := namedShop(3, "BBQ")
	shops := []models.Shop{veg, halal, plain}

	assert.Len(t, applyDietaryFilter(shops, nil), 3)
	assert.Len(t, applyDietaryFilter(shops, &models.User{}), 3)

	vegOnly := applyDietaryFilter(shops, &models.User{IsVegetarian: true})
	assert.Len(t, vegOnly, 1)
	assert.Equal(t, int64(1), vegOnly[0].ID)

	halalOnly := applyDietaryFilter(shops, &models.User{IsHalal: true})
	assert.Len(t, halalOnly, 1)
	assert.Equal(t, int64(2), halalOnly[0].ID)

	// Both flags can legally empty the list.
	assert.Empty(t, applyDietaryFilter(shops, &models.User{IsVegetarian: true, IsHalal: true}))
}

func TestBuildItemsAnnotatesDistanceAndLabels(t *testing.T) {
	shop := namedShop(1, "Cafe")
	shop.TrendingScore = 60
	p := sectionParams{
		hasLocation: true,
		lat:         16.8,
		lon:         96.15,
		now:         time.Now(),
	}

	items := buildItems([]models.Shop{shop}, p, "Trending in your area", "သင့်အနီးတွင် ရေပန်းစား")
	assert.Len(t, items, 1)
	item := items[0]
	assert.NotNil(t, item.DistanceKm)
	assert.InDelta(t, 0.0, *item.DistanceKm, 0.01)
	assert.Equal(t, "Trending in your area", item.MatchReason)
	assert.Contains(t, item.Badges, models.BadgeTrendingNow)
	assert.Len(t, item.BadgeLabelsMm, len(item.Badges))
}

func TestBuildItemsOmitsDistanceWithoutLocation(t *testing.T) {
	items := buildItems([]models.Shop{namedShop(1, "Cafe")}, sectionParams{now: time.Now()}, "r", "")
	assert.Nil(t, items[0].DistanceKm)
}
