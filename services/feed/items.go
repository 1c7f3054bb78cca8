package feed

import (
	"math"
	"time"

	"tastetrail/models"
	"tastetrail/utils"
)

// Badge thresholds.
const (
	trendingNowMinScore  = 50.0
	risingStarMinScore   = 30.0
	risingStarMaxAgeDays = 60
	newBadgeMaxAgeDays   = 30
	hiddenGemMinRating   = 4.0
	hiddenGemMaxViews    = 100
	crowdFavoriteReviews = 50
)

// applyDietaryFilter drops shops that violate the user's dietary flags. A
// nil or unrestricted user passes everything through. The filter may empty a
// section; no substitution happens.
func applyDietaryFilter(shops []models.Shop, user *models.User) []models.Shop {
	if user == nil || (!user.IsVegetarian && !user.IsHalal) {
		return shops
	}
	filtered := make([]models.Shop, 0, len(shops))
	for _, shop := range shops {
		if user.IsVegetarian && !shop.IsVegetarian {
			continue
		}
		if user.IsHalal && !shop.IsHalal {
			continue
		}
		filtered = append(filtered, shop)
	}
	return filtered
}

// BadgesFor computes the deterministic badge set for a shop. A shop may
// carry several badges at once.
func BadgesFor(shop models.Shop, now time.Time) []models.ShopBadge {
	ageDays := shop.AgeDays(now)
	var badges []models.ShopBadge
	if shop.TrendingScore > trendingNowMinScore {
		badges = append(badges, models.BadgeTrendingNow)
	}
	if ageDays <= newBadgeMaxAgeDays {
		badges = append(badges, models.BadgeNew)
	}
	if shop.RatingAvg >= hiddenGemMinRating && shop.ViewCount < hiddenGemMaxViews {
		badges = append(badges, models.BadgeHiddenGem)
	}
	if shop.RatingCount > crowdFavoriteReviews {
		badges = append(badges, models.BadgeCrowdFavorite)
	}
	if ageDays <= risingStarMaxAgeDays && shop.TrendingScore > risingStarMinScore {
		badges = append(badges, models.BadgeRisingStar)
	}
	return badges
}

// RelevanceScore computes the 0-100 presentation score from rating quality,
// trending momentum and review volume.
func RelevanceScore(shop models.Shop) float64 {
	ratingPart := shop.RatingAvg / 5.0 * 40
	trendingPart := math.Min(shop.TrendingScore/100.0, 1.0) * 40
	volumePart := math.Min(float64(shop.RatingCount)/float64(crowdFavoriteReviews), 1.0) * 20
	return math.Min(100, ratingPart+trendingPart+volumePart)
}

// buildItems converts shops into annotated feed items. Distance is attached
// only when the request carried a location.
func buildItems(shops []models.Shop, p sectionParams, reason, reasonMm string) []models.FeedItem {
	items := make([]models.FeedItem, 0, len(shops))
	for _, shop := range shops {
		badges := BadgesFor(shop, p.now)
		labels := make([]string, 0, len(badges))
		for _, badge := range badges {
			labels = append(labels, badge.LabelMm())
		}

		item := models.FeedItem{
			ID:             shop.ID,
			Name:           shop.Name,
			NameMm:         shop.NameMm,
			Slug:           shop.Slug,
			Category:       shop.Category,
			SubCategory:    shop.SubCategory,
			Address:        shop.Address,
			Township:       shop.Township,
			Latitude:       shop.LocationGeo.Latitude(),
			Longitude:      shop.LocationGeo.Longitude(),
			RatingAvg:      shop.RatingAvg,
			RatingCount:    shop.RatingCount,
			TrendingScore:  shop.TrendingScore,
			HasDelivery:    shop.HasDelivery,
			HasParking:     shop.HasParking,
			HasWifi:        shop.HasWifi,
			Badges:         badges,
			BadgeLabelsMm:  labels,
			RelevanceScore: RelevanceScore(shop),
			MatchReason:    reason,
			MatchReasonMm:  reasonMm,
		}
		if p.hasLocation {
			distance := utils.HaversineKm(p.lat, p.lon, shop.LocationGeo.Latitude(), shop.LocationGeo.Longitude())
			item.DistanceKm = &distance
		}
		items = append(items, item)
	}
	return items
}
