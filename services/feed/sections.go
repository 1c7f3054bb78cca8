package feed

import (
	"context"
	"fmt"

	"tastetrail/models"
)

// buildForYouNow assembles the time-context section. Categories come from
// the current time context, not from affinity. Fallback order: geo radius,
// then district, then global.
func (s *DefaultFeedService) buildForYouNow(ctx context.Context, p sectionParams) (models.FeedSection, error) {
	categories := CategoriesFor(p.timeContext)

	var shops []models.Shop
	var err error
	if p.hasLocation {
		shops, err = s.Shops.FindNearbyByCategories(ctx, p.lat, p.lon, p.radiusKm, categories, sectionLimit)
		if err != nil {
			return models.FeedSection{}, fmt.Errorf("nearby category query failed: %w", err)
		}
	}
	if len(shops) == 0 && p.districtID != 0 {
		shops, err = s.Shops.FindByDistrictAndCategories(ctx, p.districtID, categories, sectionLimit)
		if err != nil {
			return models.FeedSection{}, fmt.Errorf("district category query failed: %w", err)
		}
	}
	if len(shops) == 0 {
		shops, err = s.Shops.FindByCategories(ctx, categories, sectionLimit)
		if err != nil {
			return models.FeedSection{}, fmt.Errorf("global category query failed: %w", err)
		}
	}

	return s.packSection(models.FeedSection{
		Title:       "For You Right Now",
		TitleMm:     "ယခုအချိန် သင့်အတွက်",
		Description: DescriptionFor(p.timeContext),
		SectionType: models.SectionForYou,
	}, shops, p, DescriptionFor(p.timeContext), p.timeContext.LabelMm()), nil
}

// buildTrendingNearby assembles the trending section. District results win
// only when non-empty; otherwise the chain falls through to geo radius and
// finally the cached global top list.
func (s *DefaultFeedService) buildTrendingNearby(ctx context.Context, p sectionParams) (models.FeedSection, error) {
	var shops []models.Shop
	var err error
	if p.districtID != 0 {
		shops, err = s.Shops.FindTrendingByDistrict(ctx, p.districtID, sectionLimit)
		if err != nil {
			return models.FeedSection{}, fmt.Errorf("district trending query failed: %w", err)
		}
	}
	if len(shops) == 0 && p.hasLocation {
		shops, err = s.Shops.FindNearbyTrending(ctx, p.lat, p.lon, p.radiusKm, sectionLimit)
		if err != nil {
			return models.FeedSection{}, fmt.Errorf("nearby trending query failed: %w", err)
		}
	}
	if len(shops) == 0 {
		shops, err = s.Trending.TopTrending(ctx, sectionLimit)
		if err != nil {
			return models.FeedSection{}, fmt.Errorf("top trending query failed: %w", err)
		}
	}

	return s.packSection(models.FeedSection{
		Title:       "Trending Nearby",
		TitleMm:     "အနီးအနားတွင် ရေပန်းစားနေသည်",
		Description: "Popular places around you",
		SectionType: models.SectionTrendingNearby,
	}, shops, p, "Trending in your area", "သင့်အနီးတွင် ရေပန်းစား"), nil
}

// buildBasedOnFavorites delegates ranking entirely to the recommendation
// engine, reusing the profile the assembler already built. Only the copy
// differs between the authenticated and guest paths.
func (s *DefaultFeedService) buildBasedOnFavorites(ctx context.Context, p sectionParams) (models.FeedSection, error) {
	shops, err := s.Recommender.RecommendFromProfile(ctx, p.profile)
	if err != nil {
		return models.FeedSection{}, fmt.Errorf("recommendation failed: %w", err)
	}

	section := models.FeedSection{
		Title:       "Based on Your Favorites",
		TitleMm:     "သင် နှစ်သက်ရာများအပေါ် အခြေခံ၍",
		Description: "Picked from the places you love",
		SectionType: models.SectionBasedOnFavorites,
	}
	reason := "Because of your favorites"
	reasonMm := "သင် နှစ်သက်ရာများကြောင့်"
	if p.identity.Username == "" {
		section.Title = "Based on Your Browsing"
		section.TitleMm = "သင် ကြည့်ရှုခဲ့သည်များအပေါ် အခြေခံ၍"
		section.Description = "Picked from the places you viewed"
		reason = "Because of places you viewed"
		reasonMm = "သင် ကြည့်ရှုခဲ့သည်များကြောင့်"
	}
	return s.packSection(section, shops, p, reason, reasonMm), nil
}

// buildNewShops assembles shops created within the last 30 days. The chain
// prefers affinity categories and narrows by district when one applies,
// otherwise by geo radius, and finally falls back to a global recent page.
func (s *DefaultFeedService) buildNewShops(ctx context.Context, p sectionParams) (models.FeedSection, error) {
	since := p.now.AddDate(0, 0, -newShopWindowDays)
	affinityCategories := p.profile.PreferredCategories

	var shops []models.Shop
	var err error
	switch {
	case p.districtID != 0:
		if len(affinityCategories) > 0 {
			shops, err = s.Shops.FindRecentByDistrict(ctx, p.districtID, affinityCategories, since, sectionLimit)
			if err != nil {
				return models.FeedSection{}, fmt.Errorf("district recent category query failed: %w", err)
			}
		}
		if len(shops) == 0 {
			shops, err = s.Shops.FindRecentByDistrict(ctx, p.districtID, nil, since, sectionLimit)
			if err != nil {
				return models.FeedSection{}, fmt.Errorf("district recent query failed: %w", err)
			}
		}
	case p.hasLocation:
		if len(affinityCategories) > 0 {
			shops, err = s.Shops.FindRecentNearby(ctx, p.lat, p.lon, p.radiusKm, affinityCategories, since, sectionLimit)
			if err != nil {
				return models.FeedSection{}, fmt.Errorf("nearby recent category query failed: %w", err)
			}
		}
		if len(shops) == 0 {
			shops, err = s.Shops.FindRecentNearby(ctx, p.lat, p.lon, p.radiusKm, nil, since, sectionLimit)
			if err != nil {
				return models.FeedSection{}, fmt.Errorf("nearby recent query failed: %w", err)
			}
		}
	}
	if len(shops) == 0 {
		shops, err = s.Shops.FindRecent(ctx, since, sectionLimit)
		if err != nil {
			return models.FeedSection{}, fmt.Errorf("global recent query failed: %w", err)
		}
	}

	return s.packSection(models.FeedSection{
		Title:       "New Shops",
		TitleMm:     "ဆိုင်အသစ်များ",
		Description: "Fresh openings this month",
		SectionType: models.SectionNewShops,
	}, shops, p, "Newly opened", "ဖွင့်လှစ်ခါစ"), nil
}

// packSection applies the dietary safety net, annotates the survivors, and
// finalizes the section counts.
func (s *DefaultFeedService) packSection(section models.FeedSection, shops []models.Shop, p sectionParams, reason, reasonMm string) models.FeedSection {
	shops = applyDietaryFilter(shops, p.user)
	section.Shops = buildItems(shops, p, reason, reasonMm)
	section.TotalCount = len(section.Shops)
	return section
}
