package recommendation

import (
	"context"
	"fmt"

	activityRepo "tastetrail/database/repository/activity"
	favoriteRepo "tastetrail/database/repository/favorite"
	reviewRepo "tastetrail/database/repository/review"
	shopRepo "tastetrail/database/repository/shop"
	userRepo "tastetrail/database/repository/user"
	"tastetrail/models"

	"go.uber.org/zap"
)

const (
	maxRecommendations = 10
	maxTopCategories   = 5

	// Reviews at or above this rating contribute their shop's category to
	// the preferred set.
	positiveReviewRating = 3
)

// Identity names the requester: an authenticated username, an anonymous
// device, or neither.
type Identity struct {
	Username string
	DeviceID string
}

// Anonymous reports whether the identity carries neither a user nor a device.
func (id Identity) Anonymous() bool {
	return id.Username == "" && id.DeviceID == ""
}

// AffinityProfile is the per-request derived view of what a requester likes
// and what they already know. Ephemeral; lives for one request.
type AffinityProfile struct {
	PreferredCategories []string
	ExcludedIDs         models.NonEmptyIDSet
}

// RecommendationService produces personalized shop recommendations. Callers
// that already hold the user and profile use the split methods so favorites,
// reviews and activity history are fetched once per request.
type RecommendationService interface {
	Recommend(ctx context.Context, identity Identity) ([]models.Shop, error)
	BuildProfileForUser(ctx context.Context, user *models.User, deviceID string) (AffinityProfile, error)
	RecommendFromProfile(ctx context.Context, profile AffinityProfile) ([]models.Shop, error)
}

// DefaultRecommendationService implements RecommendationService.
type DefaultRecommendationService struct {
	Shops      shopRepo.ShopRepository
	Users      userRepo.UserRepository
	Favorites  favoriteRepo.FavoriteRepository
	Reviews    reviewRepo.ReviewRepository
	Activities activityRepo.ActivityRepository
	Logger     *zap.Logger
}

// BuildProfileForUser derives preferred categories and excluded shop ids
// from the user's favorites, positively-rated reviews and activity history.
// A nil user skips straight to the device path, which contributes
// categories only, never exclusions.
func (s *DefaultRecommendationService) BuildProfileForUser(ctx context.Context, user *models.User, deviceID string) (AffinityProfile, error) {
	profile := AffinityProfile{ExcludedIDs: models.NewNonEmptyIDSet()}

	seen := make(map[string]struct{})
	addCategory := func(category string) {
		if category == "" {
			return
		}
		if _, ok := seen[category]; ok {
			return
		}
		seen[category] = struct{}{}
		profile.PreferredCategories = append(profile.PreferredCategories, category)
	}

	if user != nil {
		favorites, err := s.Favorites.ListByUser(ctx, user.ID)
		if err != nil {
			return profile, err
		}
		for _, fav := range favorites {
			profile.ExcludedIDs.Add(fav.ShopID)
			addCategory(fav.ShopCategory)
		}

		reviews, err := s.Reviews.ListByUser(ctx, user.ID)
		if err != nil {
			return profile, err
		}
		for _, review := range reviews {
			profile.ExcludedIDs.Add(review.ShopID)
			if review.Rating >= positiveReviewRating {
				addCategory(review.ShopCategory)
			}
		}

		topCategories, err := s.Activities.TopCategoriesByUser(ctx, user.ID, maxTopCategories)
		if err != nil {
			return profile, err
		}
		for _, category := range topCategories {
			addCategory(category)
		}
	}

	if deviceID != "" {
		topCategories, err := s.Activities.TopCategoriesByDevice(ctx, deviceID, maxTopCategories)
		if err != nil {
			return profile, err
		}
		for _, category := range topCategories {
			addCategory(category)
		}
	}

	return profile, nil
}

// RecommendFromProfile returns up to 10 shops for an already-built profile:
// category-affinity matches first, then globally top-trending fillers,
// deduplicated by shop id. An empty profile degenerates to pure trending
// fill.
func (s *DefaultRecommendationService) RecommendFromProfile(ctx context.Context, profile AffinityProfile) ([]models.Shop, error) {
	var recommendations []models.Shop
	var err error
	if len(profile.PreferredCategories) > 0 {
		recommendations, err = s.Shops.FindByCategoriesExcluding(ctx, profile.PreferredCategories, profile.ExcludedIDs)
		if err != nil {
			return nil, fmt.Errorf("category recommendation query failed: %w", err)
		}
	}

	if len(recommendations) < maxRecommendations {
		fillers, err := s.Shops.TopByTrendingScoreExcluding(ctx, profile.ExcludedIDs, maxRecommendations)
		if err != nil {
			return nil, fmt.Errorf("trending fill query failed: %w", err)
		}

		present := make(map[int64]struct{}, len(recommendations))
		for _, shop := range recommendations {
			present[shop.ID] = struct{}{}
		}
		for _, shop := range fillers {
			if len(recommendations) >= maxRecommendations {
				break
			}
			if _, ok := present[shop.ID]; ok {
				continue
			}
			present[shop.ID] = struct{}{}
			recommendations = append(recommendations, shop)
		}
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations, nil
}

// Recommend resolves the identity to a user, builds the affinity profile and
// delegates to RecommendFromProfile.
func (s *DefaultRecommendationService) Recommend(ctx context.Context, identity Identity) ([]models.Shop, error) {
	var user *models.User
	if identity.Username != "" {
		var err error
		user, err = s.Users.GetByUsername(ctx, identity.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
	}

	profile, err := s.BuildProfileForUser(ctx, user, identity.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to build affinity profile: %w", err)
	}

	if identity.Anonymous() {
		s.Logger.Debug("anonymous recommendation request served from trending fill")
	}
	return s.RecommendFromProfile(ctx, profile)
}
