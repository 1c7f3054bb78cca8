package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	geoRepo "tastetrail/database/repository/geo"
	shopRepo "tastetrail/database/repository/shop"
	userRepo "tastetrail/database/repository/user"
	"tastetrail/models"
	"tastetrail/services/recommendation"
	"tastetrail/services/trending"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultRadiusKm = 5.0
	maxRadiusKm     = 50.0

	sectionLimit      = 10
	newShopWindowDays = 30
)

// DefaultFeedService implements FeedService.
type DefaultFeedService struct {
	Shops       shopRepo.ShopRepository
	Users       userRepo.UserRepository
	Geo         geoRepo.GeoRepository
	Recommender recommendation.RecommendationService
	Trending    trending.TrendingService
	Segments    SegmentClassifier
	Logger      *zap.Logger
}

// sectionParams is the resolved, immutable per-request context shared by the
// four section builders.
type sectionParams struct {
	hasLocation bool
	lat, lon    float64
	radiusKm    float64
	districtID  int64 // 0 when no district applies
	timeContext models.TimeContext
	identity    recommendation.Identity
	profile     recommendation.AffinityProfile
	user        *models.User
	now         time.Time
}

type sectionResult struct {
	section models.FeedSection
	err     error
}

// normalizeRadius is the single clamping layer for the search radius.
// Absent or non-positive values default to 5 km; values above 50 km are
// capped there.
func normalizeRadius(radiusKm *float64) float64 {
	if radiusKm == nil || *radiusKm <= 0 {
		return defaultRadiusKm
	}
	if *radiusKm > maxRadiusKm {
		return maxRadiusKm
	}
	return *radiusKm
}

// GenerateFeed resolves the requester's context, fans the four section
// builds out concurrently, and packages the result. Any builder error fails
// the whole request; no partial feed is returned.
func (s *DefaultFeedService) GenerateFeed(ctx context.Context, req Request) (*models.PersonalizedFeed, error) {
	now := time.Now()
	identity := recommendation.Identity{Username: req.Username, DeviceID: req.DeviceID}

	params := sectionParams{
		hasLocation: req.HasLocation(),
		radiusKm:    normalizeRadius(req.RadiusKm),
		timeContext: CurrentContext(now),
		identity:    identity,
		now:         now,
	}
	if params.hasLocation {
		params.lat = *req.Latitude
		params.lon = *req.Longitude
	}

	// The user record is loaded once here and threaded through segment
	// classification, profile building and the section builders.
	segment := models.SegmentCasual
	if req.Username != "" {
		var err error
		params.user, err = s.Users.GetByUsername(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		segment, err = s.Segments.ClassifyUser(ctx, params.user)
		if err != nil {
			return nil, fmt.Errorf("failed to classify user segment: %w", err)
		}
	}

	profile, err := s.Recommender.BuildProfileForUser(ctx, params.user, req.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to build affinity profile: %w", err)
	}
	params.profile = profile

	if req.DistrictID != nil {
		district, err := s.Geo.GetDistrictByID(ctx, *req.DistrictID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve district: %w", err)
		}
		if district == nil {
			s.Logger.Warn("unknown district in feed request, ignoring",
				zap.Int64("districtId", *req.DistrictID))
		} else {
			params.districtID = district.ID
		}
	}

	builders := map[models.FeedSectionType]func(context.Context, sectionParams) (models.FeedSection, error){
		models.SectionForYou:           s.buildForYouNow,
		models.SectionTrendingNearby:   s.buildTrendingNearby,
		models.SectionBasedOnFavorites: s.buildBasedOnFavorites,
		models.SectionNewShops:         s.buildNewShops,
	}

	var wg sync.WaitGroup
	results := make(chan sectionResult, len(builders))
	for sectionType, build := range builders {
		wg.Add(1)
		go func(sectionType models.FeedSectionType, build func(context.Context, sectionParams) (models.FeedSection, error)) {
			defer wg.Done()
			section, err := build(ctx, params)
			if err != nil {
				err = fmt.Errorf("section %s: %w", sectionType, err)
			}
			results <- sectionResult{section: section, err: err}
		}(sectionType, build)
	}
	wg.Wait()
	close(results)

	feed := &models.PersonalizedFeed{
		Metadata: models.FeedMetadata{
			FeedID:       uuid.NewString(),
			GeneratedAt:  now,
			UserSegment:  segment,
			TimeContext:  params.timeContext,
			LocationUsed: params.hasLocation,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
			RadiusKm:     params.radiusKm,
		},
	}

	for result := range results {
		if result.err != nil {
			return nil, fmt.Errorf("feed generation failed: %w", result.err)
		}
		switch result.section.SectionType {
		case models.SectionForYou:
			feed.ForYouNow = result.section
		case models.SectionTrendingNearby:
			feed.TrendingNearby = result.section
		case models.SectionBasedOnFavorites:
			feed.BasedOnFavorites = result.section
		case models.SectionNewShops:
			feed.NewShops = result.section
		}
	}

	s.Logger.Info("feed generated",
		zap.String("feedId", feed.Metadata.FeedID),
		zap.String("segment", string(segment)),
		zap.String("timeContext", string(params.timeContext)),
		zap.Bool("locationUsed", params.hasLocation))
	return feed, nil
}
