package trending

import (
	"context"
	"fmt"
	"sync"
	"time"

	activityRepo "tastetrail/database/repository/activity"
	favoriteRepo "tastetrail/database/repository/favorite"
	reviewRepo "tastetrail/database/repository/review"
	shopRepo "tastetrail/database/repository/shop"
	"tastetrail/models"

	"go.uber.org/zap"
)

// Weights for scoring. Quality signals outweigh raw views.
const (
	viewWeight       = 1.0
	favoriteWeight   = 10.0
	reviewWeight     = 20.0
	conversionWeight = 100.0

	// Fresh views (last 24h) carry more weight than weekly ones, a simple
	// hot-vs-warm decay.
	freshViewBoost = 3.0

	defaultTopN = 10
)

// Signals are one shop's aggregate counts for the scoring window.
type Signals struct {
	FreshViews  int64
	WeeklyViews int64
	Favorites   int64
	Reviews     int64
	Conversions int64
}

// DefaultTrendingService implements TrendingService.
type DefaultTrendingService struct {
	Shops      shopRepo.ShopRepository
	Scores     shopRepo.ScoreWriter
	Activities activityRepo.ActivityRepository
	Favorites  favoriteRepo.FavoriteRepository
	Reviews    reviewRepo.ReviewRepository
	Cache      TopCache
	Logger     *zap.Logger

	recomputeMu sync.Mutex
}

// RecomputeScores pulls bulk signal aggregates, scores every active shop in
// one in-memory pass and persists the result as a single batch write. A shop
// that fails to score is logged and skipped; its previous score survives.
// Batches never overlap: a second caller blocks until the running one
// finishes, so the manual trigger cannot interleave with the scheduled run.
func (s *DefaultTrendingService) RecomputeScores(ctx context.Context) error {
	s.recomputeMu.Lock()
	defer s.recomputeMu.Unlock()

	start := time.Now()
	s.Logger.Info("Starting trending score calculation")

	now := time.Now()
	oneDayAgo := now.AddDate(0, 0, -1)
	sevenDaysAgo := now.AddDate(0, 0, -7)

	shops, err := s.Shops.GetAllActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to load shops for scoring: %w", err)
	}

	freshViews, err := s.Activities.CountByShopSince(ctx, models.ActivityViewShop, oneDayAgo)
	if err != nil {
		return fmt.Errorf("failed to count fresh views: %w", err)
	}
	weeklyViews, err := s.Activities.CountByShopSince(ctx, models.ActivityViewShop, sevenDaysAgo)
	if err != nil {
		return fmt.Errorf("failed to count weekly views: %w", err)
	}
	favorites, err := s.Favorites.CountByShopSince(ctx, sevenDaysAgo)
	if err != nil {
		return fmt.Errorf("failed to count favorites: %w", err)
	}
	reviews, err := s.Reviews.CountByShopSince(ctx, sevenDaysAgo)
	if err != nil {
		return fmt.Errorf("failed to count reviews: %w", err)
	}
	conversions, err := s.Activities.CountByShopForTypesSince(ctx, models.ConversionActivityTypes, sevenDaysAgo)
	if err != nil {
		return fmt.Errorf("failed to count conversions: %w", err)
	}

	scores := make(map[int64]float64, len(shops))
	for _, shop := range shops {
		signals := Signals{
			FreshViews:  freshViews[shop.ID],
			WeeklyViews: weeklyViews[shop.ID],
			Favorites:   favorites[shop.ID],
			Reviews:     reviews[shop.ID],
			Conversions: conversions[shop.ID],
		}
		score, err := ComputeScore(shop, signals, now)
		if err != nil {
			s.Logger.Error("Error calculating score for shop",
				zap.Int64("shopId", shop.ID), zap.Error(err))
			continue
		}
		scores[shop.ID] = score
	}

	if err := s.Scores.BulkSaveTrendingScores(ctx, scores); err != nil {
		return err
	}

	// Drop the cached top list so the next read sees fresh scores.
	if err := s.Cache.Invalidate(ctx); err != nil {
		s.Logger.Warn("failed to evict trending cache", zap.Error(err))
	}

	s.Logger.Info("Trending score calculation completed",
		zap.Int("shops", len(scores)),
		zap.Duration("took", time.Since(start)))
	return nil
}

// ComputeScore calculates one shop's trending score from its signal
// aggregates. Deterministic given the inputs and the reference time.
func ComputeScore(shop models.Shop, signals Signals, now time.Time) (float64, error) {
	if shop.ID <= 0 {
		return 0, fmt.Errorf("shop has invalid id %d", shop.ID)
	}

	baseScore := float64(signals.FreshViews)*viewWeight*freshViewBoost +
		float64(signals.WeeklyViews)*viewWeight +
		float64(signals.Favorites)*favoriteWeight +
		float64(signals.Reviews)*reviewWeight +
		float64(signals.Conversions)*conversionWeight

	return baseScore * NewnessMultiplier(shop.CreatedAt, now), nil
}

// NewnessMultiplier boosts recently created shops to counteract their
// cold-start disadvantage: up to 14 days x2.0, up to 30 days x1.5,
// otherwise x1.0.
func NewnessMultiplier(createdAt, now time.Time) float64 {
	if createdAt.IsZero() {
		return 1.0
	}
	daysOld := int(now.Sub(createdAt).Hours() / 24)
	switch {
	case daysOld <= 14:
		return 2.0
	case daysOld <= 30:
		return 1.5
	default:
		return 1.0
	}
}

// TopTrending returns the top n shops by trending score, serving from the
// short-TTL cache when possible.
func (s *DefaultTrendingService) TopTrending(ctx context.Context, n int) ([]models.Shop, error) {
	if n <= 0 {
		n = defaultTopN
	}

	if n <= defaultTopN {
		if cached, ok := s.Cache.Get(ctx); ok {
			if n < len(cached) {
				return cached[:n], nil
			}
			return cached, nil
		}
	}

	shops, err := s.Shops.TopByTrendingScore(ctx, maxInt(n, defaultTopN))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top trending shops: %w", err)
	}

	if len(shops) > 0 {
		top := shops
		if len(top) > defaultTopN {
			top = top[:defaultTopN]
		}
		s.Cache.Set(ctx, top)
	}

	if n < len(shops) {
		return shops[:n], nil
	}
	return shops, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
