package shopRepo

import (
	"context"
	"time"

	"tastetrail/models"
)

// ShopRepository is the read surface of the shop catalog. It intentionally
// exposes no way to mutate trending scores; that capability lives on
// ScoreWriter so only the trending engine can hold it.
type ShopRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Shop, error)
	GetBySlug(ctx context.Context, slug string) (*models.Shop, error)
	GetAllActive(ctx context.Context) ([]models.Shop, error)

	FindByCategories(ctx context.Context, categories []string, limit int) ([]models.Shop, error)
	FindByCategoriesExcluding(ctx context.Context, categories []string, excluded models.NonEmptyIDSet) ([]models.Shop, error)

	FindNearbyByCategories(ctx context.Context, lat, lon, radiusKm float64, categories []string, limit int) ([]models.Shop, error)
	FindNearbyTrending(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]models.Shop, error)
	FindRecentNearby(ctx context.Context, lat, lon, radiusKm float64, categories []string, since time.Time, limit int) ([]models.Shop, error)

	FindByDistrictAndCategories(ctx context.Context, districtID int64, categories []string, limit int) ([]models.Shop, error)
	FindTrendingByDistrict(ctx context.Context, districtID int64, limit int) ([]models.Shop, error)
	FindRecentByDistrict(ctx context.Context, districtID int64, categories []string, since time.Time, limit int) ([]models.Shop, error)

	FindRecent(ctx context.Context, since time.Time, limit int) ([]models.Shop, error)

	TopByTrendingScore(ctx context.Context, n int) ([]models.Shop, error)
	TopByTrendingScoreExcluding(ctx context.Context, excluded models.NonEmptyIDSet, n int) ([]models.Shop, error)
}

// ScoreWriter persists recomputed trending scores in one batch.
type ScoreWriter interface {
	BulkSaveTrendingScores(ctx context.Context, scores map[int64]float64) error
}
