package trending

import (
	"context"

	"tastetrail/models"
)

// TrendingService owns the trending score lifecycle: the periodic batch
// recomputation and the cached top-N read path.
type TrendingService interface {
	// RecomputeScores recalculates every shop's trending score and persists
	// the batch. Idempotent and safe to invoke concurrently; invocations are
	// serialized so batches never overlap.
	RecomputeScores(ctx context.Context) error
	// TopTrending returns the top n shops by trending score descending.
	TopTrending(ctx context.Context, n int) ([]models.Shop, error)
}

// TopCache holds the short-lived top trending shops list.
type TopCache interface {
	Get(ctx context.Context) ([]models.Shop, bool)
	Set(ctx context.Context, shops []models.Shop)
	Invalidate(ctx context.Context) error
}
