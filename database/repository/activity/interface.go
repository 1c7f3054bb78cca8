package activityRepo

import (
	"context"
	"time"

	"tastetrail/models"
)

// ActivityRepository is the aggregate view over the activity log. The engine
// never reads individual events, only per-shop counts and per-identity
// category rollups.
type ActivityRepository interface {
	// CountByShopSince returns shopId -> event count for one activity type.
	CountByShopSince(ctx context.Context, activityType models.ActivityType, since time.Time) (map[int64]int64, error)
	// CountByShopForTypesSince returns shopId -> event count summed over a set of types.
	CountByShopForTypesSince(ctx context.Context, types []models.ActivityType, since time.Time) (map[int64]int64, error)
	// TopCategoriesByUser returns the user's most-interacted shop categories, most frequent first.
	TopCategoriesByUser(ctx context.Context, userID int64, limit int) ([]string, error)
	// TopCategoriesByDevice returns the device's most-interacted shop categories, most frequent first.
	TopCategoriesByDevice(ctx context.Context, deviceID string, limit int) ([]string, error)
}
