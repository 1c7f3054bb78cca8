package shopRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BulkSaveTrendingScores persists recomputed scores in a single batch write.
// Shops absent from the map keep their previous score.
func (r *MongoShopRepo) BulkSaveTrendingScores(ctx context.Context, scores map[int64]float64) error {
	if len(scores) == 0 {
		return nil
	}

	ctx, cancel := newContext(ctx, 30*time.Second)
	defer cancel()

	writes := make([]mongo.WriteModel, 0, len(scores))
	for id, score := range scores {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"id": id}).
			SetUpdate(bson.M{"$set": bson.M{
				"trendingScore": score,
				"updatedAt":     time.Now(),
			}}))
	}

	// Unordered so one bad document does not poison the batch.
	opts := options.BulkWrite().SetOrdered(false)
	if _, err := r.coll.BulkWrite(ctx, writes, opts); err != nil {
		return fmt.Errorf("failed to bulk save trending scores: %w", err)
	}
	return nil
}
