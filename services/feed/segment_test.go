package feed

import (
	"context"
	"testing"
	"time"

	"tastetrail/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyUnknownUserIsCasual(t *testing.T) {
	classifier := &DefaultSegmentClassifier{Users: &stubUsers{}}

	segment, err := classifier.Classify(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, models.SegmentCasual, segment)
}

func TestClassifyRecentAccountIsNewUser(t *testing.T) {
	classifier := &DefaultSegmentClassifier{Users: &stubUsers{
		user: &models.User{ID: 1, Username: "maya", CreatedAt: time.Now().AddDate(0, 0, -3)},
	}}

	segment, err := classifier.Classify(context.Background(), "maya")
	require.NoError(t, err)
	assert.Equal(t, models.SegmentNewUser, segment)
}

func TestClassifyDormantBeforeScoring(t *testing.T) {
	classifier := &DefaultSegmentClassifier{Users: &stubUsers{
		user:  &models.User{ID: 1, Username: "maya", CreatedAt: time.Now().AddDate(-1, 0, 0)},
		stats: &models.EngagementStats{TotalActivities: 200, RecentActivities: 0},
	}}

	segment, err := classifier.Classify(context.Background(), "maya")
	require.NoError(t, err)
	assert.Equal(t, models.SegmentDormant, segment)
}

func TestClassifyPowerUser(t *testing.T) {
	classifier := &DefaultSegmentClassifier{Users: &stubUsers{
		user:  &models.User{ID: 1, Username: "maya", CreatedAt: time.Now().AddDate(-1, 0, 0)},
		stats: &models.EngagementStats{TotalActivities: 100, TotalFavorites: 20, TotalReviews: 10, RecentActivities: 12},
	}}

	segment, err := classifier.Classify(context.Background(), "maya")
	require.NoError(t, err)
	assert.Equal(t, models.SegmentPowerUser, segment)
}

func TestEngagementScoreWeightsAndCaps(t *testing.T) {
	full := models.EngagementStats{TotalActivities: 100, TotalFavorites: 20, TotalReviews: 10}
	assert.Equal(t, 100.0, EngagementScore(full))

	// Exceeding each cap must not push the score past 100.
	over := models.EngagementStats{TotalActivities: 10000, TotalFavorites: 500, TotalReviews: 300}
	assert.Equal(t, 100.0, EngagementScore(over))

	partial := models.EngagementStats{TotalActivities: 25, TotalFavorites: 5, TotalReviews: 2}
	assert.InDelta(t, 23.5, EngagementScore(partial), 1e-9)

	assert.Equal(t, 0.0, EngagementScore(models.EngagementStats{}))
}
