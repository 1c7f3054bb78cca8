package feed

import (
	"context"
	"time"

	userRepo "tastetrail/database/repository/user"
	"tastetrail/models"
)

const (
	newUserMaxAgeDays    = 7
	engagementWindowDays = 30
	powerUserThreshold   = 50.0
)

// SegmentClassifier classifies a user into an engagement segment. Callers
// that already hold the user record pass it to ClassifyUser so the lookup is
// not repeated.
type SegmentClassifier interface {
	Classify(ctx context.Context, username string) (models.UserSegment, error)
	ClassifyUser(ctx context.Context, user *models.User) (models.UserSegment, error)
}

// DefaultSegmentClassifier implements SegmentClassifier against the user
// repository. The aggregate fetch is its only I/O.
type DefaultSegmentClassifier struct {
	Users userRepo.UserRepository
}

func (c *DefaultSegmentClassifier) Classify(ctx context.Context, username string) (models.UserSegment, error) {
	user, err := c.Users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return c.ClassifyUser(ctx, user)
}

// ClassifyUser segments an already-loaded user. A nil user is casual.
func (c *DefaultSegmentClassifier) ClassifyUser(ctx context.Context, user *models.User) (models.UserSegment, error) {
	if user == nil {
		return models.SegmentCasual, nil
	}

	now := time.Now()
	if segment, decided := classifyByAge(user.CreatedAt, now); decided {
		return segment, nil
	}

	stats, err := c.Users.GetEngagement(ctx, user.ID, now.AddDate(0, 0, -engagementWindowDays))
	if err != nil {
		return "", err
	}
	return classifyByEngagement(*stats), nil
}

// classifyByAge short-circuits classification for accounts registered within
// the last week.
func classifyByAge(createdAt, now time.Time) (models.UserSegment, bool) {
	if createdAt.IsZero() {
		return "", false
	}
	if now.Sub(createdAt).Hours()/24 <= newUserMaxAgeDays {
		return models.SegmentNewUser, true
	}
	return "", false
}

// classifyByEngagement applies the dormancy rule first, then the weighted
// engagement score.
func classifyByEngagement(stats models.EngagementStats) models.UserSegment {
	if stats.RecentActivities == 0 && stats.TotalActivities > 0 {
		return models.SegmentDormant
	}
	if EngagementScore(stats) >= powerUserThreshold {
		return models.SegmentPowerUser
	}
	return models.SegmentCasual
}

// EngagementScore computes the 0-100 engagement score.
// Weights: activities 40%, favorites 30%, reviews 30%.
func EngagementScore(stats models.EngagementStats) float64 {
	activityScore := minF(float64(stats.TotalActivities)/100.0, 1.0) * 40
	favoriteScore := minF(float64(stats.TotalFavorites)/20.0, 1.0) * 30
	reviewScore := minF(float64(stats.TotalReviews)/10.0, 1.0) * 30
	return activityScore + favoriteScore + reviewScore
}

// SegmentDescription returns a human-readable description for a segment.
func SegmentDescription(segment models.UserSegment) string {
	switch segment {
	case models.SegmentNewUser:
		return "Welcome! Discovering new places"
	case models.SegmentPowerUser:
		return "Food enthusiast"
	case models.SegmentDormant:
		return "Welcome back!"
	default:
		return "Occasional explorer"
	}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
