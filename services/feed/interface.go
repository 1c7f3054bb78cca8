package feed

import (
	"context"

	"tastetrail/models"
)

// Request carries everything known about a feed requester. Optional fields
// are pointers; absence changes which query paths the sections take.
type Request struct {
	Username   string
	DeviceID   string
	Latitude   *float64
	Longitude  *float64
	RadiusKm   *float64
	DistrictID *int64
}

// HasLocation reports whether the request carries a usable coordinate pair.
func (r Request) HasLocation() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// FeedService assembles the four-section personalized feed.
type FeedService interface {
	GenerateFeed(ctx context.Context, req Request) (*models.PersonalizedFeed, error)
}
