package handlers

import (
	"net/http"
	"strconv"

	"tastetrail/middleware"
	"tastetrail/services/feed"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FeedHandler exposes the personalized feed over HTTP.
type FeedHandler struct {
	Feed feed.FeedService
}

// NewFeedHandler creates a FeedHandler.
func NewFeedHandler(feedSvc feed.FeedService) *FeedHandler {
	return &FeedHandler{Feed: feedSvc}
}

// GetFeedHandler returns the four-section personalized feed. Identity,
// location, radius and district are all optional; the assembler degrades
// gracefully for whatever is missing.
func (h *FeedHandler) GetFeedHandler(c *gin.Context) {
	h.serveFeed(c, c.GetString(middleware.ContextUsernameKey))
}

// GetGuestFeedHandler serves the feed as if the requester were anonymous,
// even when a valid token is attached. Device affinity still applies.
func (h *FeedHandler) GetGuestFeedHandler(c *gin.Context) {
	h.serveFeed(c, "")
}

// serveFeed parses requester context and delegates to the feed service.
// Malformed location, radius or district values are dropped rather than
// rejected; the feed always renders with whatever remains usable.
func (h *FeedHandler) serveFeed(c *gin.Context, username string) {
	logger := getLogger(c)

	req := feed.Request{
		Username:   username,
		DeviceID:   c.GetString(middleware.ContextDeviceIDKey),
		Latitude:   floatQueryOrNil(c, "lat", logger),
		Longitude:  floatQueryOrNil(c, "lon", logger),
		RadiusKm:   floatQueryOrNil(c, "radiusKm", logger),
		DistrictID: intQueryOrNil(c, "districtId", logger),
	}

	// A lone coordinate is unusable; drop the pair and continue.
	if (req.Latitude == nil) != (req.Longitude == nil) {
		logger.Debug("Dropping incomplete coordinate pair")
		req.Latitude, req.Longitude = nil, nil
	}

	personalizedFeed, err := h.Feed.GenerateFeed(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to generate feed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate feed"})
		return
	}

	c.JSON(http.StatusOK, personalizedFeed)
}

// floatQueryOrNil parses a float query parameter. Absent or malformed
// values become nil.
func floatQueryOrNil(c *gin.Context, name string, logger *zap.Logger) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logger.Debug("Dropping malformed query parameter",
			zap.String("param", name), zap.String("value", raw))
		return nil
	}
	return &value
}

// intQueryOrNil parses an int64 query parameter. Absent or malformed values
// become nil.
func intQueryOrNil(c *gin.Context, name string, logger *zap.Logger) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logger.Debug("Dropping malformed query parameter",
			zap.String("param", name), zap.String("value", raw))
		return nil
	}
	return &value
}
