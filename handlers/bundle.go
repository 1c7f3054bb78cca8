package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Feed endpoints
	GetFeedHandler      gin.HandlerFunc
	GetGuestFeedHandler gin.HandlerFunc

	// Recommendation endpoints
	GetRecommendationsHandler gin.HandlerFunc

	// Trending endpoints
	GetTopTrendingHandler    gin.HandlerFunc
	RecomputeTrendingHandler gin.HandlerFunc
}
