package handlers

import (
	"net/http"

	"tastetrail/middleware"
	"tastetrail/services/recommendation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecommendationHandler exposes shop recommendations over HTTP.
type RecommendationHandler struct {
	Recommender recommendation.RecommendationService
}

// NewRecommendationHandler creates a RecommendationHandler.
func NewRecommendationHandler(recommender recommendation.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{Recommender: recommender}
}

// GetRecommendationsHandler returns up to 10 recommended shops for the
// requester. Anonymous requests receive the trending fill.
func (h *RecommendationHandler) GetRecommendationsHandler(c *gin.Context) {
	logger := getLogger(c)

	identity := recommendation.Identity{
		Username: c.GetString(middleware.ContextUsernameKey),
		DeviceID: c.GetString(middleware.ContextDeviceIDKey),
	}

	shops, err := h.Recommender.Recommend(c.Request.Context(), identity)
	if err != nil {
		logger.Error("Failed to build recommendations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get recommendations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shops": shops})
}
