package handlers

import (
	"net/http"
	"strconv"

	"tastetrail/services/trending"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TrendingHandler exposes the trending score engine over HTTP.
type TrendingHandler struct {
	Trending trending.TrendingService
}

// NewTrendingHandler creates a TrendingHandler.
func NewTrendingHandler(trendingSvc trending.TrendingService) *TrendingHandler {
	return &TrendingHandler{Trending: trendingSvc}
}

// GetTopTrendingHandler returns the current top trending shops, served from
// cache when warm.
func (h *TrendingHandler) GetTopTrendingHandler(c *gin.Context) {
	logger := getLogger(c)

	n := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		n = parsed
	}

	shops, err := h.Trending.TopTrending(c.Request.Context(), n)
	if err != nil {
		logger.Error("Failed to get top trending shops", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get trending shops"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shops": shops})
}

// RecomputeTrendingHandler triggers a synchronous score recompute. Intended
// for operators; the scheduled worker covers the normal path. The service
// serializes batches, so a trigger landing mid-run waits for it to finish.
func (h *TrendingHandler) RecomputeTrendingHandler(c *gin.Context) {
	logger := getLogger(c)

	if err := h.Trending.RecomputeScores(c.Request.Context()); err != nil {
		logger.Error("Manual trending recompute failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recompute failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
