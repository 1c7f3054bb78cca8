package routes

import (
	"time"

	"tastetrail/handlers"
	"tastetrail/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterFeedRoutes registers the personalized feed endpoints.
func RegisterFeedRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/feed")
	{
		api.Use(middleware.OptionalIdentityMiddleware())
		api.GET("", hb.GetFeedHandler)
		api.GET("/guest", hb.GetGuestFeedHandler)
	}
}

// RegisterRecommendationRoutes registers recommendation endpoints.
func RegisterRecommendationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/recommendations")
	{
		api.Use(middleware.OptionalIdentityMiddleware())
		api.GET("", hb.GetRecommendationsHandler)
	}
}

// RegisterTrendingRoutes registers trending endpoints. The recompute
// trigger requires authentication.
func RegisterTrendingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/trending")
	{
		api.GET("/top", hb.GetTopTrendingHandler)

		protected := api.Group("")
		protected.Use(middleware.OptionalIdentityMiddleware(), middleware.RequireIdentityMiddleware())
		protected.POST("/recompute", hb.RecomputeTrendingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Device-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterFeedRoutes(r, hb)
	RegisterRecommendationRoutes(r, hb)
	RegisterTrendingRoutes(r, hb)
	RegisterHealthRoute(r)
}
