package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tastetrail/config"
	"tastetrail/cron"
	"tastetrail/database"
	activityRepoPkg "tastetrail/database/repository/activity"
	favoriteRepoPkg "tastetrail/database/repository/favorite"
	geoRepoPkg "tastetrail/database/repository/geo"
	reviewRepoPkg "tastetrail/database/repository/review"
	shopRepoPkg "tastetrail/database/repository/shop"
	userRepoPkg "tastetrail/database/repository/user"
	"tastetrail/handlers"
	"tastetrail/middleware"
	"tastetrail/routes"
	"tastetrail/services/feed"
	"tastetrail/services/recommendation"
	"tastetrail/services/trending"
	"tastetrail/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitFeedCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	shopRepo := shopRepoPkg.NewMongoShopRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	activityRepo := activityRepoPkg.NewMongoActivityRepo()
	favoriteRepo := favoriteRepoPkg.NewMongoFavoriteRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	geoRepo := geoRepoPkg.NewMongoGeoRepo()

	// services.
	trendingService := &trending.DefaultTrendingService{
		Shops:      shopRepo,
		Scores:     shopRepo,
		Activities: activityRepo,
		Favorites:  favoriteRepo,
		Reviews:    reviewRepo,
		Cache:      trending.NewRedisTopCache(utils.GetFeedCacheClient(), logger),
		Logger:     logger,
	}

	recommendationService := &recommendation.DefaultRecommendationService{
		Shops:      shopRepo,
		Users:      userRepo,
		Favorites:  favoriteRepo,
		Reviews:    reviewRepo,
		Activities: activityRepo,
		Logger:     logger,
	}

	feedService := &feed.DefaultFeedService{
		Shops:       shopRepo,
		Users:       userRepo,
		Geo:         geoRepo,
		Recommender: recommendationService,
		Trending:    trendingService,
		Segments:    &feed.DefaultSegmentClassifier{Users: userRepo},
		Logger:      logger,
	}

	feedHandler := handlers.NewFeedHandler(feedService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	trendingHandler := handlers.NewTrendingHandler(trendingService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		GetFeedHandler:            feedHandler.GetFeedHandler,
		GetGuestFeedHandler:       feedHandler.GetGuestFeedHandler,
		GetRecommendationsHandler: recommendationHandler.GetRecommendationsHandler,
		GetTopTrendingHandler:     trendingHandler.GetTopTrendingHandler,
		RecomputeTrendingHandler:  trendingHandler.RecomputeTrendingHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background score recompute and dependency health checks.
	cron.InitTrendingWorker(trendingService)
	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient(), utils.GetFeedCacheClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
