package cron

import (
	"context"
	"log"
	"time"

	"tastetrail/config"
	"tastetrail/services/trending"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeTrendingRecompute = "trending:recompute"

// InitTrendingWorker runs the score recompute worker in background.
// Concurrency is pinned to 1 so recompute batches never overlap.
func InitTrendingWorker(trendingSvc trending.TrendingService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTrendingQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeTrendingRecompute, handleRecomputeTask(trendingSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	go runScheduler(redisOpts)

	// Start async worker with retry logic
	go func() {
		log.Println("[TrendingWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[TrendingWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[TrendingWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// runScheduler enqueues the recompute task on the configured interval.
func runScheduler(redisOpts asynq.RedisClientOpt) {
	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{
		Location: time.UTC,
	})

	spec := config.AppConfig.TrendingRecomputeEvery
	if spec == "" {
		spec = "@every 1h"
	}

	task := asynq.NewTask(TypeTrendingRecompute, nil)
	if _, err := scheduler.Register(spec, task); err != nil {
		log.Fatalf("[TrendingScheduler] ❗ Failed to register recompute schedule %q: %v", spec, err)
	}

	log.Printf("[TrendingScheduler] ⏰ Recompute scheduled: %s", spec)
	if err := scheduler.Run(); err != nil {
		log.Fatalf("[TrendingScheduler] ❗ Scheduler stopped: %v", err)
	}
}

func handleRecomputeTask(trendingSvc trending.TrendingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		started := time.Now()
		log.Println("[TrendingHandler] 🔄 Recomputing trending scores...")

		if err := trendingSvc.RecomputeScores(ctx); err != nil {
			log.Printf("[TrendingHandler] ❌ Recompute failed: %v", err)
			return err
		}

		log.Printf("[TrendingHandler] ✅ Recompute finished in %s", time.Since(started))
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTrendingQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[TrendingWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
