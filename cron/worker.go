package cron

import (
	"context"
	"time"

	"voicedesk/services/session"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// StartSessionSweeper periodically reclaims expired fallback sessions.
// The sweep runs on its own goroutine and never blocks request handling.
func StartSessionSweeper(ctx context.Context, mgr session.Manager, interval, maxAge time.Duration, logger *zap.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		logger.Info("session sweeper started",
			zap.Duration("interval", interval), zap.Duration("maxAge", maxAge))

		for {
			select {
			case <-ctx.Done():
				logger.Info("session sweeper stopped")
				return
			case <-ticker.C:
				mgr.SweepExpiredFallback(maxAge)
			}
		}
	}()
}

// StartRedisMonitor pings Redis periodically and logs availability
// transitions so degraded mode is visible in the logs.
func StartRedisMonitor(ctx context.Context, client *redis.Client, logger *zap.Logger) {
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()

		healthy := true
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				err := client.Ping(ctx).Err()
				if err != nil && healthy {
					logger.Warn("Redis connection lost, sessions degrade to memory fallback", zap.Error(err))
					healthy = false
				} else if err == nil && !healthy {
					logger.Info("Redis connection restored")
					healthy = true
				}
			}
		}
	}()
}
