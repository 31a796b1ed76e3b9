// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"voicedesk/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SessionCacheClient is the Redis client backing the primary session store.
var SessionCacheClient *redis.Client

// InitSessionCache initializes the Redis client for call session storage.
// A failed ping is not fatal: the session manager serves calls from its
// in-process fallback until Redis comes back.
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SessionCacheClient.Ping(ctx).Result(); err != nil {
		GetLogger().Warn("Redis unavailable at startup, sessions degrade to memory fallback",
			zap.String("addr", config.AppConfig.RedisAddr), zap.Error(err))
	}
}

// GetSessionCacheClient returns the session cache client.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}
