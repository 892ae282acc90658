package databases

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"confhub_backend/internals/configs"
)

// OpenRedis returns a redis client for the public-content cache, or nil when
// REDIS_ADDR is unset. Callers treat a nil client as cache-off.
func OpenRedis(cfg *configs.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		// cache is an optimization, never a boot dependency
		return nil
	}
	return client
}
