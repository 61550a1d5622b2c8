package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jcloud/bookstore-backend/config"
	"github.com/jcloud/bookstore-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// IncrementWindow bumps a fixed-window counter, setting the window TTL on first hit.
// Returns the counter value after the increment.
func IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	if client == nil {
		return 0, errors.New("redis client not initialized")
	}

	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		logger.Error("Failed to increment rate limit counter", err, map[string]interface{}{
			"key": key,
		})
		return 0, err
	}

	if count == 1 {
		if err := client.Expire(ctx, key, window).Err(); err != nil {
			logger.Error("Failed to set rate limit window expiry", err, map[string]interface{}{
				"key": key,
			})
			return count, err
		}
	}

	return count, nil
}
