package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jcloud/bookstore-backend/config"
	apperrors "github.com/jcloud/bookstore-backend/internal/errors"
	"github.com/jcloud/bookstore-backend/pkg/redis"
)

// RateLimitMiddleware enforces a fixed per-minute request window per
// client IP, backed by redis. When redis is unreachable the request is
// allowed through so an outage never takes the API down with it.
func RateLimitMiddleware(cfg *config.RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		log := GetLoggerFromContext(c)

		window := time.Now().Unix() / 60
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), window)

		count, err := redis.IncrementWindow(c.Request.Context(), key, time.Minute)
		if err != nil {
			log.Warn("Rate limiter unavailable, allowing request", map[string]interface{}{
				"error": err.Error(),
			})
			c.Next()
			return
		}

		remaining := int64(cfg.RequestsPerMinute) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Writer.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.RequestsPerMinute))
		c.Writer.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if count > int64(cfg.RequestsPerMinute) {
			log.Warn("Rate limit exceeded", map[string]interface{}{
				"ip":    c.ClientIP(),
				"count": count,
				"limit": cfg.RequestsPerMinute,
			})
			apperrors.TooManyRequests(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
