package middleware

import (
	"fmt"
	"time"

	"github.com/brandhub/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	rateLimitMax    = 50
	rateLimitWindow = time.Second
)

// RateLimit enforces a fixed one-second window of rateLimitMax requests per client IP.
// Redis failures let the request through.
func RateLimit(rdb *redis.Client) gin.HandlerFunc {
	return RateLimitN(rdb, rateLimitMax)
}

// RateLimitN is RateLimit with a custom per-window budget.
func RateLimitN(rdb *redis.Client, limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		windowKey := time.Now().Unix()
		key := fmt.Sprintf("brandhub:rate_limit:%s:%d", ip, windowKey)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rdb.PExpire(ctx, key, rateLimitWindow+time.Second)
		}

		if count > limit {
			c.Header("Retry-After", "1")
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
