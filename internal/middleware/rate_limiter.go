package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiterConfig defines rate limiting rules
type RateLimiterConfig struct {
	MaxRequests int           // Maximum requests allowed in the window
	Window      time.Duration // Time window (e.g., 1 minute)
	BlockTime   time.Duration // How long to block after exceeding the limit
}

// RateLimiter provides IP-based rate limiting backed by Redis counters.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimiterConfig
}

func NewRateLimiter(redisClient *redis.Client, config RateLimiterConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
	}
}

// Middleware returns the gin handler. Redis failures fail open: a broken
// limiter must not take the API down with it.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		allowed, retryAfter, err := rl.Allow(c.Request.Context(), clientIP)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"message":     "Too many requests. Please try again later.",
				"retry_after": int(retryAfter.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// Allow counts a request against the IP's window. Once the limit is
// exceeded the IP stays blocked for BlockTime.
func (rl *RateLimiter) Allow(ctx context.Context, ip string) (bool, time.Duration, error) {
	blockKey := fmt.Sprintf("ratelimit:block:%s", ip)
	blocked, err := rl.redis.Exists(ctx, blockKey).Result()
	if err != nil {
		return false, 0, err
	}
	if blocked > 0 {
		ttl, err := rl.redis.TTL(ctx, blockKey).Result()
		if err != nil {
			ttl = rl.config.BlockTime
		}
		return false, ttl, nil
	}

	countKey := fmt.Sprintf("ratelimit:count:%s", ip)
	count, err := rl.redis.Incr(ctx, countKey).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		if err := rl.redis.Expire(ctx, countKey, rl.config.Window).Err(); err != nil {
			return false, 0, err
		}
	}

	if count > int64(rl.config.MaxRequests) {
		if err := rl.redis.Set(ctx, blockKey, 1, rl.config.BlockTime).Err(); err != nil {
			return false, 0, err
		}
		return false, rl.config.BlockTime, nil
	}

	return true, 0, nil
}
