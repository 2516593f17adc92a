package middleware

import (
	"fmt"
	"strconv"
	"time"

	"discovery_server/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig holds rate limiter configuration.
type RateLimitConfig struct {
	RequestsPerMinute int
	KeyPrefix         string
}

// DefaultRateLimitConfig returns defaults for the public API.
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		RequestsPerMinute: 300,
		KeyPrefix:         "ratelimit",
	}
}

// RateLimiter returns a fixed-window per-IP rate limiter backed by
// redis. Counting failures never block the request: when redis is
// down the limiter fails open.
func RateLimiter(client *redis.Client, cfg *RateLimitConfig) fiber.Handler {
	if cfg == nil {
		cfg = DefaultRateLimitConfig()
	}

	return func(c *fiber.Ctx) error {
		window := time.Now().Unix() / 60
		key := fmt.Sprintf("%s:%s:%d", cfg.KeyPrefix, c.IP(), window)

		count, err := client.Incr(c.Context(), key).Result()
		if err != nil {
			logger.WithError(err).Warn("rate limiter unavailable, allowing request")
			return c.Next()
		}
		if count == 1 {
			client.Expire(c.Context(), key, time.Minute)
		}

		remaining := int64(cfg.RequestsPerMinute) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerMinute))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(cfg.RequestsPerMinute) {
			return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded")
		}
		return c.Next()
	}
}
