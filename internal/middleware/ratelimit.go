package middleware

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/task-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/task-api/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis/v3"
)

// NewRedisStorage backs the rate limiter with Redis so that several instances
// share one budget per client. It panics if Redis is unreachable.
func NewRedisStorage(url string) fiber.Storage {
	return redis.New(redis.Config{
		URL:   url,
		Reset: false,
	})
}

// RateLimit applies a per-IP sliding window. A nil storage keeps counters in
// process memory. It returns nil when limiting is disabled.
func RateLimit(cfg *config.Config, storage fiber.Storage) fiber.Handler {
	if cfg.RateLimitMax <= 0 {
		return nil
	}

	return limiter.New(limiter.Config{
		Max:               cfg.RateLimitMax,
		Expiration:        cfg.RateLimitWindow,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		Storage:           storage,
		LimitReached: func(c *fiber.Ctx) error {
			slog.Warn("rate limit exceeded", "ip", c.IP(), "path", c.Path())
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error: true, Message: "Too many requests",
			})
		},
	})
}
