package middleware

import (
	"time"

	"github.com/ferdian3456/virdanfeed/internal/model"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

const ERR_RATE_LIMIT_CODE = "RATE_LIMIT_EXCEEDED"

func skipUnlimited(c *fiber.Ctx) bool {
	return c.Path() == "/api/health" || c.Path() == "/metrics"
}

// SetupRateLimiter configures rate limiting middleware for the application
func SetupRateLimiter(logger *zap.Logger, max int) fiber.Handler {
	if max <= 0 {
		max = 100
	}

	return limiter.New(limiter.Config{
		Next:       skipUnlimited,
		Max:        max,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			logger.Warn("Rate limit exceeded", zap.String("ip", c.IP()))
			return c.Status(fiber.StatusTooManyRequests).JSON(model.ErrorResponse{
				Error: model.ValidationError{
					Code:    ERR_RATE_LIMIT_CODE,
					Message: "Rate limit exceeded, please try again later",
				},
			})
		},
	})
}

// SetupAuthRateLimiter configures a stricter rate limiting for authentication endpoints
func SetupAuthRateLimiter(logger *zap.Logger) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 5 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			logger.Warn("Auth rate limit exceeded", zap.String("ip", c.IP()))
			return c.Status(fiber.StatusTooManyRequests).JSON(model.ErrorResponse{
				Error: model.ValidationError{
					Code:    ERR_RATE_LIMIT_CODE,
					Message: "Too many authentication attempts, please try again later",
				},
			})
		},
	})
}
