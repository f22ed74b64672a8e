package middleware

import (
	"time"

	"github.com/ferdian3456/virdanfeed/internal/observability"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TraceLoggerMiddleware stores a logger carrying the request's trace and span
// ids in ctx.Locals("logger").
func TraceLoggerMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("logger", observability.WithContext(c.UserContext(), logger))

		return c.Next()
	}
}

// AccessLogMiddleware logs one line per request once the handler returns.
func AccessLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		RequestLogger(c).Info("request completed", fields...)

		return err
	}
}

// RequestLogger returns the logger TraceLoggerMiddleware stored for this
// request, or a no-op logger outside of it.
func RequestLogger(c *fiber.Ctx) *zap.Logger {
	if logger, ok := c.Locals("logger").(*zap.Logger); ok {
		return logger
	}

	return zap.NewNop()
}
