// Package middleware holds the fiber middleware shared by every route.
package middleware

import (
	"context"
	"log/slog"
	"time"

	"bridgehead/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// Fiber locals keys.
const (
	LocalUserID    = "userID"
	LocalRequestID = "requestid"
	LocalTraceID   = "traceID"
)

// ContextMiddleware copies request ID, user ID and trace ID from fiber locals
// into the request context so the context-aware logger can pick them up.
func ContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		if rid, ok := c.Locals(LocalRequestID).(string); ok {
			ctx = context.WithValue(ctx, observability.RequestIDKey, rid)
		}
		if uid, ok := c.Locals(LocalUserID).(uint); ok {
			ctx = context.WithValue(ctx, observability.UserIDKey, uid)
		}
		if tid, ok := c.Locals(LocalTraceID).(string); ok {
			ctx = context.WithValue(ctx, observability.TraceIDKey, tid)
		}

		c.SetUserContext(ctx)
		return c.Next()
	}
}

// SetUserID stores the authenticated user on both the fiber locals and the
// request context.
func SetUserID(c *fiber.Ctx, userID uint) {
	c.Locals(LocalUserID, userID)
	c.SetUserContext(context.WithValue(c.UserContext(), observability.UserIDKey, userID))
}

// UserID returns the authenticated user, if any.
func UserID(c *fiber.Ctx) (uint, bool) {
	uid, ok := c.Locals(LocalUserID).(uint)
	return uid, ok && uid != 0
}

// StructuredLogger logs one line per request using slog.
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		fields := []any{
			slog.Int("status", c.Response().StatusCode()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
			slog.String("user_agent", c.Get("User-Agent")),
		}

		if err != nil {
			fields = append(fields, slog.String("error", err.Error()))
			observability.Logger.ErrorContext(c.UserContext(), "request failed", fields...)
		} else {
			observability.Logger.InfoContext(c.UserContext(), "request processed", fields...)
		}

		return err
	}
}
