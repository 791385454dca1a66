package middleware

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// RequestLog returns Echo middleware that logs requests with structured fields.
// It generates a request ID if none is provided and propagates it through
// the response header and echo context.
//
// Probe paths are logged on their first success and on every failure;
// repeated successes are suppressed until the next failure.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	quiet := map[string]*atomic.Bool{
		"/healthz": {},
		"/readyz":  {},
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			path := c.Request().URL.Path
			status := c.Response().Status
			ok := status < 400

			level := slog.LevelInfo
			if probe, isProbe := quiet[path]; isProbe {
				if ok && probe.Swap(true) {
					return err
				}
				if !ok {
					probe.Store(false)
					level = slog.LevelWarn
				}
			} else if status >= 500 {
				level = slog.LevelWarn
			}

			log.Log(c.Request().Context(), level, "request",
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)

			return err
		}
	}
}
