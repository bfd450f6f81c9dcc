package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger logs every request once it has been answered. Handler errors
// are rendered here so the logged status matches what the client received.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			attrs := []any{
				"method", req.Method,
				"route", routeOf(c),
				"path", req.URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if id := UserID(c); id != 0 {
				attrs = append(attrs, "user_id", id)
			}

			switch {
			case status >= 500:
				slog.Error("Request failed", attrs...)
			case status >= 400:
				slog.Warn("Request rejected", attrs...)
			default:
				slog.Info("Request completed", attrs...)
			}
			return nil
		}
	}
}

// routeOf returns the matched route template so labels stay low-cardinality.
func routeOf(c echo.Context) string {
	if p := c.Path(); p != "" {
		return p
	}
	return "unmatched"
}
