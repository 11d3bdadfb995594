package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
	"github.com/ledgerly/expense-tracker/internal/pkg/metrics"
)

// RateLimit rejects clients that exceed the limiter's budget for a route.
// Buckets are keyed by client IP and route path. Limiter errors let the
// request through.
func RateLimit(limiter ports.RateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			res, err := limiter.Allow(c.Request().Context(), c.RealIP()+":"+path)
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("rate limiter unavailable")
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.Reset.Unix(), 10))

			if !res.Allowed {
				metrics.RateLimitedTotal.WithLabelValues(path).Inc()
				return domain.ErrRateLimited
			}
			return next(c)
		}
	}
}
