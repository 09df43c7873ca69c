package middleware

import (
	"net/http"

	"github.com/go-redis/redis_rate/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// LoginRateLimit throttles authentication attempts per client IP using
// a Redis-backed sliding window. On Redis failure the request is let
// through rather than locking everyone out.
func LoginRateLimit(client *redis.Client, perMinute int) echo.MiddlewareFunc {
	limiter := redis_rate.NewLimiter(client)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ratelimit:login:" + c.RealIP()

			res, err := limiter.Allow(c.Request().Context(), key, redis_rate.PerMinute(perMinute))
			if err != nil {
				return next(c)
			}
			if res.Allowed == 0 {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
			}
			return next(c)
		}
	}
}
