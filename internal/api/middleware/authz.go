package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/chronoworks/timetrack-system/internal/core/domain"
)

// Authorize enforces a route policy against the authenticated
// principal. Routes whose path carries a :userId parameter are
// treated as resource-scoped: the parameter value is the target
// owner and non-owners need a bypass role. Routes without the
// parameter are collection-scoped and only the role gate applies.
func Authorize(policy domain.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				return domain.ErrInvalidToken
			}

			if err := domain.Authorize(principal, c.Param("userId"), policy); err != nil {
				return err
			}
			return next(c)
		}
	}
}
