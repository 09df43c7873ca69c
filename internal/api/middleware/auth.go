package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chronoworks/timetrack-system/internal/core/domain"
	"github.com/chronoworks/timetrack-system/internal/core/ports"
)

const principalContextKey = "principal"

// Authenticate extracts the bearer token, resolves it against the
// identity directory, and stores the resulting principal in the
// request context. The role carried by the token is never trusted;
// Resolve always reads the current one.
func Authenticate(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return domain.ErrInvalidToken
			}

			principal, err := auth.Resolve(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(principalContextKey, principal)
			return next(c)
		}
	}
}

// PrincipalFrom returns the authenticated principal stored by
// Authenticate. The second return is false when the route is not
// behind authentication.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalContextKey).(domain.Principal)
	return p, ok
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
