package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chronoworks/timetrack-system/internal/api/middleware"
	"github.com/chronoworks/timetrack-system/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Authenticate
// middleware. Its absence means the route was wired without the
// middleware, which is a configuration bug surfaced as 401.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}
