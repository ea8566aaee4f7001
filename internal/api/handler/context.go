package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentora/rental-system/internal/api/middleware"
	"github.com/rentora/rental-system/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Authenticate middleware.
// Its absence on a protected route means the route was wired without the
// guard — fail closed.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}

// authHeader returns the raw Authorization header for forwarding to
// enrichment fetches.
func authHeader(c echo.Context) string {
	return c.Request().Header.Get(echo.HeaderAuthorization)
}
