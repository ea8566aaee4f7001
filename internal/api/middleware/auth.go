package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/rentora/rental-system/internal/core/domain"
	"github.com/rentora/rental-system/internal/core/ports"
)

// identityKey is the echo context key the resolved identity is stored under.
const identityKey = "identity"

// Authenticate resolves the caller's identity through the given verifier and
// attaches it to the request context. On failure the verifier's error — with
// its pinned 401 message — propagates to the central error handler.
func Authenticate(verifier ports.IdentityVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			identity, err := verifier.Verify(c.Request().Context(), header)
			if err != nil {
				return err
			}
			c.Set(identityKey, *identity)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity attached by Authenticate.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok
}
