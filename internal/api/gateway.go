package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/rentora/rental-system/docs"
	"github.com/rentora/rental-system/internal/api/handler"
)

// GatewayTargets holds the upstream base URLs the gateway fronts.
type GatewayTargets struct {
	AuthServiceURL     string
	UserServiceURL     string
	PropertyServiceURL string
}

// NewGatewayRouter builds the public entry point: every /api/* prefix is
// reverse-proxied to its owning service with the /api segment stripped.
// Favorites live in the property service, so /api/favorites routes there.
func NewGatewayRouter(targets GatewayTargets, log zerolog.Logger) (*echo.Echo, error) {
	e := newEcho("gateway", log)

	routes := []struct {
		prefix string
		target string
	}{
		{"/api/auth", targets.AuthServiceURL},
		{"/api/users", targets.UserServiceURL},
		{"/api/properties", targets.PropertyServiceURL},
		{"/api/favorites", targets.PropertyServiceURL},
	}

	for _, route := range routes {
		upstream, err := url.Parse(route.target)
		if err != nil {
			return nil, fmt.Errorf("parse upstream %q: %w", route.target, err)
		}
		e.Group(route.prefix, proxy(route.prefix, upstream))
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)

	return e, nil
}

// proxy forwards prefix-matched requests to the upstream, rewriting
// /api/<resource>/... to /<resource>/...
func proxy(prefix string, upstream *url.URL) echo.MiddlewareFunc {
	return echomiddleware.ProxyWithConfig(echomiddleware.ProxyConfig{
		Balancer: echomiddleware.NewRoundRobinBalancer([]*echomiddleware.ProxyTarget{
			{URL: upstream},
		}),
		Rewrite: map[string]string{
			prefix:        prefix[len("/api"):],
			prefix + "/*": prefix[len("/api"):] + "/$1",
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// Hide upstream addresses from clients.
			return echo.NewHTTPError(http.StatusBadGateway, "Bad gateway")
		},
	})
}
