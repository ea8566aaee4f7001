package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rentora/rental-system/internal/api/handler"
	"github.com/rentora/rental-system/internal/api/middleware"
	"github.com/rentora/rental-system/internal/core/ports"
)

// newEcho builds an Echo instance with the middleware, validator and error
// handler every service shares.
func newEcho(serviceName string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware(serviceName))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

// NewAuthRouter wires the auth service's routes: open register/login, the
// verify endpoint sibling services call, and /auth/me behind the local guard.
func NewAuthRouter(db *mongo.Database, rdb *redis.Client, authService ports.AuthService, log zerolog.Logger) *echo.Echo {
	e := newEcho("auth", log)

	authHandler := handler.NewAuthHandler(authService)
	guard := middleware.Authenticate(middleware.NewLocalVerifier(authService))

	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/verify", authHandler.Verify)
	e.GET("/auth/me", authHandler.Me, guard)

	registerHealth(e, db, rdb)
	return e
}

// NewUserRouter wires the user service's routes, all behind the remote
// identity guard.
func NewUserRouter(db *mongo.Database, userService ports.UserService, verifier ports.IdentityVerifier, log zerolog.Logger) *echo.Echo {
	e := newEcho("user", log)

	userHandler := handler.NewUserHandler(userService)
	guard := middleware.Authenticate(verifier)

	users := e.Group("/users", guard)
	users.GET("", userHandler.List)
	users.GET("/find", userHandler.Find)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	registerHealth(e, db, nil)
	return e
}

// NewPropertyRouter wires the property service's routes: public reads,
// guarded mutations, and the favorites resource (guarded throughout).
func NewPropertyRouter(db *mongo.Database, propertyService ports.PropertyService, favoriteService ports.FavoriteService, verifier ports.IdentityVerifier, log zerolog.Logger) *echo.Echo {
	e := newEcho("property", log)

	propertyHandler := handler.NewPropertyHandler(propertyService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	guard := middleware.Authenticate(verifier)

	e.GET("/properties", propertyHandler.List)
	e.GET("/properties/search", propertyHandler.Search)
	e.GET("/properties/:id", propertyHandler.Get)
	e.POST("/properties", propertyHandler.Create, guard)
	e.PUT("/properties/:id", propertyHandler.Update, guard)
	e.DELETE("/properties/:id", propertyHandler.Delete, guard)

	favorites := e.Group("/favorites", guard)
	favorites.GET("", favoriteHandler.List)
	favorites.GET("/:id", favoriteHandler.Get)
	favorites.POST("", favoriteHandler.Add)
	favorites.PUT("/:id", favoriteHandler.Update)
	favorites.DELETE("/:id", favoriteHandler.Remove)

	registerHealth(e, db, nil)
	return e
}

func registerHealth(e *echo.Echo, db *mongo.Database, rdb *redis.Client) {
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
}
