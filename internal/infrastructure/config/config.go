package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// MongoConfig selects the database every backend service persists to.
type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=rental_platform"`
}

// RedisConfig selects the Redis instance used by the auth service.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// AuthConfig configures the auth service binary.
type AuthConfig struct {
	Port      string `env:"PORT,           default=3000"`
	Env       string `env:"ENV,            default=development"`
	LogLevel  string `env:"LOG_LEVEL,      default=info"`
	JWTSecret string `env:"JWT_SECRET"`
	// JWTExpiresIn is the token lifetime in seconds.
	JWTExpiresIn int `env:"JWT_EXPIRES_IN, default=3600"`
	// LoginAttempts caps login tries per email within LoginWindowSec.
	LoginAttempts  int `env:"LOGIN_ATTEMPTS,   default=10"`
	LoginWindowSec int `env:"LOGIN_WINDOW_SEC, default=60"`

	Mongo MongoConfig
	Redis RedisConfig
}

// UserConfig configures the user service binary.
type UserConfig struct {
	Port           string `env:"PORT,             default=3001"`
	Env            string `env:"ENV,              default=development"`
	LogLevel       string `env:"LOG_LEVEL,        default=info"`
	AuthServiceURL string `env:"AUTH_SERVICE_URL, default=http://localhost:3000"`

	Mongo MongoConfig
}

// PropertyConfig configures the property service binary, which also hosts
// the favorites resource.
type PropertyConfig struct {
	Port           string `env:"PORT,             default=3002"`
	Env            string `env:"ENV,              default=development"`
	LogLevel       string `env:"LOG_LEVEL,        default=info"`
	AuthServiceURL string `env:"AUTH_SERVICE_URL, default=http://localhost:3000"`
	UserServiceURL string `env:"USER_SERVICE_URL, default=http://localhost:3001"`
	// EnrichWorkers > 1 switches list enrichment to the bounded concurrent
	// strategy; the default stays sequential.
	EnrichWorkers int `env:"ENRICH_WORKERS, default=1"`

	Mongo MongoConfig
}

// GatewayConfig configures the API gateway binary.
type GatewayConfig struct {
	Port               string `env:"PORT,                 default=4000"`
	Env                string `env:"ENV,                  default=development"`
	LogLevel           string `env:"LOG_LEVEL,            default=info"`
	AuthServiceURL     string `env:"AUTH_SERVICE_URL,     default=http://localhost:3000"`
	UserServiceURL     string `env:"USER_SERVICE_URL,     default=http://localhost:3001"`
	PropertyServiceURL string `env:"PROPERTY_SERVICE_URL, default=http://localhost:3002"`
}

// Load populates cfg from environment variables using go-envconfig.
func Load(ctx context.Context, cfg any) error {
	if err := envconfig.Process(ctx, cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
