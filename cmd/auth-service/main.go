package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rentora/rental-system/internal/api"
	"github.com/rentora/rental-system/internal/core/service"
	"github.com/rentora/rental-system/internal/infrastructure/config"
	mongodb "github.com/rentora/rental-system/internal/infrastructure/db/mongo"
	redisdb "github.com/rentora/rental-system/internal/infrastructure/db/redis"
	"github.com/rentora/rental-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg config.AuthConfig
	if err := config.Load(ctx, &cfg); err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongo")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure user indexes")
	}

	var limiter service.LoginLimiter
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
	} else {
		defer rdb.Close()
		limiter = redisdb.NewLoginLimiter(rdb, int64(cfg.LoginAttempts), time.Duration(cfg.LoginWindowSec)*time.Second)
	}

	authService := service.NewAuthService(
		userRepo,
		limiter,
		cfg.JWTSecret,
		time.Duration(cfg.JWTExpiresIn)*time.Second,
		log,
	)

	e := api.NewAuthRouter(db, rdb, authService, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("auth service listening")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
