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
	"github.com/rentora/rental-system/internal/infrastructure/httpclient"
	"github.com/rentora/rental-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg config.UserConfig
	if err := config.Load(ctx, &cfg); err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

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

	verifier := httpclient.NewIdentityClient(cfg.AuthServiceURL, nil, log)
	userService := service.NewUserService(userRepo, log)

	e := api.NewUserRouter(db, userService, verifier, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("user service listening")
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
