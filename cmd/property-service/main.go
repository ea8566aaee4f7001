package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rentora/rental-system/internal/api"
	"github.com/rentora/rental-system/internal/core/domain"
	"github.com/rentora/rental-system/internal/core/enrich"
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

	var cfg config.PropertyConfig
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

	propertyRepo := mongodb.NewPropertyRepository(db)
	if err := propertyRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure property indexes")
	}
	favoriteRepo := mongodb.NewFavoriteRepository(db)
	if err := favoriteRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure favorite indexes")
	}

	verifier := httpclient.NewIdentityClient(cfg.AuthServiceURL, nil, log)
	profiles := httpclient.NewProfileClient(cfg.UserServiceURL, nil, log)

	var strategy enrich.Strategy[*domain.UserProfile] = enrich.Sequential[*domain.UserProfile]{}
	if cfg.EnrichWorkers > 1 {
		strategy = enrich.NewBounded[*domain.UserProfile](cfg.EnrichWorkers)
	}
	enricher := enrich.NewCached[*domain.UserProfile](strategy)

	propertyService := service.NewPropertyService(propertyRepo, profiles, enricher, log)
	favoriteService := service.NewFavoriteService(favoriteRepo, propertyService, profiles, log)

	e := api.NewPropertyRouter(db, propertyService, favoriteService, verifier, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("property service listening")
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
