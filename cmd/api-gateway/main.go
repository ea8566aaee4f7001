package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rentora/rental-system/internal/api"
	"github.com/rentora/rental-system/internal/infrastructure/config"
	"github.com/rentora/rental-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg config.GatewayConfig
	if err := config.Load(ctx, &cfg); err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	e, err := api.NewGatewayRouter(api.GatewayTargets{
		AuthServiceURL:     cfg.AuthServiceURL,
		UserServiceURL:     cfg.UserServiceURL,
		PropertyServiceURL: cfg.PropertyServiceURL,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build gateway")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("api gateway listening")
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
