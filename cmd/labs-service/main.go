package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labworks/clinical-labs-api/internal/api/router"
	"github.com/labworks/clinical-labs-api/internal/infrastructure/config"
	"github.com/labworks/clinical-labs-api/internal/infrastructure/db/mongo"
	"github.com/labworks/clinical-labs-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "labs-service",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	e := router.NewLabsRouter(db, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting labs service")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down labs service")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
