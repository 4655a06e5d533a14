package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/RubachokBoss/student-registry/internal/app"
	"github.com/RubachokBoss/student-registry/internal/config"
	"github.com/RubachokBoss/student-registry/internal/database"
	"github.com/RubachokBoss/student-registry/pkg/logger"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log = logger.NewWithConfig(cfg.Logging.Level, cfg.Logging.Pretty, cfg.Logging.NoColor)

	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := database.EnsureIndexes(indexCtx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to create indexes")
	}

	log.Info().Str("database", cfg.Mongo.Database).Msg("MongoDB connection established")

	application, err := app.New(cfg, log, db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create application")
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	go func() {
		if err := application.Run(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run application")
		}
	}()

	log.Info().Msgf("Student Registry started on %s", cfg.Server.Address)

	<-ctx.Done()
	log.Info().Msg("Shutting down Student Registry...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown gracefully")
	}

	log.Info().Msg("Student Registry stopped")
}
