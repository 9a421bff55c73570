package main

import (
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/apqp-tracker/internal/config"
	"github.com/yukikurage/apqp-tracker/internal/database"
	"github.com/yukikurage/apqp-tracker/internal/logger"
	"github.com/yukikurage/apqp-tracker/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to access database handle")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	if cfg.SeedPhaseTemplates {
		if _, err := database.SeedPhaseTemplates(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed phase templates")
		}
	}

	// Document storage is optional; report whether uploads will work.
	if _, err := storage.NewS3Storage(cfg); err != nil {
		log.Warn().Err(err).Msg("Document storage unavailable, uploads are disabled")
	} else {
		log.Info().Str("bucket", cfg.S3Bucket).Msg("Document storage configured")
	}

	log.Info().Msg("Database is ready")
}
