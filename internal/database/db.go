package database

import (
	"time"

	"github.com/applymate/applymate-api/internal/config"
	"github.com/applymate/applymate-api/internal/models"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the postgres connection and runs migrations. The open is
// retried with exponential backoff so the API survives the database coming
// up a few seconds later (compose environments). Request-path operations
// never retry; only this startup dial does.
func Connect(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	var db *gorm.DB

	op := func() error {
		var err error
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxElapsedTime = 15 * time.Second
	if err := backoff.Retry(op, bo); err != nil {
		return nil, err
	}

	log.Info().Msg("database connection established")

	// Migration: creates the tables and the ON DELETE CASCADE constraints
	// the erasure saga depends on.
	log.Info().Msg("running migrations")
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.ProviderCredential{},
		&models.Application{},
		&models.CompanyResearch{},
		&models.CoverLetter{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
