package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Config holds database configuration
type Config struct {
	DSN             string
	ReadDSN         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        gormlogger.LogLevel
}

// Connect opens the write pool and, when ReadDSN is set, registers it as a
// read replica so SELECTs are routed away from the primary.
func Connect(cfg Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(cfg.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		log.Error().
			Str("error_code", uuid.NewString()).
			Err(err).
			Msg("unable to connect to database")
		return nil, err
	}

	if cfg.ReadDSN != "" {
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(cfg.ReadDSN)},
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetMaxIdleConns(cfg.MaxIdleConns).
			SetMaxOpenConns(cfg.MaxOpenConns).
			SetConnMaxLifetime(cfg.ConnMaxLifetime)
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
		log.Info().Msg("read replica registered")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	log.Info().Msg("successfully connected to database")
	return db, nil
}

// Ping checks the primary connection.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
