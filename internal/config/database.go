package config

import (
	"context"
	"fmt"
	"time"

	"github.com/blaisecz/flare-tracker/internal/logger"
	"github.com/codeGROOVE-dev/retry"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDatabase connects to Postgres, retrying while the server comes up.
func NewDatabase(ctx context.Context, cfg *Config, log *logger.Logger) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if cfg.LogLevel == logger.DebugLevel {
		logLevel = gormlogger.Info
	}

	var db *gorm.DB
	err := retry.Do(
		func() error {
			var openErr error
			db, openErr = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
				Logger: gormlogger.Default.LogMode(logLevel),
			})
			if openErr != nil {
				return openErr
			}
			sqlDB, openErr := db.DB()
			if openErr != nil {
				return openErr
			}
			return sqlDB.PingContext(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(6),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(10*time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.OnRetry(func(n uint, err error) {
			log.Warnw("database not reachable, retrying", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	log.Infow("database connection established")
	return db, nil
}
