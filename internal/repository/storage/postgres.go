package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	maxRetries    = 3
	retryInterval = 2 * time.Second
)

// NewPostgresStorage opens the journal database, retrying while the server comes up.
func NewPostgresStorage(ctx context.Context, logger *slog.Logger, dsn string) (*gorm.DB, error) {
	log := logger.With("component", "postgres")

	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		var db *gorm.DB
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err == nil {
			return db.WithContext(ctx), nil
		}

		log.Warn("failed to connect to postgres, retrying", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to connect to postgres: %w", ctx.Err())
		case <-time.After(retryInterval):
		}
	}

	return nil, fmt.Errorf("failed to connect to postgres: %w", err)
}
