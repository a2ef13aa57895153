package mysql

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/subwatch/subwatch/internal/config"
	"github.com/subwatch/subwatch/internal/domain/reminder"
	"github.com/subwatch/subwatch/internal/domain/subscription"
	"github.com/subwatch/subwatch/internal/domain/user"
	ierr "github.com/subwatch/subwatch/internal/errors"
	"github.com/subwatch/subwatch/internal/logger"
)

// Client wraps the gorm database handle shared by all repositories.
type Client struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewClient opens the database connection, retrying with exponential backoff
// until the configured connect timeout elapses, and runs schema migration.
func NewClient(cfg *config.Configuration, log *logger.Logger) (*Client, error) {
	var db *gorm.DB

	operation := func() error {
		var err error
		db, err = gorm.Open(mysql.Open(cfg.Database.DSN), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
			// map duplicate-key violations to gorm.ErrDuplicatedKey
			TranslateError: true,
		})
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = cfg.Database.ConnectTimeout
	if err := backoff.RetryNotify(operation, policy, func(err error, next time.Duration) {
		log.Warnw("database connection failed, retrying", "error", err, "next_attempt_in", next)
	}); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to the database").
			Mark(ierr.ErrDatabase)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := db.AutoMigrate(
		&user.User{},
		&subscription.Subscription{},
		&reminder.Reminder{},
	); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to migrate database schema").
			Mark(ierr.ErrDatabase)
	}

	log.Infow("database connection established")
	return &Client{db: db, log: log}, nil
}

// DB returns a request scoped handle.
func (c *Client) DB(ctx context.Context) *gorm.DB {
	return c.db.WithContext(ctx)
}
