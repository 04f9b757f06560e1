package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

const maxConnectAttempts = 5

// Pool sizing for the course API's request volume.
const (
	poolMaxOpenConns    = 25
	poolMaxIdleConns    = 5
	poolConnMaxLifetime = 5 * time.Minute
)

// InitDatabase opens a gorm connection for the configured driver, retrying
// with exponential backoff so the API survives a database that comes up
// later than the app container.
//
// The connection is opened with TranslateError enabled: unique-constraint
// violations surface as gorm.ErrDuplicatedKey, which the services rely on to
// fold concurrent duplicate inserts (enrollments, registrations) into
// idempotent outcomes.
func InitDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	driver := strings.ToLower(cfg.Driver)
	gormConfig := &gorm.Config{TranslateError: true}

	log.WithFields(logrus.Fields{
		"db_driver": driver,
		"db_host":   cfg.Host,
		"db_name":   cfg.Name,
		"db_path":   cfg.Path,
	}).Info("Initializing database connection")

	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		log.WithFields(logrus.Fields{
			"attempt":     attempt,
			"max_retries": maxConnectAttempts,
		}).Info("Attempting database connection")

		switch driver {
		case "postgres", "postgresql":
			log.WithField("dsn_host", cfg.Host).Debug("Connecting to PostgreSQL")
			db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)

		case "sqlite", "":
			log.WithField("db_path", cfg.Path).Debug("Connecting to SQLite")
			db, err = gorm.Open(sqlite.Open(cfg.DSN()), gormConfig)

		default:
			return nil, fmt.Errorf("unsupported database driver: %s (supported: postgres, sqlite)", cfg.Driver)
		}

		if err == nil {
			// gorm.Open can succeed lazily; a ping proves the backend is there.
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				log.WithError(sqlErr).Error("Failed to get database instance")
				err = sqlErr
			} else if pingErr := sqlDB.Ping(); pingErr != nil {
				log.WithError(pingErr).Error("Failed to ping database")
				err = pingErr
			} else {
				configureConnectionPool(sqlDB)

				log.WithFields(logrus.Fields{
					"db_driver": driver,
					"attempt":   attempt,
				}).Info("Database initialized successfully")

				return db, nil
			}
		}

		log.WithFields(logrus.Fields{
			"attempt": attempt,
			"error":   err.Error(),
		}).Warn("Database connection attempt failed")

		if attempt < maxConnectAttempts {
			// 1s, 2s, 4s, 8s between attempts.
			delay := time.Duration(1<<(attempt-1)) * time.Second
			log.WithField("delay", delay).Info("Retrying database connection")
			time.Sleep(delay)
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxConnectAttempts, err)
}

func configureConnectionPool(sqlDB *sql.DB) {
	sqlDB.SetMaxOpenConns(poolMaxOpenConns)
	sqlDB.SetMaxIdleConns(poolMaxIdleConns)
	sqlDB.SetConnMaxLifetime(poolConnMaxLifetime)

	log.WithFields(logrus.Fields{
		"max_open_conns":    poolMaxOpenConns,
		"max_idle_conns":    poolMaxIdleConns,
		"conn_max_lifetime": poolConnMaxLifetime.String(),
	}).Debug("Connection pool configured")
}
