// Package database opens the GORM connection used by the repositories.
package database

import (
	"errors"
	"fmt"
	"time"

	"notes/internal/models"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrUnsupportedDriver is returned for an unknown DB_DRIVER value.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Supported values of the DB_DRIVER setting.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Connect opens the database, retrying while the server is not reachable yet.
// An unsupported driver fails immediately.
func Connect(driver, dsn string, attempts uint, delay time.Duration) (*gorm.DB, error) {
	if attempts == 0 {
		attempts = 1
	}

	var db *gorm.DB
	err := retry.Do(
		func() error {
			var err error
			db, err = Open(driver, dsn)
			return err
		},
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return !errors.Is(err, ErrUnsupportedDriver) }),
		retry.OnRetry(func(attempt uint, err error) {
			zap.L().Warn("failed to connect to database", zap.String("driver", driver), zap.Uint("attempt", attempt), zap.Error(err))
		}),
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Open connects to the database selected by driver.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	case DriverSQLite:
		dialector = &sqlite.Dialector{DriverName: sqliteDriverName, DSN: dsn}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedDriver, driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(zap.NewStdLog(zap.L()), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	return db, nil
}

// Migrate creates or updates the users and notes tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Note{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks that the database is reachable.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Ping()
}
