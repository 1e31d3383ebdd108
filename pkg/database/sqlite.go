package database

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteConfig local / test database settings
type SQLiteConfig struct {
	// Path is a file path or a sqlite URI such as "file::memory:?cache=shared"
	Path     string
	LogLevel string
	Logger   *zap.Logger
}

// InitSQLite opens a sqlite database with foreign keys enforced
func InitSQLite(config *SQLiteConfig) (*gorm.DB, error) {
	if config == nil {
		return nil, errors.New("sqlite config must not be nil")
	}
	path := config.Path
	if path == "" {
		path = "course_market.db"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         newGormLogger(config.Logger, config.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
	}

	// the pragma is per connection, so keep exactly one
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	orNop(config.Logger).Info("sqlite opened", zap.String("path", path))
	return db, nil
}
