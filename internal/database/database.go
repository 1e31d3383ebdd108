package database

import (
	"fmt"
	"time"

	"github.com/LeDuoc95/BE-FEDUU/config"
	"github.com/LeDuoc95/BE-FEDUU/internal/logger"
	"github.com/LeDuoc95/BE-FEDUU/internal/model"
	"github.com/LeDuoc95/BE-FEDUU/pkg/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "course-market"

var (
	DB      *gorm.DB
	RedisDB *database.RedisClient
)

// InitDatabase opens the relational store selected by database.driver,
// migrates it and, when enabled, connects Redis.
func InitDatabase() {
	var err error
	DB, err = open(config.Conf.Database)
	if err != nil {
		panic(err)
	}

	if err = model.InitTable(DB); err != nil {
		panic(fmt.Errorf("migrate: %w", err))
	}

	redisConf := config.Conf.Redis
	if !redisConf.Enabled {
		logger.L().Warn("redis disabled: refresh tokens and rate limiting are off")
		return
	}

	RedisDB, err = database.InitRedis(&database.RedisConfig{
		Host:     redisConf.Host,
		Port:     redisConf.Port,
		Password: redisConf.Password,
		DB:       redisConf.DB,
		PoolSize: redisConf.PoolSize,
		Logger:   storeLogger(),
	})
	if err != nil {
		// the API still serves without sessions; login answers without a refresh token
		logger.L().Error("redis unavailable", zap.Error(err))
		RedisDB = nil
	}
}

func storeLogger() *zap.Logger {
	return logger.L().With(zap.String("service", serviceName))
}

func open(conf config.DatabaseConfig) (*gorm.DB, error) {
	switch conf.Driver {
	case "sqlite":
		return database.InitSQLite(&database.SQLiteConfig{
			Path:     conf.Database,
			LogLevel: conf.LogLevel,
			Logger:   storeLogger(),
		})
	case "postgres", "":
		return database.InitPostgres(&database.PostgresConfig{
			Username:        conf.Username,
			Password:        conf.Password,
			Host:            conf.Host,
			Port:            conf.Port,
			Database:        conf.Database,
			SSLMode:         conf.SSLMode,
			LogLevel:        conf.LogLevel,
			MaxIdleConns:    conf.MaxIdleConns,
			MaxOpenConns:    conf.MaxOpenConns,
			ConnMaxLifetime: time.Duration(conf.MaxLifetime) * time.Second,
			Logger:          storeLogger(),
		})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Driver)
	}
}

// GetDB returns the process database handle
func GetDB() *gorm.DB {
	return DB
}

// Close releases the database and Redis connections
func Close() {
	if DB != nil {
		if sqlDB, err := DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if RedisDB != nil {
		_ = RedisDB.Close()
	}
}
