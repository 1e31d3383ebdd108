package database

import (
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const slowQuery = 200 * time.Millisecond

// zapWriter feeds gorm's SQL trace into a zap logger
type zapWriter struct {
	sugar *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.sugar.Infof(format, args...)
}

func orNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// gormLevel silent, error, warn and info; anything else is warn
func gormLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

func newGormLogger(l *zap.Logger, level string) gormlogger.Interface {
	return gormlogger.New(zapWriter{sugar: orNop(l).Named("gorm").Sugar()}, gormlogger.Config{
		SlowThreshold:             slowQuery,
		LogLevel:                  gormLevel(level),
		IgnoreRecordNotFoundError: true,
	})
}
