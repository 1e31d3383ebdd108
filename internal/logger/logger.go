package logger

import (
	"sync"

	"github.com/LeDuoc95/BE-FEDUU/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// New builds a JSON logger for production and a coloured console logger otherwise
func New(conf config.LogConfig) *zap.Logger {
	var zc zap.Config

	if conf.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if conf.Format == "json" {
		zc.Encoding = "json"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	if level, err := zapcore.ParseLevel(conf.Level); err == nil {
		zc.Level = zap.NewAtomicLevelAt(level)
	}

	zc.OutputPaths = []string{"stdout"}

	l, err := zc.Build()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}

	return l
}

// Init installs l as the process logger
func Init(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = l
}

// L returns the process logger; a no-op logger until Init is called
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}
