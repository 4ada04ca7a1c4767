package utils

import (
	"log"
	"sync"

	"kisansaarthi/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global logger instance
var (
	Logger   *zap.Logger
	loggerMu sync.Mutex
)

// InitializeLogger sets up the logging configuration
func InitializeLogger() {
	var cfg zap.Config

	if config.IsProduction() {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if lvl := config.AppConfig.LogLevel; lvl != "" {
		if parsed, err := zapcore.ParseLevel(lvl); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(parsed)
		}
	}
	// The CLI owns stdout for prompts.
	cfg.OutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	Logger = l
}

// GetLogger retrieves the global logger
func GetLogger() *zap.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}

// SetLogger replaces the global logger, e.g. with zap.NewNop() in tests.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	Logger = l
}
