// Package logging sets up the process-wide zap logger. The interactive
// picker owns the terminal, so logs only ever go to a rotated file.
package logging

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// globalLogger stores the global logger instance safely across goroutines.
	globalLogger atomic.Pointer[zap.Logger]
	// once ensures that initialization happens exactly once.
	once sync.Once
)

// Config controls where and how much is logged
type Config struct {
	// File is the log file path. Empty disables logging.
	File       string
	Level      string // debug, info, warn, error
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultConfig returns logging disabled at info level
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

// New builds a logger from cfg without touching the global logger
func New(cfg Config) *zap.Logger {
	if cfg.File == "" {
		return zap.NewNop()
	}

	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	// lumberjack handles file rotation and thread-safe writes.
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	})
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), writer, level)
	return zap.New(core, zap.AddStacktrace(zap.ErrorLevel)).Named("labelpick")
}

// Initialize sets the global logger. Only the first call has any effect.
func Initialize(cfg Config) *zap.Logger {
	once.Do(func() {
		logger := New(cfg)
		globalLogger.Store(logger)
		zap.ReplaceGlobals(logger)
	})
	return L()
}

// L returns the global logger, or a no-op logger before Initialize
func L() *zap.Logger {
	if logger := globalLogger.Load(); logger != nil {
		return logger
	}
	return zap.NewNop()
}

// Sync flushes the global logger
func Sync() {
	_ = L().Sync()
}

// ResetForTest clears the global logger so Initialize can run again.
// Only for tests.
func ResetForTest() {
	globalLogger.Store(nil)
	once = sync.Once{}
}
