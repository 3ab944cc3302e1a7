// Package logging holds the process-wide zap loggers. Init is called once
// from main; before that the loggers are no-ops so library code and tests
// can log unconditionally.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log is the structured logger.
	Log = zap.NewNop()
	// SLog is the sugared logger for printf-style call sites.
	SLog = Log.Sugar()
)

// Init builds the real loggers. Level values: "debug", "info", "warn",
// "error" (default info). Set json to true in production for machine
// parsing.
func Init(level string, json bool) error {
	cfg := zap.NewProductionConfig()
	if !json {
		cfg = zap.NewDevelopmentConfig()
	}

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(parsed)

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = logger
	SLog = logger.Sugar()
	return nil
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	_ = Log.Sync()
}
