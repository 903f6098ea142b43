// Package logging builds the zap loggers used for pcbcore diagnostics.
package logging

import (
	"go.uber.org/zap"
)

// Config holds logging configuration.
type Config struct {
	Level       string `json:"level" yaml:"log_level"`
	Format      string `json:"format" yaml:"log_format"` // "json" or "console"
	OutputPath  string `json:"output_path" yaml:"log_output"`
	Development bool   `json:"development" yaml:"debug"`
}

// NewLogger builds a logger from config. An unparseable level falls back to
// info. Development mode attaches stack traces to warnings, which is how
// hierarchy misuse is surfaced while debugging.
func NewLogger(config Config) (*zap.Logger, error) {
	var zapConfig zap.Config

	if config.Development {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(config.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	if config.Format == "console" {
		zapConfig.Encoding = "console"
	} else {
		zapConfig.Encoding = "json"
	}

	if config.OutputPath != "" {
		zapConfig.OutputPaths = []string{config.OutputPath}
	}

	return zapConfig.Build()
}

// MustDefault returns a warn-level console logger on stderr, or a no-op
// logger if that cannot be built.
func MustDefault() *zap.Logger {
	logger, err := NewLogger(Config{Level: "warn", Format: "console"})
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
