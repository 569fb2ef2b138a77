package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iwvelando/pv-viability/internal/config"
)

var logFormats = map[string]func() zap.Config{
	"json":    zap.NewProductionConfig,
	"console": zap.NewDevelopmentConfig,
}

// initializeLogger builds the zap logger described by loggingConfig. A
// non-empty levelOverride (the --log-level flag) replaces the configured level.
func initializeLogger(loggingConfig config.LoggingConfig, levelOverride string) (*zap.Logger, error) {
	levelName := firstNonEmpty(levelOverride, loggingConfig.Level, "info")
	if levelName == "warning" {
		levelName = "warn"
	}
	level, err := zapcore.ParseLevel(levelName)
	if err != nil || level > zapcore.ErrorLevel {
		return nil, fmt.Errorf("invalid log level: %s", levelName)
	}

	format := firstNonEmpty(loggingConfig.Format, "json")
	newConfig, ok := logFormats[format]
	if !ok {
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	cfg := newConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)

	// stdout carries the report
	sink := "stderr"
	if path := loggingConfig.OutputFile; path != "" {
		if err := ensureWritable(path); err != nil {
			return nil, err
		}
		sink = path
	}
	cfg.OutputPaths = []string{sink}
	cfg.ErrorOutputPaths = []string{sink}

	return cfg.Build()
}

func ensureWritable(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory for %s: %w", path, err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return file.Close()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
