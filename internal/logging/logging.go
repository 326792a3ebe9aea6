// Package logging configures the application logger. Output goes to a
// file rather than stdout because the terminal belongs to the UI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
)

// New creates a configured Logrus logger writing JSON lines to the
// file named by cfg.Path, creating parent directories as needed.
func New(cfg model.LogConfig) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Path == "" {
		logger.SetOutput(io.Discard)
		return logger, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", cfg.Path, err)
	}
	logger.SetOutput(f)

	logger.WithField("app", "congviec").Info("logger initialized")
	return logger, nil
}

// Discard returns a logger that drops everything. Used in tests and as
// a safe default for components constructed without a logger.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
