// Package logging builds the process zap logger from configuration.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-authform/internal/config"
)

// Logger pairs a logger with the atomic level it was built with so the level
// can be raised or lowered at runtime.
type Logger struct {
	*zap.Logger
	Level zap.AtomicLevel
}

// New builds a production logger, or a development one when cfg asks for it.
func New(cfg config.LoggingConfig, options ...zap.Option) (*Logger, error) {
	name, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return nil, fmt.Errorf("logging: parse level: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build(options...)
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return &Logger{Logger: logger, Level: zcfg.Level}, nil
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func (l *Logger) Sync() {
	if l == nil || l.Logger == nil {
		return
	}
	_ = l.Logger.Sync()
}
