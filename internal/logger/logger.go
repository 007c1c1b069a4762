package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aliskhannn/times-tables-bot/internal/config"
)

// New builds the logger for cfg.Env. An empty cfg.LogLevel keeps the
// environment's default level.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	switch cfg.Env {
	case "production":
		zc = zap.NewProductionConfig()
	case "test":
		return zap.NewNop(), nil
	default:
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", cfg.LogLevel, err)
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}

	return zc.Build()
}
