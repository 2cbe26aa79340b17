package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bookkeeping-gateway/internal/config"
)

func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapConfig zap.Config

	if cfg.IsDevelopment() {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	if cfg.Logging.Format == "console" || cfg.Logging.Format == "json" {
		zapConfig.Encoding = cfg.Logging.Format
	}

	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	return zapConfig.Build(zap.Fields(zap.String("app", cfg.App.Name)))
}
