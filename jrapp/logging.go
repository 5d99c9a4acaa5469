package jrapp

import (
	"github.com/advdv/jsonroutes"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a zap logger configured from the environment. JSON encoding is used unless the
// environment is "development", then logs are written for humans.
func NewLogger(env Environment) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if env.development() {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.Level = zap.NewAtomicLevelAt(env.logLevel())
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("service", env.serviceName())), nil
}

type zapLogger struct{ *zap.Logger }

func (l zapLogger) LogUnhandledError(err error) {
	l.Logger.Error("unhandled error", zap.Error(err))
}

func (l zapLogger) LogMissingResult(method, path string) {
	l.Logger.Warn("handler did not send a result",
		zap.String("method", method),
		zap.String("path", path))
}

func newZapRouterLogger(l *zap.Logger) jsonroutes.Logger {
	return zapLogger{l.Named("jsonroutes")}
}
