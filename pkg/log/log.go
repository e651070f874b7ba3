// Package log provides the context-carried structured logger used across
// the field cache engine. A shared-cache call that fails and is treated
// as a miss logs through the logger found on its context rather than
// returning an error, per the error taxonomy's "cache degradation"
// category; every such failure logs one line. A plain miss and a
// `ready()=false` probe that skips the tier are not logged.
package log

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var defaultLogger *zap.Logger

func init() {
	defaultLogger = New()
}

type ctxKey struct{}

// ContextWithLogger adds a logger to ctx.
func ContextWithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger carried by ctx, or the process-wide
// default if none was attached.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return defaultLogger
}

// New builds a zap logger. Development mode (DEBUG env var set) logs at
// debug level to the console; production mode logs JSON to stdout.
func New() *zap.Logger {
	cfg := zap.NewProductionConfig()

	if os.Getenv("DEBUG") != "" {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewExample()
		logger.Warn("unable to build configured logger, using example fallback", zap.Error(err))
	}

	return logger
}
