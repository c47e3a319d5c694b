// Package logger builds the zap logger shared by the service, its jobs and adapters.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console-encoded zap logger at the given level ("debug", "info",
// "warn", "error"). An empty or unrecognised level falls back to info.
func New(level string) (*zap.Logger, error) {
	atomicLevel := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if level != "" {
		if parsed, err := zapcore.ParseLevel(level); err == nil {
			atomicLevel = zap.NewAtomicLevelAt(parsed)
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	config := zap.Config{
		Encoding:         "console",
		Level:            atomicLevel,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encoderConfig,
	}

	return config.Build()
}

// Component returns a child logger tagged with the component name.
func Component(base *zap.Logger, name string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	return base.With(zap.String("component", name))
}
