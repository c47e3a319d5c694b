package logger_test

import (
	"testing"

	"production/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zapcore.Level
	}{
		{name: "empty level defaults to info", level: "", expected: zapcore.InfoLevel},
		{name: "debug level", level: "debug", expected: zapcore.DebugLevel},
		{name: "warn level", level: "warn", expected: zapcore.WarnLevel},
		{name: "unknown level defaults to info", level: "loud", expected: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := logger.New(tt.level)

			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.expected))
			if tt.expected > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.expected-1))
			}
		})
	}
}

func TestComponent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	logger.Component(base, "scheduling_job").Info("pass finished")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "scheduling_job", entry.ContextMap()["component"])
}

func TestComponent_NilBase(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.Component(nil, "x").Info("ignored")
	})
}
