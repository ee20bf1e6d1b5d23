package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"0", slog.LevelError},
		{"1", slog.LevelWarn},
		{"2", slog.LevelInfo},
		{"3", slog.LevelDebug},
		// anything else falls back to Warn
		{"", slog.LevelWarn},
		{"4", slog.LevelWarn},
		{"-1", slog.LevelWarn},
		{"debug", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.input))
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	original := logLevel.Level()
	defer logLevel.Set(original)

	for _, level := range []slog.Level{
		slog.LevelDebug, slog.LevelError, slog.LevelInfo, slog.LevelWarn,
	} {
		SetLogLevel(level)
		assert.Equal(t, level, logLevel.Level())
	}
}

func TestLoggerIsSingleton(t *testing.T) {
	require.NotNil(t, Logger())
	assert.Same(t, Logger(), Logger())
}
