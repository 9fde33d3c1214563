package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
}

func TestProductionConfig(t *testing.T) {
	cfg := ProductionConfig()

	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
}

func TestNew(t *testing.T) {
	logger, err := New(DefaultConfig())

	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Info("smoke")
}

func TestNewForEnvironment(t *testing.T) {
	tests := []struct {
		env        string
		wantFormat string
	}{
		{"production", "json"},
		{"development", "console"},
		{"", "console"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			logger, err := NewForEnvironment(tt.env)
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"INFO", zapcore.InfoLevel},
		{"unknown", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestJSONEncoderOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := ProductionConfig()
	core := zapcore.NewCore(createEncoder(cfg), zapcore.AddSync(&buf), zapcore.InfoLevel)

	logger := zap.New(core)
	logger.Info("payment confirmed")
	require.NoError(t, logger.Sync())

	var entry map[string]any
	line := strings.TrimSpace(buf.String())
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "payment confirmed", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.NotEmpty(t, entry["time"])
}
