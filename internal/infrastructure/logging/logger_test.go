package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{" warn ", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	logger, err := New(Config{Level: "warn"})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Config{Level: "chatty"})
	assert.Error(t, err)
}

func TestFromLevel(t *testing.T) {
	logger := FromLevel("error", false)
	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))

	fallback := FromLevel("nonsense", true)
	assert.True(t, fallback.Core().Enabled(zapcore.DebugLevel))
}

func TestComponent(t *testing.T) {
	child := NewNop().Component("filesystem")
	require.NotNil(t, child)
	child.Info("discarded")
}

func TestNewDefaultLevels(t *testing.T) {
	prod, err := New(Config{})
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, prod.Core().Enabled(zapcore.InfoLevel))

	dev, err := New(Config{Development: true})
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))
}

func TestNewWritesServiceField(t *testing.T) {
	out := filepath.Join(t.TempDir(), "finder.log")
	logger, err := New(Config{OutputPaths: []string{out}})
	require.NoError(t, err)

	logger.Component("filesystem").Info("Item renamed")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, `"service":"finder"`)
	assert.Contains(t, line, `"logger":"filesystem"`)
	assert.Contains(t, line, `"message":"Item renamed"`)
}
