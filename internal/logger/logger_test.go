package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		enabled zapcore.Level
		below   zapcore.Level
	}{
		{name: "debug console", cfg: &Config{Level: "debug", Format: "console"}, enabled: zapcore.DebugLevel},
		{name: "warn json", cfg: &Config{Level: "warn", Format: "json"}, enabled: zapcore.WarnLevel, below: zapcore.InfoLevel},
		{name: "defaults", cfg: nil, enabled: zapcore.InfoLevel, below: zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			require.NoError(t, err)

			core := log.Core()
			assert.True(t, core.Enabled(tt.enabled))

			if tt.enabled != zapcore.DebugLevel {
				assert.False(t, core.Enabled(tt.below))
			}
		})
	}
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(&Config{Level: "loud"})
	require.Error(t, err)

	_, err = New(&Config{Level: "info", Format: "xml"})
	require.Error(t, err)
}
