package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/rustyeddy/tradezilla/config"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.LogConfig
		want zapcore.Level
	}{
		{"defaults", config.LogConfig{}, zapcore.InfoLevel},
		{"debug json", config.LogConfig{Level: "DEBUG", Encoding: "json"}, zapcore.DebugLevel},
		{"warn console", config.LogConfig{Level: "warn", Encoding: "console"}, zapcore.WarnLevel},
		{"unknown level falls back", config.LogConfig{Level: "chatty"}, zapcore.InfoLevel},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l, err := New(tt.cfg)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestNewBadEncoding(t *testing.T) {
	t.Parallel()

	_, err := New(config.LogConfig{Encoding: "xml"})
	assert.Error(t, err)
}
