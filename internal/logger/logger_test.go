package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"WARN":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"":      zapcore.InfoLevel,
		"bogus": zapcore.InfoLevel,
	}
	for in, want := range tests {
		l, err := New(in)
		require.NoError(t, err)
		assert.Equal(t, want, l.Level(), in)
	}
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Infow("ignored", "k", "v") })
}
