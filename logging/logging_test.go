package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/meenmo/mocurve/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"info":  zapcore.InfoLevel,
		"ERROR": zapcore.ErrorLevel,
		"debug": zapcore.DebugLevel,
		"trace": zapcore.Level(-2),
	}
	for in, want := range tests {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logging.ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	log, err := logging.NewLogger("debug")
	require.NoError(t, err)
	assert.True(t, log.V(logging.DEBUG).Enabled())
	assert.False(t, log.V(logging.TRACE).Enabled())

	log, err = logging.NewLogger("info")
	require.NoError(t, err)
	assert.False(t, log.V(logging.DEBUG).Enabled())

	assert.True(t, logging.NewTestLogger().V(logging.TRACE).Enabled())
}
