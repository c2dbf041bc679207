package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestStringToLevel(t *testing.T) {
	t.Parallel()

	level, err := StringToLevel("debug", zapcore.ErrorLevel)
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)

	level, err = StringToLevel("Info", zapcore.ErrorLevel)
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level)

	// Numeric verbosity maps to negative zap levels
	level, err = StringToLevel("3", zapcore.ErrorLevel)
	require.NoError(t, err)
	assert.Equal(t, zapcore.Level(-3), level)

	// Garbage and non-positive numbers are rejected
	_, err = StringToLevel("chatty", zapcore.ErrorLevel)
	require.Error(t, err)
	_, err = StringToLevel("0", zapcore.ErrorLevel)
	require.Error(t, err)
}

func TestLevelFlagValueSet(t *testing.T) {
	t.Parallel()

	var observed zapcore.Level
	lfv := NewLevelFlagValue(func(level zapcore.Level) { observed = level })

	require.NoError(t, lfv.Set("error"))
	assert.Equal(t, zapcore.ErrorLevel, observed)
	assert.Equal(t, "error", lfv.String())

	require.Error(t, lfv.Set("not-a-level"))
	// Value is unchanged after a failed Set
	assert.Equal(t, "error", lfv.String())
}
