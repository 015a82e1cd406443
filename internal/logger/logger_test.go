package logger_test

import (
	"testing"

	"velour/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Level(t *testing.T) {
	l, err := logger.New("prod", "warn")
	require.NoError(t, err)

	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))
}

func TestNew_DevDefaultsToInfo(t *testing.T) {
	l, err := logger.New("dev", "")
	require.NoError(t, err)

	assert.False(t, l.Core().Enabled(zap.DebugLevel))
	assert.True(t, l.Core().Enabled(zap.InfoLevel))
}

func TestNew_BadLevel(t *testing.T) {
	_, err := logger.New("prod", "loud")
	assert.Error(t, err)
}
