package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_DefaultLevelIsError(t *testing.T) {
	log, err := New(false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.WarnLevel))
	assert.True(t, log.Core().Enabled(zap.ErrorLevel))
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	log := Must(true)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))
}
