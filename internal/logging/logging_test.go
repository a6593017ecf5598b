package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("json at info", func(t *testing.T) {
		logger, err := New("info", FormatJSON)
		require.NoError(t, err)
		require.True(t, logger.Core().Enabled(zap.InfoLevel))
		require.False(t, logger.Core().Enabled(zap.DebugLevel))
	})

	t.Run("console at debug", func(t *testing.T) {
		logger, err := New("debug", FormatConsole)
		require.NoError(t, err)
		require.True(t, logger.Core().Enabled(zap.DebugLevel))
	})

	t.Run("empty values default to info json", func(t *testing.T) {
		logger, err := New("", "")
		require.NoError(t, err)
		require.True(t, logger.Core().Enabled(zap.InfoLevel))
		require.False(t, logger.Core().Enabled(zap.DebugLevel))
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := New("loud", FormatJSON)
		require.Error(t, err)
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := New("info", "xml")
		require.Error(t, err)
	})
}
