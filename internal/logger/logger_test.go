package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"dispatch/internal/logger"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("defaults to info", func(t *testing.T) {
		log, err := logger.New(logger.Config{})

		require.NoError(t, err)
		assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := logger.New(logger.Config{Level: "loud"})

		require.Error(t, err)
	})

	t.Run("writes to the rotating file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dispatch.log")
		log, err := logger.New(logger.Config{Level: "debug", File: path, JSON: true})
		require.NoError(t, err)

		log.WithField("component", "test").Debug("hello")

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"component":"test"`)
		assert.NotNil(t, logger.Gorm(log))
	})
}
