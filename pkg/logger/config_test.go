package logger_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aserowy/htmx-playground/pkg/logger"
)

func TestParseEnvironment(t *testing.T) {
	tests := map[string]logger.Environment{
		"production":  logger.Production,
		"prod":        logger.Production,
		" Staging ":   logger.Staging,
		"stage":       logger.Staging,
		"development": logger.Development,
		"":            logger.Development,
		"qa":          logger.Development,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, logger.ParseEnvironment(in))
		})
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Run("level override", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log, closer, err := logger.NewFromConfig(logger.Config{
			Env:     "production",
			Service: "playground",
			Level:   "warn",
		}, logger.WithOutput(buf))
		require.NoError(t, err)
		defer closer.Close()

		log.Info("hidden")
		assert.Empty(t, buf.String())

		log.Warn("visible")
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "playground", entry["service"])
		assert.Equal(t, "production", entry["env"])
	})

	t.Run("invalid level", func(t *testing.T) {
		_, _, err := logger.NewFromConfig(logger.Config{Level: "loud"})
		assert.Error(t, err)
	})

	t.Run("rotating file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		log, closer, err := logger.NewFromConfig(logger.Config{
			Env:       "production",
			Service:   "playground",
			File:      path,
			MaxSizeMB: 1,
		})
		require.NoError(t, err)

		log.Info("to file")
		require.NoError(t, closer.Close())

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"msg":"to file"`)
	})
}
