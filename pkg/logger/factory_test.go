package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alertflow/relay/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Run("json format produces parseable records", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatJSON))

		log.Info("hello", slog.String("k", "v"))

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "hello", record["msg"])
		assert.Equal(t, "v", record["k"])
	})

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatText))

		log.Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filters records", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))

		log.Info("dropped")
		log.Warn("kept")

		assert.NotContains(t, buf.String(), "dropped")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("static attrs on every record", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("service", "relay")),
		)

		log.Info("one")
		log.Info("two")

		assert.Equal(t, 2, strings.Count(buf.String(), `"service":"relay"`))
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.New(logger.WithFormat(logger.Format("xml")))
		})
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Run("builds logger from env config", func(t *testing.T) {
		log := logger.NewFromConfig(logger.Config{Level: slog.LevelDebug, Format: logger.FormatText}, "relay")
		require.NotNil(t, log)
		assert.True(t, log.Enabled(t.Context(), slog.LevelDebug))
	})
}

func TestAttrs(t *testing.T) {
	t.Run("error attr", func(t *testing.T) {
		attr := logger.Error(errors.New("boom"))
		assert.Equal(t, "error", attr.Key)
	})

	t.Run("nil error produces empty attr", func(t *testing.T) {
		attr := logger.Error(nil)
		assert.Equal(t, slog.Attr{}, attr)
	})

	t.Run("component attr", func(t *testing.T) {
		attr := logger.Component("session")
		assert.Equal(t, "component", attr.Key)
		assert.Equal(t, "session", attr.Value.String())
	})
}
