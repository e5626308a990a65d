package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alertflow/relay/pkg/config"
)

type testConfig struct {
	Host string `env:"TEST_CFG_HOST" envDefault:"localhost"`
	Port int    `env:"TEST_CFG_PORT" envDefault:"8080"`
}

type requiredConfig struct {
	Token string `env:"TEST_CFG_REQUIRED_TOKEN,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied when env unset", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, 8080, cfg.Port)
	})

	t.Run("env values override defaults", func(t *testing.T) {
		t.Setenv("TEST_CFG_HOST", "relay.internal")
		t.Setenv("TEST_CFG_PORT", "9090")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "relay.internal", cfg.Host)
		assert.Equal(t, 9090, cfg.Port)
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer rejected", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on missing required variable", func(t *testing.T) {
		assert.Panics(t, func() {
			var cfg requiredConfig
			config.MustLoad(&cfg)
		})
	})
}
