package appconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
env: production
log_level: debug
log_format: text
routing:
  bus_wait_time: 2
  bus_velocity: 30
gtfs:
  source: ./feed.zip
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, Production, cfg.Env)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, 2.0, cfg.Routing.BusWaitTime)
		assert.Equal(t, 30.0, cfg.Routing.BusVelocity)
		assert.Equal(t, "./feed.zip", cfg.GTFS.Source)
	})

	t.Run("partial file keeps remaining defaults", func(t *testing.T) {
		path := writeConfig(t, "log_level: warn\n")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, Default().Routing, cfg.Routing)
		assert.Equal(t, Development, cfg.Env)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
		}{
			{"zero velocity", "routing:\n  bus_velocity: 0\n"},
			{"negative wait", "routing:\n  bus_wait_time: -1\n"},
			{"unknown log level", "log_level: loud\n"},
			{"unknown environment", "env: staging\n"},
			{"unknown log format", "log_format: xml\n"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := Load(writeConfig(t, tt.content))
				assert.Error(t, err)
			})
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "routing: [unterminated"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
		assert.Error(t, err)
	})
}

func TestEnvFlagToEnvironment(t *testing.T) {
	tests := []struct {
		flag     string
		expected Environment
	}{
		{"test", Test},
		{"production", Production},
		{"PROD", Production},
		{"development", Development},
		{"", Development},
		{"anything", Development},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			assert.Equal(t, tt.expected, EnvFlagToEnvironment(tt.flag))
		})
	}
}
