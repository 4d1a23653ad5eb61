package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := load("", map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "redis://localhost:6379", cfg.Storage.Redis.URL)
	assert.Equal(t, "roster", cfg.Storage.Redis.KeyPrefix)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestYAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
server:
  port: 9090
  read_timeout: 3s
log:
  level: debug
storage:
  type: sqlite
  sqlite:
    path: /tmp/players.db
seed:
  file: data/roster.yaml
`)

	cfg, err := load(path, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Storage.Type)
	assert.Equal(t, "/tmp/players.db", cfg.Storage.SQLite.Path)
	assert.Equal(t, "data/roster.yaml", cfg.Seed.File)
}

func TestEnvironmentOverridesYAML(t *testing.T) {
	path := writeFile(t, `
server:
  port: 9090
storage:
  type: sqlite
`)

	cfg, err := load(path, map[string]string{
		"ROSTER_SERVER_PORT":       "7070",
		"ROSTER_STORAGE_TYPE":      "redis",
		"ROSTER_STORAGE_REDIS_URL": "redis://cache:6379/2",
		"ROSTER_SEED_RANDOM":       "25",
		"ROSTER_METRICS_ENABLED":   "false",
	})
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Storage.Type)
	assert.Equal(t, "redis://cache:6379/2", cfg.Storage.Redis.URL)
	assert.Equal(t, 25, cfg.Seed.Random)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadErrors(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "missing.yaml"), map[string]string{})
	assert.Error(t, err)

	_, err = load(writeFile(t, "server: [not, a, map"), map[string]string{})
	assert.Error(t, err)

	_, err = load("", map[string]string{"ROSTER_STORAGE_TYPE": "postgres"})
	assert.ErrorContains(t, err, "invalid storage type")

	_, err = load("", map[string]string{"ROSTER_LOG_LEVEL": "loud"})
	assert.ErrorContains(t, err, "invalid log level")

	_, err = load("", map[string]string{"ROSTER_SERVER_PORT": "eighty"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}
