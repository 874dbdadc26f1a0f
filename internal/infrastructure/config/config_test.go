package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
allocator:
  workers: 4
  top_n: 5
server:
  port: 9090
storage:
  database_path: cleaner.db
observability:
  logging:
    level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Allocator.Workers)
	assert.Equal(t, 5, cfg.Allocator.TopN)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "cleaner.db", cfg.Storage.DatabasePath)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)

	// Unset values still get defaults
	assert.NotEmpty(t, cfg.Server.AllowedOrigins)
}

func TestLoadExpandsEnvVars(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	t.Setenv("TXN_CLEANER_DB_PATH", "/tmp/from-env.db")

	yaml := "storage:\n  database_path: ${TXN_CLEANER_DB_PATH}\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.Storage.DatabasePath)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TXN_CLEANER_DB_PATH", "test.db")
	t.Setenv("TXN_CLEANER_WORKERS", "8")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := LoadFromEnv()

	assert.Equal(t, "test.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 8, cfg.Allocator.Workers)
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.Equal(t, 8080, cfg.Server.Port) // default
}

func TestLoadOrEnvFallsBack(t *testing.T) {
	cfg := LoadOrEnvWithPath(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	assert.NotNil(t, cfg)
	assert.Equal(t, 1, cfg.Allocator.Workers)
	assert.Equal(t, 10, cfg.Allocator.TopN)
}
