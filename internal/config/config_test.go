package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "stockbook-data", cfg.Storage.Path)
	assert.Equal(t, "BRL", cfg.Display.Currency)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Display.Color)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STOCKBOOK_STORAGE_BACKEND", "redis")
	t.Setenv("STOCKBOOK_REDIS_ADDR", "cache:6380")
	t.Setenv("STOCKBOOK_DISPLAY_CURRENCY", "USD")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, "USD", cfg.Display.Currency)
}

func TestLoadHonorsDatabaseURL(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STOCKBOOK_STORAGE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/stock")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/stock", cfg.Database.URL)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stockbook.yaml")
	content := []byte("storage:\n  backend: memory\nlog:\n  level: debug\n  format: json\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown backend", env: map[string]string{"STOCKBOOK_STORAGE_BACKEND": "sqlite"}},
		{name: "sql backend without url", env: map[string]string{"STOCKBOOK_STORAGE_BACKEND": "mysql", "DATABASE_URL": ""}},
		{name: "unknown log format", env: map[string]string{"STOCKBOOK_LOG_FORMAT": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
