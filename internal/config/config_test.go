package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "application.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("should use defaults without a file", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.NoError(t, err)
		assert.Equal(t, ":8181", cfg.Addr)
		assert.Equal(t, MemoryBackend, cfg.Store.Backend)
		assert.Equal(t, 200*time.Millisecond, cfg.Store.Latency)
		assert.Equal(t, 5432, cfg.Database.Port)
	})

	t.Run("should let the file override defaults", func(t *testing.T) {
		path := writeFile(t, "addr: \":9000\"\nstore:\n  latency: 0s\n  fixtures: /srv/fixtures\ndb:\n  name: budget\n")

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.Addr)
		assert.Equal(t, time.Duration(0), cfg.Store.Latency)
		assert.Equal(t, "/srv/fixtures", cfg.Store.Fixtures)
		assert.Equal(t, "budget", cfg.Database.Name)
		assert.Equal(t, "localhost", cfg.Database.Host)
	})

	t.Run("should let the environment override the file", func(t *testing.T) {
		path := writeFile(t, "store:\n  backend: memory\ndb:\n  host: file-host\n")
		t.Setenv("CLARITY_STORE_BACKEND", "Postgres")
		t.Setenv("CLARITY_DB_HOST", "env-host")
		t.Setenv("CLARITY_STORE_LATENCY", "50ms")

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, PostgresBackend, cfg.Store.Backend)
		assert.Equal(t, "env-host", cfg.Database.Host)
		assert.Equal(t, 50*time.Millisecond, cfg.Store.Latency)
	})

	t.Run("should reject an unknown backend", func(t *testing.T) {
		t.Setenv("CLARITY_STORE_BACKEND", "sqlite")

		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.ErrorContains(t, err, "store.backend")
	})

	t.Run("should fail on malformed yaml", func(t *testing.T) {
		path := writeFile(t, "store: [unclosed")

		_, err := Load(path)

		assert.Error(t, err)
	})
}

func TestApplication_Validate(t *testing.T) {
	cfg := defaults()
	cfg.Addr = ""
	cfg.Store.Backend = PostgresBackend
	cfg.Store.Latency = -time.Second
	cfg.Database.Host = ""
	cfg.Database.Port = 0

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "addr")
	assert.Contains(t, err.Error(), "db.host")
	assert.Contains(t, err.Error(), "db.port")
	assert.Contains(t, err.Error(), "store.latency")
}
