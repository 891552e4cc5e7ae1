package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/filmorate/config"
	"filmorate/pkg/logger"
)

func testContext() context.Context {
	return logger.NewContext(context.Background(), logger.NewNop())
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load(testContext(), "")
		require.NoError(t, err)

		assert.Equal(t, config.StorageMemory, cfg.Storage.Type)
		assert.False(t, cfg.Storage.IsPostgres())
		assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.GetAddress())
		assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
		assert.Equal(t, "localhost", cfg.Postgres.Host)
		assert.Equal(t, 5432, cfg.Postgres.Port)
		assert.Equal(t, "migrations/filmorate", cfg.Migrations.Path)
		assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
		assert.Equal(t, 5*time.Second, cfg.Shutdown.GetTimeout())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("FILMORATE_STORAGE_TYPE", "postgres")
		t.Setenv("FILMORATE_POSTGRES_HOST", "db")
		t.Setenv("FILMORATE_POSTGRES_PORT", "6543")
		t.Setenv("FILMORATE_POSTGRES_USER", "film")
		t.Setenv("FILMORATE_POSTGRES_PASSWORD", "secret")
		t.Setenv("FILMORATE_POSTGRES_DB", "films")
		t.Setenv("FILMORATE_POSTGRES_MAX_CONN", "20")
		t.Setenv("FILMORATE_HTTP_PORT", "9090")
		t.Setenv("FILMORATE_HTTP_WRITE_TIMEOUT", "3s")
		t.Setenv("FILMORATE_LOGGER_MODE", "production")
		t.Setenv("FILMORATE_GRACEFUL_SHUTDOWN_TIMEOUT", "12")

		cfg, err := config.Load(testContext(), "")
		require.NoError(t, err)

		assert.True(t, cfg.Storage.IsPostgres())
		assert.Equal(t, 20, cfg.Postgres.MaxConn)
		assert.Equal(t, "host=db port=6543 user=film password=secret dbname=films sslmode=disable", cfg.Postgres.GetDSN())
		assert.Equal(t, "postgres://film:secret@db:6543/films?sslmode=disable", cfg.Postgres.GetConnectionURL())
		assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.GetAddress())
		assert.Equal(t, 3*time.Second, cfg.HTTP.WriteTimeout)
		assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
		assert.Equal(t, 12*time.Second, cfg.Shutdown.GetTimeout())
	})

	t.Run("env file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("FILMORATE_HTTP_PORT=7070\nFILMORATE_STORAGE_TYPE=memory\n"), 0o600))

		cfg, err := config.Load(testContext(), path)
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.HTTP.Port)
	})

	t.Run("unknown storage type", func(t *testing.T) {
		t.Setenv("FILMORATE_STORAGE_TYPE", "redis")

		cfg, err := config.Load(testContext(), "")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, config.ErrUnknownStorage)
	})
}
