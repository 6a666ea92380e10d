package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecoroute/internal/config"
)

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvOutputFormat, "ndjson")
	t.Setenv(config.EnvHistoryCapacity, "200")
	t.Setenv(config.EnvHistoryKey, "ci_history")
	t.Setenv(config.EnvStorageBackend, "redis")
	t.Setenv(config.EnvRedisAddr, "redis:6379")
	t.Setenv(config.EnvRedisPassword, "secret")
	t.Setenv(config.EnvRedisDB, "3")
	t.Setenv(config.EnvLogLevel, "warn")
	t.Setenv(config.EnvBatchConcurrency, "9")

	cfg := config.New()
	require.NoError(t, config.ApplyEnvOverrides(cfg))

	assert.Equal(t, "ndjson", cfg.Output.DefaultFormat)
	assert.Equal(t, 200, cfg.History.Capacity)
	assert.Equal(t, "ci_history", cfg.History.Key)
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "redis:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, "secret", cfg.Storage.RedisPassword)
	assert.Equal(t, 3, cfg.Storage.RedisDB)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 9, cfg.Engine.BatchConcurrency)
}

func TestApplyEnvOverrides_InvalidNumbers(t *testing.T) {
	t.Setenv(config.EnvHistoryCapacity, "lots")
	t.Setenv(config.EnvRedisDB, "x")

	cfg := config.New()
	err := config.ApplyEnvOverrides(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), config.EnvHistoryCapacity)
	assert.Contains(t, err.Error(), config.EnvRedisDB)
	assert.Equal(t, config.DefaultHistoryCapacity, cfg.History.Capacity)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ECOROUTE_HISTORY_KEY=from_dotenv\nECOROUTE_LOG_LEVEL=debug\n"), 0o600))

	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvHistoryKey, "")
	require.NoError(t, os.Unsetenv(config.EnvHistoryKey))

	require.NoError(t, config.LoadDotEnv(path))
	assert.Equal(t, "from_dotenv", os.Getenv(config.EnvHistoryKey))
	assert.Equal(t, "error", os.Getenv(config.EnvLogLevel), "real environment wins over .env")
}

func TestLoadDotEnv_Missing(t *testing.T) {
	assert.NoError(t, config.LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}
