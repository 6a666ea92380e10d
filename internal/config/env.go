package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables recognised by ecoroute.
const (
	EnvHome             = "ECOROUTE_HOME"
	EnvConfig           = "ECOROUTE_CONFIG"
	EnvProjectDir       = "ECOROUTE_PROJECT_DIR"
	EnvOutputFormat     = "ECOROUTE_OUTPUT_FORMAT"
	EnvHistoryCapacity  = "ECOROUTE_HISTORY_CAPACITY"
	EnvHistoryKey       = "ECOROUTE_HISTORY_KEY"
	EnvStorageBackend   = "ECOROUTE_STORAGE_BACKEND"
	EnvStorageDir       = "ECOROUTE_STORAGE_DIR"
	EnvRedisAddr        = "ECOROUTE_REDIS_ADDR"
	EnvRedisPassword    = "ECOROUTE_REDIS_PASSWORD"
	EnvRedisDB          = "ECOROUTE_REDIS_DB"
	EnvPostgresURL      = "ECOROUTE_POSTGRES_URL"
	EnvLogLevel         = "ECOROUTE_LOG_LEVEL"
	EnvLogFormat        = "ECOROUTE_LOG_FORMAT"
	EnvLogFile          = "ECOROUTE_LOG_FILE"
	EnvBatchConcurrency = "ECOROUTE_BATCH_CONCURRENCY"
)

// LoadDotEnv loads variables from a .env file without overriding variables
// already set in the environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnvOverrides copies ECOROUTE_* variables onto cfg. Numeric variables
// that do not parse are reported together.
func ApplyEnvOverrides(cfg *Config) error {
	var errs []error

	setString := func(name string, dst *string) {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(name string, dst *int) {
		v, ok := os.LookupEnv(name)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, name, v))
			return
		}
		*dst = n
	}

	setString(EnvOutputFormat, &cfg.Output.DefaultFormat)
	setInt(EnvHistoryCapacity, &cfg.History.Capacity)
	setString(EnvHistoryKey, &cfg.History.Key)
	setString(EnvStorageBackend, &cfg.Storage.Backend)
	setString(EnvStorageDir, &cfg.Storage.Directory)
	setString(EnvRedisAddr, &cfg.Storage.RedisAddr)
	setString(EnvRedisPassword, &cfg.Storage.RedisPassword)
	setInt(EnvRedisDB, &cfg.Storage.RedisDB)
	setString(EnvPostgresURL, &cfg.Storage.PostgresURL)
	setString(EnvLogLevel, &cfg.Logging.Level)
	setString(EnvLogFormat, &cfg.Logging.Format)
	setString(EnvLogFile, &cfg.Logging.File)
	setInt(EnvBatchConcurrency, &cfg.Engine.BatchConcurrency)

	return errors.Join(errs...)
}
