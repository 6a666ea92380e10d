// Package config loads, validates and persists the ecoroute configuration.
//
// Configuration is read from ~/.ecoroute/config.yaml (or the path given by
// --config / ECOROUTE_CONFIG), overlaid section by section with a
// project-local .ecoroute/config.yaml when one is found, and finally
// overridden by ECOROUTE_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rshade/ecoroute/internal/routes"
)

// File and directory names.
const (
	DirName        = ".ecoroute"
	ConfigFileName = "config.yaml"
	DataDirName    = "data"
	LogFileName    = "ecoroute.log"
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Defaults and bounds.
const (
	DefaultPrecision        = 2
	MaxPrecision            = 6
	DefaultHistoryCapacity  = 50
	MaxHistoryCapacity      = 500
	DefaultHistoryKey       = "ecoroute_history"
	DefaultRouteCacheSize   = 256
	DefaultBatchConcurrency = 4
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "console"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete ecoroute configuration.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	History HistoryConfig `yaml:"history"`
	Storage StorageConfig `yaml:"storage"`
	Routes  RoutesConfig  `yaml:"routes"`
	Logging LoggingConfig `yaml:"logging"`
	Engine  EngineConfig  `yaml:"engine"`

	path string
}

// OutputConfig controls command output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// HistoryConfig controls the calculation history.
type HistoryConfig struct {
	Capacity int    `yaml:"capacity"`
	Key      string `yaml:"key"`
	AutoSave bool   `yaml:"auto_save"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend       string `yaml:"backend"`
	Directory     string `yaml:"directory,omitempty"`
	RedisAddr     string `yaml:"redis_addr,omitempty"`
	RedisPassword string `yaml:"redis_password,omitempty"`
	RedisDB       int    `yaml:"redis_db,omitempty"`
	PostgresURL   string `yaml:"postgres_url,omitempty"`
}

// RoutesConfig tunes distance resolution and adds locations and routes to
// the seeded tables.
type RoutesConfig struct {
	SearchRadiusKm float64             `yaml:"search_radius_km"`
	CacheSize      int                 `yaml:"cache_size"`
	Locations      []routes.Location   `yaml:"locations,omitempty"`
	Routes         []routes.RouteEntry `yaml:"routes,omitempty"`
}

// EngineConfig tunes the calculator.
type EngineConfig struct {
	BatchConcurrency int `yaml:"batch_concurrency"`
}

// New returns a configuration holding the defaults. The storage directory
// defaults to the data directory under the config directory.
func New() *Config {
	dataDir := DataDirName
	if dir, err := GetConfigDir(); err == nil {
		dataDir = filepath.Join(dir, DataDirName)
	}

	return &Config{
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     DefaultPrecision,
		},
		History: HistoryConfig{
			Capacity: DefaultHistoryCapacity,
			Key:      DefaultHistoryKey,
			AutoSave: true,
		},
		Storage: StorageConfig{
			Backend:   BackendFile,
			Directory: dataDir,
		},
		Routes: RoutesConfig{
			SearchRadiusKm: routes.DefaultSearchRadiusKM,
			CacheSize:      DefaultRouteCacheSize,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Engine: EngineConfig{
			BatchConcurrency: DefaultBatchConcurrency,
		},
	}
}

// Load reads the configuration at path on top of the defaults. A missing
// file is not an error. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	return LoadWithProjectDir(context.Background(), path, "")
}

// readFile unmarshals the YAML file at path onto cfg. A missing file
// leaves cfg unchanged.
func readFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Path returns the file the configuration was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// SetPath sets the file Save writes to.
func (c *Config) SetPath(path string) {
	c.path = path
}

// Save writes the configuration to its path atomically.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no file path")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	tmpPath := c.path + ".tmp"
	if err = os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config temp file: %w", err)
	}
	if err = os.Rename(tmpPath, c.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming config temp file: %w", err)
	}
	return nil
}

// Validate checks enums and ranges and reports every problem found.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON:
	default:
		add("output.default_format %q must be one of table, json, ndjson", c.Output.DefaultFormat)
	}
	if c.Output.Precision < 0 || c.Output.Precision > MaxPrecision {
		add("output.precision %d must be between 0 and %d", c.Output.Precision, MaxPrecision)
	}

	if c.History.Capacity < 1 || c.History.Capacity > MaxHistoryCapacity {
		add("history.capacity %d must be between 1 and %d", c.History.Capacity, MaxHistoryCapacity)
	}
	if c.History.Key == "" {
		add("history.key must not be empty")
	}

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Storage.Directory == "" {
			add("storage.directory is required for the file backend")
		}
	case BackendRedis:
		if c.Storage.RedisAddr == "" {
			add("storage.redis_addr is required for the redis backend")
		}
		if c.Storage.RedisDB < 0 {
			add("storage.redis_db %d must not be negative", c.Storage.RedisDB)
		}
	case BackendPostgres:
		if c.Storage.PostgresURL == "" {
			add("storage.postgres_url is required for the postgres backend")
		}
	default:
		add("storage.backend %q must be one of memory, file, redis, postgres", c.Storage.Backend)
	}

	if c.Routes.SearchRadiusKm <= 0 {
		add("routes.search_radius_km %v must be greater than 0", c.Routes.SearchRadiusKm)
	}
	if c.Routes.CacheSize < 1 {
		add("routes.cache_size %d must be at least 1", c.Routes.CacheSize)
	}
	if _, err := c.RouteTable(); err != nil {
		add("routes: %v", err)
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, err)
	}

	if c.Engine.BatchConcurrency < 1 {
		add("engine.batch_concurrency %d must be at least 1", c.Engine.BatchConcurrency)
	}

	return errors.Join(errs...)
}

// RouteTable returns the seeded route table extended with the configured
// locations and routes.
func (c *Config) RouteTable() (*routes.Table, error) {
	return routes.Default().Extend(c.Routes.Locations, c.Routes.Routes)
}
