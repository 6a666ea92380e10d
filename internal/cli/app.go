package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rshade/ecoroute/internal/config"
	"github.com/rshade/ecoroute/internal/engine"
	"github.com/rshade/ecoroute/internal/history"
	"github.com/rshade/ecoroute/internal/kvstore"
	"github.com/rshade/ecoroute/internal/logging"
	"github.com/rshade/ecoroute/internal/routes"
)

// app holds the per-invocation collaborators shared by the subcommands. It
// is populated by the root command's PersistentPreRunE.
type app struct {
	cfg        *config.Config
	projectDir string

	registry *prometheus.Registry
	metrics  *engine.Metrics
	calc     *engine.Calculator
	resolver *routes.Resolver

	kv      kvstore.Store
	history *history.Store

	logResult *logging.LogPathResult
}

// globalFlags are the persistent flags of the root command.
type globalFlags struct {
	debug       bool
	configPath  string
	projectDir  string
	storage     string
	metricsFile string
}

// loadConfig reads .env, the global config file and the project overlay,
// then applies flag overrides.
func loadConfig(ctx context.Context, flags globalFlags) (*config.Config, string, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, "", err
	}

	path := flags.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return nil, "", err
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	projectDir := config.ResolveProjectDir(ctx, flags.projectDir, cwd)

	cfg, err := config.LoadWithProjectDir(ctx, path, projectDir)
	if err != nil {
		return nil, "", err
	}
	if flags.storage != "" {
		cfg.Storage.Backend = flags.storage
	}
	return cfg, projectDir, nil
}

// init builds the calculator, resolver and metrics from a.cfg.
func (a *app) init() error {
	a.registry = prometheus.NewRegistry()
	a.metrics = engine.NewMetrics(a.registry)

	table, err := a.cfg.RouteTable()
	if err != nil {
		return fmt.Errorf("building route table: %w", err)
	}
	a.resolver, err = routes.NewResolver(table, a.cfg.Routes.CacheSize)
	if err != nil {
		return err
	}
	engine.RegisterRouteCacheStats(a.registry, a.resolver.CacheStats)

	a.calc = engine.NewCalculator(nil,
		engine.WithMetrics(a.metrics),
		engine.WithBatchConcurrency(a.cfg.Engine.BatchConcurrency),
	)
	return nil
}

// openHistory opens the configured storage backend and loads the history.
// The store is opened once per invocation.
func (a *app) openHistory(ctx context.Context) (*history.Store, error) {
	if a.history != nil {
		return a.history, nil
	}

	kv, err := kvstore.Open(ctx, a.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", a.cfg.Storage.Backend, err)
	}

	store, err := history.New(kv, a.cfg.History.Key, a.cfg.History.Capacity, history.WithMetrics(a.metrics))
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	if err = store.Load(ctx); err != nil {
		_ = kv.Close()
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "cli").
		Str("backend", a.cfg.Storage.Backend).
		Int("entries", store.Len()).
		Msg("history opened")

	a.kv = kv
	a.history = store
	return store, nil
}

// close releases the storage backend, writes the metrics file and closes
// the log file.
func (a *app) close(metricsFile string) error {
	var errs []error
	if a.kv != nil {
		errs = append(errs, a.kv.Close())
		a.kv, a.history = nil, nil
	}
	if metricsFile != "" && a.registry != nil {
		if err := prometheus.WriteToTextfile(metricsFile, a.registry); err != nil {
			errs = append(errs, fmt.Errorf("writing metrics file: %w", err))
		}
	}
	if a.logResult != nil {
		errs = append(errs, a.logResult.Close())
	}
	return errors.Join(errs...)
}
