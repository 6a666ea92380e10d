// Package cli implements the ecoroute command line interface.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/ecoroute/internal/config"
)

// annotationConfigOnly marks commands that only need the loaded
// configuration, skipping validation and engine setup.
const annotationConfigOnly = "ecoroute/config-only"

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the ecoroute CLI.
// It loads configuration, wires up logging and tracing, builds the
// calculator and route resolver, and registers the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var flags globalFlags
	a := &app{}

	cmd := &cobra.Command{
		Use:           "ecoroute",
		Short:         "Trip CO2 emissions calculator",
		Long:          "ecoroute: Calculate, compare and track the CO2 emissions of trips by transport mode",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, projectDir, err := loadConfig(cmd.Context(), flags)
			if err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)
			a.cfg = cfg
			a.projectDir = projectDir

			result := setupLogging(cmd, flags.debug)
			a.logResult = &result

			// Config commands must work on a broken configuration.
			if cmd.Annotations[annotationConfigOnly] == "true" {
				return nil
			}
			if err = cfg.Validate(); err != nil {
				return err
			}
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			logger.Debug().
				Ctx(cmd.Context()).
				Str("command", cmd.CommandPath()).
				Msg("command finished")
			return a.close(flags.metricsFile)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.configPath, "config", "", "config file (default $ECOROUTE_HOME/config.yaml)")
	pf.StringVar(&flags.projectDir, "project-dir", "", "project directory holding a .ecoroute/config.yaml overlay")
	pf.StringVar(&flags.storage, "storage", "", "history storage backend: memory, file, redis, postgres")
	pf.StringVar(&flags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	cmd.AddCommand(
		newCalcCmd(a), newCompareCmd(a), newRankingCmd(a), newModesCmd(a),
		newRouteCmd(a), newHistoryCmd(a), newConfigCmd(a),
	)

	return cmd
}

const rootCmdExample = `  # Calculate the emission of a trip by gasoline car
  ecoroute calc --transport carro_gasolina --distance 430

  # Resolve the distance from the route table
  ecoroute calc -t trem --from sao_paulo --to rio_janeiro --round-trip

  # Compare every transport mode for the same trip
  ecoroute compare --distance 430 --passengers 2

  # Rank transport modes, cleanest first
  ecoroute ranking --distance 100

  # Browse the calculation history interactively
  ecoroute history browse

  # Initialize configuration
  ecoroute config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(newConfigInitCmd(a), newConfigShowCmd(a), newConfigValidateCmd(a))
	return cmd
}
