package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoroute/internal/engine"
	"github.com/rshade/ecoroute/internal/transport"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		trip   tripFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the emission of every transport mode for one trip",
		Example: `  ecoroute compare -d 430
  ecoroute compare --from sao_paulo --to rio_janeiro -p 3 -r
  ecoroute compare -d 100 -t carro_gasolina -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			in, err := a.resolveTrip(cmd.Context(), trip.input())
			if err != nil {
				return err
			}
			entries, err := a.calc.Compare(in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if ok, renderErr := renderStructured(out, format, entries, entries); ok {
				return renderErr
			}
			return renderComparisonTable(out, entries, in.Transport)
		},
	}

	addTripFlags(cmd, &trip, false)
	cmd.Flags().StringVarP(&trip.transport, "transport", "t", "", "transport mode to mark in the table")
	addOutputFlag(cmd, &output)
	return cmd
}

func newRankingCmd(a *app) *cobra.Command {
	var (
		distance   float64
		passengers int
		output     string
	)

	cmd := &cobra.Command{
		Use:     "ranking",
		Short:   "Rank transport modes from cleanest to most polluting",
		Example: `  ecoroute ranking -d 100 -p 2`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			ranked, err := a.calc.Ranking(distance, passengers)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if ok, renderErr := renderStructured(out, format, ranked, ranked); ok {
				return renderErr
			}
			return renderRankingTable(out, ranked)
		},
	}

	cmd.Flags().Float64VarP(&distance, "distance", "d", 0, "one-way distance in km")
	cmd.Flags().IntVarP(&passengers, "passengers", "p", engine.DefaultPassengers, "number of passengers")
	addOutputFlag(cmd, &output)
	return cmd
}

func renderRankingTable(w io.Writer, ranked []engine.RankedEntry) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "POS\tMEDAL\tTRANSPORT\tNAME\tCO2 (KG)")
	fmt.Fprintln(tw, "---\t-----\t---------\t----\t--------")
	for _, e := range ranked {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f\n", e.Position, e.Medal, e.Transport, e.Name, e.EmissionKg)
	}
	return tw.Flush()
}

func newModesCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "modes",
		Short: "List the known transport modes and their emission rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			profiles := a.calc.Table().Profiles()

			out := cmd.OutOrStdout()
			if ok, renderErr := renderStructured(out, format, profiles, profiles); ok {
				return renderErr
			}
			return renderModesTable(out, profiles)
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

func renderModesTable(w io.Writer, profiles []transport.Profile) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tNAME\tKG/KM\tCATEGORY\tSUSTAINABILITY\tDESCRIPTION")
	fmt.Fprintln(tw, "--\t----\t-----\t--------\t--------------\t-----------")
	for _, p := range profiles {
		fmt.Fprintf(tw, "%s\t%s\t%.3f\t%s\t%s\t%s\n",
			p.ID, p.Name, p.RateKgPerKm, p.Category, p.Sustainability, p.Description)
	}
	return tw.Flush()
}
