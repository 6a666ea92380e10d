package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoroute/internal/config"
	"github.com/rshade/ecoroute/internal/engine"
	"github.com/rshade/ecoroute/internal/greenops"
	"github.com/rshade/ecoroute/internal/tui"
)

// maxBoxWidth caps the styled summary width on wide terminals.
const maxBoxWidth = 80

// calcFlags holds the flags of the calc command.
type calcFlags struct {
	trip   tripFlags
	noSave bool
	output string
	plain  bool
}

func newCalcCmd(a *app) *cobra.Command {
	var flags calcFlags

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate the CO2 emission of a trip",
		Long: `Calculates the CO2 emission of one trip, compares it against every
transport mode, classifies its impact and suggests how to reduce it.

When --distance is omitted, the distance between --from and --to is taken
from the route table, or estimated from the city coordinates.
The result is saved to the history unless --no-save is set.`,
		Example: `  # Gasoline car for 430 km
  ecoroute calc -t carro_gasolina -d 430

  # Bus between two seeded cities, there and back, twice
  ecoroute calc -t onibus --from sao_paulo --to curitiba -r -f 2

  # JSON output without saving
  ecoroute calc -t aviao -d 1015 --no-save -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd, a, flags)
		},
	}

	addTripFlags(cmd, &flags.trip, true)
	cmd.Flags().BoolVar(&flags.noSave, "no-save", false, "do not save the result to the history")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "plain text output without colors")
	addOutputFlag(cmd, &flags.output)

	cmd.AddCommand(newCalcBatchCmd(a))
	return cmd
}

// addTripFlags registers the trip description flags on cmd.
func addTripFlags(cmd *cobra.Command, f *tripFlags, withTransport bool) {
	if withTransport {
		cmd.Flags().StringVarP(&f.transport, "transport", "t", "", "transport mode ID (see 'ecoroute modes')")
	}
	cmd.Flags().Float64VarP(&f.distance, "distance", "d", 0, "one-way distance in km")
	cmd.Flags().StringVar(&f.from, "from", "", "origin location ID or label")
	cmd.Flags().StringVar(&f.to, "to", "", "destination location ID or label")
	cmd.Flags().IntVarP(&f.passengers, "passengers", "p", engine.DefaultPassengers, "number of passengers")
	cmd.Flags().IntVarP(&f.frequency, "frequency", "f", engine.DefaultFrequency, "number of times the trip is made")
	cmd.Flags().BoolVarP(&f.roundTrip, "round-trip", "r", false, "count the return leg")
}

func runCalc(cmd *cobra.Command, a *app, flags calcFlags) error {
	ctx := cmd.Context()

	format, err := resolveFormat(flags.output)
	if err != nil {
		return err
	}

	in, err := a.resolveTrip(ctx, flags.trip.input())
	if err != nil {
		return err
	}

	result, err := a.calc.Calculate(ctx, in)
	if err != nil {
		return err
	}

	if !flags.noSave && a.cfg.History.AutoSave {
		a.saveResults(ctx, cmd.ErrOrStderr(), result)
	}

	out := cmd.OutOrStdout()
	if ok, renderErr := renderStructured(out, format, result, []*engine.CalculationResult{result}); ok {
		return renderErr
	}

	if tui.DetectOutputMode(false, false, flags.plain) != tui.OutputModePlain {
		_, _ = fmt.Fprintln(out, tui.RenderResultSummary(result, min(tui.TerminalWidth(0), maxBoxWidth)))
		_, _ = fmt.Fprintln(out)
		return renderComparisonTable(out, result.Comparison, result.Transport)
	}
	return renderResultPlain(out, result, config.GetOutputPrecision())
}

// saveResults appends results to the history. Storage failures are reported
// as warnings; the calculation itself already succeeded.
func (a *app) saveResults(ctx context.Context, warn io.Writer, results ...*engine.CalculationResult) int {
	store, err := a.openHistory(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(warn, "Warning: history not saved: %v\n", err)
		return 0
	}

	saved := 0
	for _, r := range results {
		if _, err = store.Append(ctx, r); err != nil {
			_, _ = fmt.Fprintf(warn, "Warning: history not saved: %v\n", err)
			return saved
		}
		saved++
	}
	return saved
}

// renderResultPlain writes the result as plain text followed by the
// comparison and recommendation tables.
func renderResultPlain(w io.Writer, r *engine.CalculationResult, precision int) error {
	var b strings.Builder
	if r.Origin != "" || r.Destination != "" {
		fmt.Fprintf(&b, "Route:          %s -> %s\n", r.Origin, r.Destination)
	}
	fmt.Fprintf(&b, "Transport:      %s (%s)\n", r.TransportName, r.Transport)
	fmt.Fprintf(&b, "Distance:       %s one way, %s total\n",
		greenops.FormatDistance(r.DistanceKm), greenops.FormatDistance(r.TotalDistanceKm))
	fmt.Fprintf(&b, "Emission:       %s kg CO2 (%s kg/km)\n",
		greenops.FormatFloat(r.TotalEmissionKg, precision), greenops.FormatFloat(r.EmissionPerKm, 4))
	fmt.Fprintf(&b, "Impact:         %s (score %d)\n", r.Impact.Label, r.Impact.Score)
	fmt.Fprintf(&b, "%s\n\n", r.Equivalents.DisplayText())

	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if r.Equivalents.InputKg > 0 {
		if err := renderEquivalentsTable(w, r.Equivalents); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w)
	}
	if err := renderComparisonTable(w, r.Comparison, r.Transport); err != nil {
		return err
	}
	if len(r.Recommendations) == 0 {
		return nil
	}
	_, _ = fmt.Fprintln(w)
	return renderRecommendationsTable(w, r.Recommendations)
}

// renderComparisonTable writes one row per transport mode, marking current.
func renderComparisonTable(w io.Writer, entries []engine.ComparisonEntry, current string) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "\tTRANSPORT\tNAME\tCO2 (KG)\tCATEGORY\tSUSTAINABILITY")
	fmt.Fprintln(tw, "\t---------\t----\t--------\t--------\t--------------")

	for _, e := range entries {
		marker := ""
		if e.Transport == current {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\t%s\n",
			marker, e.Transport, e.Name, e.EmissionKg, e.Category, e.Sustainability)
	}
	return tw.Flush()
}

func renderEquivalentsTable(w io.Writer, set greenops.EquivalentSet) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "EQUIVALENT\tVALUE")
	fmt.Fprintln(tw, "----------\t-----")
	for _, e := range set.Results() {
		fmt.Fprintf(tw, "%s\t%s\n", e.Label, e.FormattedValue)
	}
	return tw.Flush()
}

func renderRecommendationsTable(w io.Writer, recs []engine.Recommendation) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "PRIORITY\tTYPE\tTITLE\tMESSAGE")
	fmt.Fprintln(tw, "--------\t----\t-----\t-------")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Priority, r.Kind, r.Title, r.Message)
	}
	return tw.Flush()
}
