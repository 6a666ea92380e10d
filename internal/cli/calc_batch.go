package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/ecoroute/internal/engine"
	"github.com/rshade/ecoroute/internal/greenops"
)

// batchReport is the structured output of calc batch.
type batchReport struct {
	Items   []batchLine         `json:"items"`
	Summary engine.BatchSummary `json:"summary"`
	Saved   int                 `json:"saved"`
}

// batchLine is one trip of a batch report.
type batchLine struct {
	Index  int                       `json:"index"`
	Input  engine.CalculationInput   `json:"input"`
	Result *engine.CalculationResult `json:"result,omitempty"`
	Error  string                    `json:"error,omitempty"`
}

func newCalcBatchCmd(a *app) *cobra.Command {
	var (
		file   string
		noSave bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Calculate the emissions of every trip in a YAML file",
		Long: `Reads a YAML list of trips and calculates them concurrently.

Each trip accepts transport, distance, passengers, frequency, round_trip,
origin and destination. Invalid trips are reported and do not stop the
others. Successful results are saved to the history unless --no-save is set.`,
		Example: `  ecoroute calc batch --file trips.yaml
  ecoroute calc batch --file trips.yaml -o ndjson --no-save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			inputs, err := readTrips(file)
			if err != nil {
				return err
			}
			report, err := runBatch(cmd, a, inputs, !noSave && a.cfg.History.AutoSave)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if ok, renderErr := renderStructured(out, format, report, report.Items); ok {
				return renderErr
			}
			return renderBatchTable(out, report)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML file holding the list of trips (required)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not save the results to the history")
	addOutputFlag(cmd, &output)
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// readTrips parses a YAML list of trips from path.
func readTrips(path string) ([]engine.CalculationInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trips file: %w", err)
	}

	var inputs []engine.CalculationInput
	if err = yaml.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parsing trips file %s: %w", path, err)
	}
	if len(inputs) == 0 {
		return nil, errors.New("trips file holds no trips")
	}
	return inputs, nil
}

func runBatch(cmd *cobra.Command, a *app, inputs []engine.CalculationInput, save bool) (batchReport, error) {
	ctx := cmd.Context()

	// Trips whose route cannot be resolved keep a zero distance and fail
	// validation in the batch.
	for i := range inputs {
		if resolved, err := a.resolveTrip(ctx, inputs[i]); err == nil {
			inputs[i] = resolved
		}
	}

	items, err := a.calc.CalculateBatch(ctx, inputs)
	if err != nil {
		return batchReport{}, err
	}

	report := batchReport{
		Items:   make([]batchLine, 0, len(items)),
		Summary: engine.Summarize(items),
	}
	var results []*engine.CalculationResult
	for _, item := range items {
		line := batchLine{Index: item.Index, Input: item.Input, Result: item.Result}
		if item.Err != nil {
			line.Error = item.Err.Error()
		} else {
			results = append(results, item.Result)
		}
		report.Items = append(report.Items, line)
	}

	if save && len(results) > 0 {
		report.Saved = a.saveResults(ctx, cmd.ErrOrStderr(), results...)
	}
	return report, nil
}

func renderBatchTable(w io.Writer, report batchReport) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "#\tTRANSPORT\tROUTE\tDISTANCE\tCO2 (KG)\tIMPACT\tERROR")
	fmt.Fprintln(tw, "-\t---------\t-----\t--------\t--------\t------\t-----")

	for _, line := range report.Items {
		route := "-"
		if line.Input.Origin != "" || line.Input.Destination != "" {
			route = line.Input.Origin + " -> " + line.Input.Destination
		}
		if line.Result == nil {
			fmt.Fprintf(tw, "%d\t%s\t%s\t-\t-\t-\t%s\n", line.Index+1, line.Input.Transport, route, line.Error)
			continue
		}
		r := line.Result
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f\t%s\t\n",
			line.Index+1, r.Transport, route, greenops.FormatDistance(r.TotalDistanceKm), r.TotalEmissionKg, r.Impact.Label)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := report.Summary
	_, err := fmt.Fprintf(w, "\n%d trips, %d failed, %s total over %s, %d saved\n",
		s.Count, s.Failed, greenops.FormatEmission(s.TotalEmissionKg),
		greenops.FormatDistance(s.TotalDistanceKm), report.Saved)
	return err
}
