package cli

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoroute/internal/config"
	"github.com/rshade/ecoroute/internal/greenops"
	"github.com/rshade/ecoroute/internal/history"
	"github.com/rshade/ecoroute/internal/tui"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Calculation history commands",
		Long: `Lists, searches and manages saved calculations.

Entries are numbered from 0, newest first. The history keeps at most
history.capacity entries; the oldest are dropped when it is full.`,
	}
	cmd.AddCommand(
		newHistoryListCmd(a), newHistoryShowCmd(a), newHistoryRemoveCmd(a),
		newHistoryClearCmd(a), newHistorySearchCmd(a), newHistoryStatsCmd(a),
		newHistoryCompareCmd(a), newHistoryExportCmd(a), newHistoryImportCmd(a),
		newHistoryBrowseCmd(a),
	)
	return cmd
}

// parseIndex parses a history index argument.
func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid history index %q: must be an integer", arg)
	}
	return i, nil
}

func newHistoryListCmd(a *app) *cobra.Command {
	var (
		limit  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved calculations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			store, err := a.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			entries := store.List()
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			return renderEntries(cmd.OutOrStdout(), format, entries)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many entries (0 = all)")
	addOutputFlag(cmd, &output)
	return cmd
}

func renderEntries(w io.Writer, format string, entries []history.Entry) error {
	if ok, err := renderStructured(w, format, entries, entries); ok {
		return err
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No calculations in history.")
		return err
	}

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "#\tDATE\tROUTE\tTRANSPORT\tDISTANCE\tCO2 (KG)\tIMPACT")
	fmt.Fprintln(tw, "-\t----\t-----\t---------\t--------\t--------\t------")
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s -> %s\t%s\t%s\t%.2f\t%s\n",
			i, e.Timestamp.Local().Format("2006-01-02 15:04"), e.Origin, e.Destination,
			e.Transport, greenops.FormatDistance(e.DistanceKm), e.TotalEmissionKg, e.ImpactLevel)
	}
	return tw.Flush()
}

func newHistoryShowCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <index>",
		Short: "Show one saved calculation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			store, err := a.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			entry, err := store.Get(index)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if ok, renderErr := renderStructured(out, format, entry, []history.Entry{entry}); ok {
				return renderErr
			}
			_, err = fmt.Fprintln(out, tui.RenderEntryDetail(entry, 0))
			return err
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

func newHistoryRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <index>",
		Aliases: []string{"rm"},
		Short:   "Remove one saved calculation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			store, err := a.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			removed, err := store.Remove(cmd.Context(), index)
			if err != nil {
				return err
			}
			if !removed {
				return &history.InvalidIndexError{Index: index, Len: store.Len()}
			}
			cmd.Printf("Removed entry %d (%d remaining)\n", index, store.Len())
			return nil
		},
	}
}

func newHistoryClearCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved calculation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			if !yes && !Confirm(cmd.OutOrStdout(), cmd.InOrStdin(),
				fmt.Sprintf("Delete all %d saved calculations?", store.Len())) {
				cmd.Println("Aborted.")
				return nil
			}
			if err = store.Clear(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("History cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// searchFlags holds the raw flags of history search.
type searchFlags struct {
	origin      string
	destination string
	transport   string
	minEmission string
	maxEmission string
	since       string
	until       string
	output      string
}

func newHistorySearchCmd(a *app) *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search saved calculations",
		Example: `  ecoroute history search --transport aviao --min 100
  ecoroute history search --from sao_paulo --since 2026-01-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(flags.output)
			if err != nil {
				return err
			}
			criteria, err := a.searchCriteria(cmd, flags)
			if err != nil {
				return err
			}
			store, err := a.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			return renderEntries(cmd.OutOrStdout(), format, store.Search(criteria))
		},
	}

	cmd.Flags().StringVar(&flags.origin, "from", "", "origin location ID or label")
	cmd.Flags().StringVar(&flags.destination, "to", "", "destination location ID or label")
	cmd.Flags().StringVarP(&flags.transport, "transport", "t", "", "transport mode ID")
	cmd.Flags().StringVar(&flags.minEmission, "min", "", "minimum total emission, e.g. 5, 500g or 1.2t (default unit kg)")
	cmd.Flags().StringVar(&flags.maxEmission, "max", "", "maximum total emission, e.g. 5, 500g or 1.2t (default unit kg)")
	cmd.Flags().StringVar(&flags.since, "since", "", "earliest date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&flags.until, "until", "", "latest date, inclusive (YYYY-MM-DD or RFC3339)")
	addOutputFlag(cmd, &flags.output)
	return cmd
}

func (a *app) searchCriteria(cmd *cobra.Command, flags searchFlags) (history.Criteria, error) {
	table := a.resolver.Table()
	c := history.Criteria{Transport: flags.transport}
	if flags.origin != "" {
		c.Origin = locationName(table, flags.origin)
	}
	if flags.destination != "" {
		c.Destination = locationName(table, flags.destination)
	}
	if cmd.Flags().Changed("min") {
		kg, err := greenops.ParseQuantity(flags.minEmission)
		if err != nil {
			return c, fmt.Errorf("--min %q: %w", flags.minEmission, err)
		}
		c.MinEmission = &kg
	}
	if cmd.Flags().Changed("max") {
		kg, err := greenops.ParseQuantity(flags.maxEmission)
		if err != nil {
			return c, fmt.Errorf("--max %q: %w", flags.maxEmission, err)
		}
		c.MaxEmission = &kg
	}
	if flags.since != "" {
		t, err := ParseTime(flags.since)
		if err != nil {
			return c, err
		}
		c.Since = t
	}
	if flags.until != "" {
		t, err := ParseTime(flags.until)
		if err != nil {
			return c, err
		}
		c.Until = endOfDay(flags.until, t)
	}
	return c, nil
}

func newHistoryStatsCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the saved calculations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			store, err := a.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			stats := store.Stats()

			out := cmd.OutOrStdout()
			if ok, renderErr := renderStructured(out, format, stats, []history.Stats{stats}); ok {
				return renderErr
			}
			return renderHistoryStats(out, stats)
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

func renderHistoryStats(w io.Writer, s history.Stats) error {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "Calculations:\t%d\n", s.Count)
	fmt.Fprintf(tw, "Total emission:\t%s\n", greenops.FormatEmission(s.TotalEmissionKg))
	fmt.Fprintf(tw, "Average emission:\t%s\n", greenops.FormatEmission(s.AverageEmissionKg))
	fmt.Fprintf(tw, "Total distance:\t%s\n", greenops.FormatDistance(s.TotalDistanceKm))
	if s.MostUsedTransport != "" {
		fmt.Fprintf(tw, "Most used:\t%s\n", s.MostUsedTransport)
	}
	for _, id := range slices.Sorted(maps.Keys(s.Distribution)) {
		fmt.Fprintf(tw, "  %s\t%d\n", id, s.Distribution[id])
	}
	return tw.Flush()
}

func newHistoryCompareCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "compare <index-a> <index-b>",
		Short:   "Compare the emissions of two saved calculations",
		Example: `  ecoroute history compare 0 1`,
		Args:    cobra.ExactArgs(2), //nolint:mnd // two indexes
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			ia, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			ib, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			store, err := a.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			cmp, err := store.Compare(ia, ib)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if ok, renderErr := renderStructured(out, format, cmp, []history.Comparison{cmp}); ok {
				return renderErr
			}
			tw := newTabWriter(out)
			fmt.Fprintf(tw, "[%d]\t%s -> %s\t%s\t%.2f kg\n", cmp.IndexA, cmp.A.Origin, cmp.A.Destination,
				cmp.A.Transport, cmp.A.TotalEmissionKg)
			fmt.Fprintf(tw, "[%d]\t%s -> %s\t%s\t%.2f kg\n", cmp.IndexB, cmp.B.Origin, cmp.B.Destination,
				cmp.B.Transport, cmp.B.TotalEmissionKg)
			fmt.Fprintf(tw, "Difference:\t%+.2f kg (%+.2f%%)\n", cmp.DifferenceKg, cmp.DifferencePercent)
			fmt.Fprintf(tw, "More efficient:\t[%d]\n", cmp.MoreEfficient)
			return tw.Flush()
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

func newHistoryExportCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the history as a JSON array",
		Example: `  ecoroute history export > trips.json
  ecoroute history export --file trips.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			data, err := store.Export()
			if err != nil {
				return err
			}
			if file == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err = os.WriteFile(file, data, 0o600); err != nil {
				return fmt.Errorf("writing export file: %w", err)
			}
			cmd.Printf("Exported %d entries to %s\n", store.Len(), file)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "write to this file instead of stdout")
	return cmd
}

func newHistoryImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import entries from a JSON export",
		Long: `Imports entries from a JSON array as written by 'history export'.

Every record needs origin, destination, distance, transport and
totalEmission. A single invalid record rejects the whole file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading import file: %w", err)
			}
			records, err := history.DecodeExport(data)
			if err != nil {
				return err
			}
			store, err := a.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			n, err := store.ImportBatch(cmd.Context(), records)
			if err != nil {
				return err
			}
			cmd.Printf("Imported %d entries (%d in history)\n", n, store.Len())
			return nil
		},
	}
}

func newHistoryBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the history interactively",
		Long: `Opens an interactive table of the saved calculations.

Keys: / filter, s cycle sort, enter details, esc back, q quit.
Falls back to 'history list' when not attached to a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			if tui.DetectOutputMode(false, false, false) != tui.OutputModeInteractive {
				return renderEntries(cmd.OutOrStdout(), config.FormatTable, store.List())
			}
			return tui.RunHistoryBrowser(store.List(), store.Stats())
		},
	}
}
