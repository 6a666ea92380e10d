package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rshade/ecoroute/internal/config"
)

// tabPadding is the column padding of table output.
const tabPadding = 2

// resolveFormat returns the --output flag when set, the configured default
// format otherwise.
func resolveFormat(flagValue string) (string, error) {
	format := flagValue
	if format == "" {
		format = config.GetDefaultOutputFormat()
	}
	switch format {
	case config.FormatTable, config.FormatJSON, config.FormatNDJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// addOutputFlag registers the --output/-o flag on cmd.
func addOutputFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVarP(dst, "output", "o", "", "output format: table, json, ndjson (default from config)")
}

// newTabWriter returns a tabwriter over w with the CLI's column layout.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
}

// renderJSON writes v as indented JSON.
func renderJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// renderNDJSON writes each item as one JSON line.
func renderNDJSON[T any](w io.Writer, items []T) error {
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encoding NDJSON line: %w", err)
		}
		if _, err = fmt.Fprintln(w, string(data)); err != nil {
			return err
		}
	}
	return nil
}

// renderStructured writes v as JSON or items as NDJSON according to format.
// It reports false for the table format, which each command renders itself.
func renderStructured[T any](w io.Writer, format string, v any, items []T) (bool, error) {
	switch format {
	case config.FormatJSON:
		return true, renderJSON(w, v)
	case config.FormatNDJSON:
		return true, renderNDJSON(w, items)
	default:
		return false, nil
	}
}
