package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/closed-loop/citymap/internal/choropleth"
)

var legendFormat string

var legendCmd = &cobra.Command{
	Use:   "legend",
	Short: "Print the crime-rate color legend",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeLegend(cmd.OutOrStdout(), legendFormat, choropleth.Legend())
	},
}

func writeLegend(out io.Writer, format string, entries []choropleth.LegendEntry) error {
	switch format {
	case "table", "":
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "RATE\tCOLOR")
		_, _ = fmt.Fprintln(w, "----\t-----")
		for _, e := range entries {
			_, _ = fmt.Fprintf(w, "%s\t%s\n", e.Label, e.Color)
		}
		return w.Flush()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return eris.Wrap(err, "legend: encode json")
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return eris.Wrap(err, "legend: encode yaml")
		}
		if err := enc.Close(); err != nil {
			return eris.Wrap(err, "legend: encode yaml")
		}
		return nil
	default:
		return eris.Errorf("legend: unknown format %q (table, json, yaml)", format)
	}
}

func init() {
	legendCmd.Flags().StringVar(&legendFormat, "format", "table", "output format: table, json or yaml")
	rootCmd.AddCommand(legendCmd)
}
