package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/closed-loop/citymap/internal/layer"
)

var (
	renderOutput  string
	renderBaseURL string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Load every layer from a remote server and write the rendered layers as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if renderBaseURL != "" {
			cfg.Upstream.BaseURL = renderBaseURL
		}
		if err := cfg.Validate("render"); err != nil {
			return err
		}

		upstream, err := newUpstream(cfg)
		if err != nil {
			return err
		}

		ctrl := layer.NewController()
		report := layer.NewLoader(upstream, ctrl, loadTimeout(cfg)).Load(cmd.Context())
		formatReport(cmd.ErrOrStderr(), report)

		out := cmd.OutOrStdout()
		if renderOutput != "" && renderOutput != "-" {
			f, err := os.Create(renderOutput)
			if err != nil {
				return eris.Wrapf(err, "render: create %s", renderOutput)
			}
			defer f.Close() //nolint:errcheck
			out = f
		}
		if err := writeView(out, ctrl.View()); err != nil {
			return err
		}

		if report.AllFailed() {
			return eris.New("render: every layer failed to load")
		}
		return nil
	},
}

func writeView(out io.Writer, v layer.View) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "render: encode layers")
	}
	return nil
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (default stdout)")
	renderCmd.Flags().StringVar(&renderBaseURL, "base-url", "", "remote server base URL (default upstream.base_url)")
	rootCmd.AddCommand(renderCmd)
}
