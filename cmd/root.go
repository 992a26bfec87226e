package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/closed-loop/citymap/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "citymap",
	Short: "Interactive Toronto map of schools, parks and crime rates",
	Long:  "Serves the school, park and neighbourhood crime datasets, renders them into styled map layers with popups, and delivers a Leaflet map page with a crime-rate legend.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
