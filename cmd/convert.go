package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/closed-loop/citymap/internal/datasource"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.shp> <output.geojson>",
	Short: "Convert a shapefile and its attributes into a GeoJSON feature collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := convertShapefile(args[0], args[1])
		if err != nil {
			return err
		}
		zap.L().Info("shapefile converted",
			zap.String("input", args[0]),
			zap.String("output", args[1]),
			zap.Int("features", n),
		)
		return nil
	},
}

// convertShapefile writes the GeoJSON rendition of in to out and returns the
// feature count.
func convertShapefile(in, out string) (int, error) {
	fc, err := datasource.ReadShapefile(in)
	if err != nil {
		return 0, err
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return 0, eris.Wrap(err, "convert: encode geojson")
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return 0, eris.Wrapf(err, "convert: write %s", out)
	}
	return len(fc.Features), nil
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
