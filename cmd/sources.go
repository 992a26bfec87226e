package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/closed-loop/citymap/internal/config"
	"github.com/closed-loop/citymap/internal/datasource"
	"github.com/closed-loop/citymap/internal/fetcher"
	"github.com/closed-loop/citymap/internal/layer"
	"github.com/closed-loop/citymap/internal/web"
)

// newRegistry maps the configured dataset files onto the data endpoints.
func newRegistry(c *config.Config) *datasource.Registry {
	var cache *datasource.Cache
	if c.Cache.MaxEntries > 0 {
		cache = datasource.NewCache(c.Cache.MaxEntries, time.Duration(c.Cache.TTLSecs)*time.Second)
	}

	var schools, parks []string
	if c.Datasets.Schools != "" {
		schools = []string{c.Datasets.Schools}
	}
	if c.Datasets.Parks != "" {
		parks = []string{c.Datasets.Parks}
	}

	return datasource.NewRegistry(cache,
		datasource.Dataset{Endpoint: layer.Schools.Endpoint(), Paths: schools},
		datasource.Dataset{Endpoint: layer.Parks.Endpoint(), Paths: parks},
		datasource.Dataset{Endpoint: layer.Crime.Endpoint(), Paths: c.Datasets.Crime, Multi: true},
	)
}

// newUpstream builds a client for a remote server's data endpoints.
func newUpstream(c *config.Config) (*fetcher.HTTPFetcher, error) {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		BaseURL:           c.Upstream.BaseURL,
		UserAgent:         c.Upstream.UserAgent,
		Timeout:           time.Duration(c.Upstream.TimeoutSecs) * time.Second,
		MaxRetries:        c.Upstream.MaxRetries,
		RequestsPerSecond: c.Upstream.RequestsPerSecond,
	})
}

func mapView(c *config.Config) web.MapView {
	return web.MapView{
		CenterLat: c.Map.CenterLat,
		CenterLon: c.Map.CenterLon,
		Zoom:      c.Map.Zoom,
		MaxZoom:   c.Map.MaxZoom,
		TileURL:   c.Map.TileURL,
	}
}

func loadTimeout(c *config.Config) time.Duration {
	return time.Duration(c.Server.LoadTimeoutSecs) * time.Second
}

// formatReport writes one row per layer of a load report.
func formatReport(out io.Writer, r layer.Report) {
	_, _ = fmt.Fprintf(out, "Load %s\n", r.LoadID)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "LAYER\tFEATURES\tSTATUS\tDURATION\tERROR")
	_, _ = fmt.Fprintln(w, "-----\t--------\t------\t--------\t-----")
	for _, res := range r.Results {
		status := "ok"
		if res.Class != "" {
			status = res.Class + " error"
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			res.Layer.Title(),
			res.Features,
			status,
			res.Duration.Round(time.Millisecond),
			res.Error,
		)
	}
	_ = w.Flush()
}
