package config

import (
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

// Validate checks the settings a command mode depends on. Modes: "serve",
// "render".
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be > 0 and <= 65535")
		}
		if c.Upstream.BaseURL == "" && c.Datasets.Schools == "" && c.Datasets.Parks == "" && len(c.Datasets.Crime) == 0 {
			problems = append(problems, "either upstream.base_url or at least one datasets entry is required")
		}
	case "render":
		if c.Upstream.BaseURL == "" {
			problems = append(problems, "upstream.base_url is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Upstream.BaseURL != "" {
		u, err := url.Parse(c.Upstream.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			problems = append(problems, "upstream.base_url must be an absolute http(s) URL")
		}
	}
	if c.Upstream.MaxRetries < 0 {
		problems = append(problems, "upstream.max_retries must be >= 0")
	}
	if c.Cache.MaxEntries < 0 {
		problems = append(problems, "cache.max_entries must be >= 0")
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > c.Map.MaxZoom {
		problems = append(problems, "map.zoom must be between 0 and map.max_zoom")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}
