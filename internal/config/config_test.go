package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60, cfg.Server.LoadTimeoutSecs)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "data/schools.geojson", cfg.Datasets.Schools)
	assert.Equal(t, "data/parks.geojson", cfg.Datasets.Parks)
	assert.Equal(t, []string{"data/neighbourhood_crime_rates.geojson"}, cfg.Datasets.Crime)
	assert.Empty(t, cfg.Upstream.BaseURL)
	assert.Equal(t, 30, cfg.Upstream.TimeoutSecs)
	assert.Equal(t, 3, cfg.Upstream.MaxRetries)
	assert.InDelta(t, 10.0, cfg.Upstream.RequestsPerSecond, 0.001)
	assert.Equal(t, 16, cfg.Cache.MaxEntries)
	assert.Equal(t, 300, cfg.Cache.TTLSecs)
	assert.InDelta(t, 43.7, cfg.Map.CenterLat, 0.0001)
	assert.InDelta(t, -79.4, cfg.Map.CenterLon, 0.0001)
	assert.Equal(t, 12, cfg.Map.Zoom)
	assert.Equal(t, 18, cfg.Map.MaxZoom)
	assert.Contains(t, cfg.Map.TileURL, "tile.openstreetmap.org")
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
  format: console
server:
  port: 9090
datasets:
  crime:
    - crime_a.geojson
    - crime_b.shp
upstream:
  base_url: http://maps.internal:5000
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"crime_a.geojson", "crime_b.shp"}, cfg.Datasets.Crime)
	assert.Equal(t, "http://maps.internal:5000", cfg.Upstream.BaseURL)
	// Defaults still apply for unset values
	assert.Equal(t, "data/parks.geojson", cfg.Datasets.Parks)
	assert.Equal(t, 12, cfg.Map.Zoom)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
upstream:
  base_url: http://file.example
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("CITYMAP_UPSTREAM_BASE_URL", "http://env.example")
	t.Setenv("CITYMAP_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "http://env.example", cfg.Upstream.BaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("CITYMAP_SERVER_PORT", "3000")
	t.Setenv("CITYMAP_MAP_ZOOM", "14")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 14, cfg.Map.Zoom)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [port"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Datasets.Schools = "schools.geojson"
	cfg.Map.Zoom = 12
	cfg.Map.MaxZoom = 18
	return cfg
}

func TestValidateServe(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("serve"))

	cfg.Server.Port = 0
	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateServe_NoData(t *testing.T) {
	cfg := validDefaults()
	cfg.Datasets = DatasetsConfig{}

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "upstream.base_url or at least one datasets entry")

	cfg.Upstream.BaseURL = "https://maps.example.com"
	assert.NoError(t, cfg.Validate("serve"))
}

func TestValidateRender(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("render")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "upstream.base_url is required")

	cfg.Upstream.BaseURL = "localhost:8080"
	err = cfg.Validate("render")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "absolute http(s) URL")

	cfg.Upstream.BaseURL = "http://localhost:8080"
	assert.NoError(t, cfg.Validate("render"))
}

func TestValidateBounds(t *testing.T) {
	cfg := validDefaults()
	cfg.Upstream.MaxRetries = -1
	cfg.Cache.MaxEntries = -1
	cfg.Map.Zoom = 20

	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream.max_retries must be >= 0")
	assert.Contains(t, err.Error(), "cache.max_entries must be >= 0")
	assert.Contains(t, err.Error(), "map.zoom must be between 0 and map.max_zoom")
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
