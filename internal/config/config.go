package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Datasets DatasetsConfig `yaml:"datasets" mapstructure:"datasets"`
	Upstream UpstreamConfig `yaml:"upstream" mapstructure:"upstream"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Map      MapConfig      `yaml:"map" mapstructure:"map"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the map server.
type ServerConfig struct {
	Port               int      `yaml:"port" mapstructure:"port"`
	LoadTimeoutSecs    int      `yaml:"load_timeout_secs" mapstructure:"load_timeout_secs"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" mapstructure:"cors_allowed_origins"`
}

// DatasetsConfig points the data endpoints at local files (.geojson, .json or
// .shp). Crime accepts several files, served as an array of collections.
type DatasetsConfig struct {
	Schools string   `yaml:"schools" mapstructure:"schools"`
	Parks   string   `yaml:"parks" mapstructure:"parks"`
	Crime   []string `yaml:"crime" mapstructure:"crime"`
}

// UpstreamConfig configures loading layers from a remote server's data
// endpoints instead of local datasets.
type UpstreamConfig struct {
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent         string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries        int     `yaml:"max_retries" mapstructure:"max_retries"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// CacheConfig configures the dataset payload cache.
type CacheConfig struct {
	MaxEntries int `yaml:"max_entries" mapstructure:"max_entries"`
	TTLSecs    int `yaml:"ttl_secs" mapstructure:"ttl_secs"`
}

// MapConfig configures the initial map view and base tiles.
type MapConfig struct {
	CenterLat float64 `yaml:"center_lat" mapstructure:"center_lat"`
	CenterLon float64 `yaml:"center_lon" mapstructure:"center_lon"`
	Zoom      int     `yaml:"zoom" mapstructure:"zoom"`
	MaxZoom   int     `yaml:"max_zoom" mapstructure:"max_zoom"`
	TileURL   string  `yaml:"tile_url" mapstructure:"tile_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CITYMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.load_timeout_secs", 60)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("datasets.schools", "data/schools.geojson")
	v.SetDefault("datasets.parks", "data/parks.geojson")
	v.SetDefault("datasets.crime", []string{"data/neighbourhood_crime_rates.geojson"})
	v.SetDefault("upstream.base_url", "")
	v.SetDefault("upstream.user_agent", "citymap/1.0")
	v.SetDefault("upstream.timeout_secs", 30)
	v.SetDefault("upstream.max_retries", 3)
	v.SetDefault("upstream.requests_per_second", 10)
	v.SetDefault("cache.max_entries", 16)
	v.SetDefault("cache.ttl_secs", 300)
	v.SetDefault("map.center_lat", 43.7)
	v.SetDefault("map.center_lon", -79.4)
	v.SetDefault("map.zoom", 12)
	v.SetDefault("map.max_zoom", 18)
	v.SetDefault("map.tile_url", "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
