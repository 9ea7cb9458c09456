package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"wildguard/internal/geo"
	"wildguard/internal/layers"
	"wildguard/internal/viewport"
)

// EnvPrefix namespaces environment overrides: WILDGUARD_MAP_ZOOM_MAX -> map.zoom.max.
const EnvPrefix = "WILDGUARD"

// Config holds all application configuration.
type Config struct {
	Map    MapConfig    `mapstructure:"map"`
	Layers LayersConfig `mapstructure:"layers"`
	Log    LogConfig    `mapstructure:"log"`
	Data   DataConfig   `mapstructure:"data"`
	Input  InputConfig  `mapstructure:"input"`
}

type MapConfig struct {
	Bounds      geo.Bounds `mapstructure:"bounds"`
	Zoom        ZoomConfig `mapstructure:"zoom"`
	MarkerInset float64    `mapstructure:"marker_inset"`
}

type ZoomConfig struct {
	Min  float64 `mapstructure:"min"`
	Max  float64 `mapstructure:"max"`
	Step float64 `mapstructure:"step"`
}

type LayersConfig struct {
	Thresholds layers.Thresholds `mapstructure:"thresholds"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type DataConfig struct {
	Path string `mapstructure:"path"`
	Dir  string `mapstructure:"dir"`
}

type InputConfig struct {
	Panning bool `mapstructure:"panning"`
}

// SetDefaults registers every key so env overrides resolve even without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("map.bounds.min_lat", -4.5)
	v.SetDefault("map.bounds.max_lat", 4.5)
	v.SetDefault("map.bounds.min_lng", 34.0)
	v.SetDefault("map.bounds.max_lng", 42.0)
	v.SetDefault("map.zoom.min", viewport.DefaultMinZoom)
	v.SetDefault("map.zoom.max", viewport.DefaultMaxZoom)
	v.SetDefault("map.zoom.step", viewport.DefaultZoomStep)
	v.SetDefault("map.marker_inset", geo.MarkerInset)
	v.SetDefault("layers.thresholds.overview", layers.DefaultThresholds.Overview)
	v.SetDefault("layers.thresholds.regional", layers.DefaultThresholds.Regional)
	v.SetDefault("layers.thresholds.detailed", layers.DefaultThresholds.Detailed)
	v.SetDefault("layers.thresholds.precise", layers.DefaultThresholds.Precise)
	v.SetDefault("layers.thresholds.maximum", layers.DefaultThresholds.Maximum)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("data.path", "")
	v.SetDefault("data.dir", ".")
	v.SetDefault("input.panning", false)
}

// Load reads configuration from defaults, an optional yaml file and the environment.
// cfgFile, when set, must exist; otherwise wildguard.yaml is looked up in . and ./configs.
// Pass a viper instance with flags already bound, or nil for a fresh one.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("wildguard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if err := c.Map.Bounds.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("map.bounds: %v", err))
	}
	z := c.Map.Zoom
	switch {
	case !(z.Min > 0) || math.IsInf(z.Max, 0) || z.Min > z.Max:
		errs = append(errs, fmt.Sprintf("map.zoom: need 0 < min <= max, got %g..%g", z.Min, z.Max))
	case z.Min > 1 || z.Max < 1:
		errs = append(errs, fmt.Sprintf("map.zoom: range %g..%g must include 1", z.Min, z.Max))
	}
	if !(z.Step > 0) {
		errs = append(errs, fmt.Sprintf("map.zoom.step must be positive, got %g", z.Step))
	}
	if c.Map.MarkerInset < 0 || c.Map.MarkerInset >= 0.5 {
		errs = append(errs, fmt.Sprintf("map.marker_inset must be in [0, 0.5), got %g", c.Map.MarkerInset))
	}
	if err := c.Layers.Thresholds.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("layers.thresholds: %v", err))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ViewportOptions turns the map section into transform options.
func (c *Config) ViewportOptions() []viewport.Option {
	return []viewport.Option{
		viewport.WithZoomRange(c.Map.Zoom.Min, c.Map.Zoom.Max),
		viewport.WithZoomStep(c.Map.Zoom.Step),
		viewport.WithMarkerInset(c.Map.MarkerInset),
	}
}

// LoadEnv overlays .env and .env.dev from the working directory onto the process
// environment. Missing files are skipped.
func LoadEnv(logger logrus.FieldLogger) []string {
	files := []string{".env", ".env.dev"}
	loaded := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Overload(file); err != nil {
			if logger != nil {
				logger.WithError(err).Warnf("failed to load %s", file)
			}
			continue
		}
		loaded = append(loaded, file)
	}
	if logger != nil && len(loaded) > 0 {
		logger.Debugf("loaded env files: %s", strings.Join(loaded, ", "))
	}
	return loaded
}
