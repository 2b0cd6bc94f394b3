// Package config loads the editor tunables.
//
// Values are resolved in this order (last wins): embedded defaults, config file,
// BEZIERPAD_* environment variables, command line flags.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

//go:embed defaults.json
var defaults []byte

// EnvPrefix prefixes environment overrides, e.g. BEZIERPAD_CURVE_STEPS.
const EnvPrefix = "BEZIERPAD"

var ErrInvalidConfig = errors.New("invalid config")

// FlagKeys maps command line flag names to config keys.
var FlagKeys = map[string]string{
	"log-level": "logLevel",
	"steps":     "curve.steps",
	"radius":    "marker.radius",
	"addr":      "web.addr",
}

type Config struct {
	LogLevel string `mapstructure:"logLevel"`
	Canvas   struct {
		Width  int `mapstructure:"width"`
		Height int `mapstructure:"height"`
	} `mapstructure:"canvas"`
	Marker struct {
		Radius float64 `mapstructure:"radius"`
	} `mapstructure:"marker"`
	Curve struct {
		Steps int     `mapstructure:"steps"`
		Width float64 `mapstructure:"width"`
	} `mapstructure:"curve"`
	Keys Keys `mapstructure:"keys"`
	Web  struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"web"`
}

// Keys holds key names bound to editor commands. Frontends match them case-insensitively.
type Keys struct {
	Reset         string `mapstructure:"reset" json:"reset"`
	ToggleMarkers string `mapstructure:"toggleMarkers" json:"toggleMarkers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := Load("", nil)
	if err != nil {
		panic(fmt.Sprintf("embedded defaults are broken: %v", err))
	}

	return cfg
}

// Load resolves the configuration. path may be empty; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1.0: defaults
	builtin := viper.New()
	builtin.SetConfigType("json")
	if err := builtin.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("error reading embedded defaults: %w", err)
	}

	for _, key := range builtin.AllKeys() {
		v.SetDefault(key, builtin.Get(key))
	}

	// 1.1: config file, format taken from its extension
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// 1.2: environment
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 1.3: flags
	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every tunable is usable.
func (c *Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas size must be positive, got %dx%d", ErrInvalidConfig, c.Canvas.Width, c.Canvas.Height)
	case c.Marker.Radius <= 0:
		return fmt.Errorf("%w: marker radius must be positive, got %g", ErrInvalidConfig, c.Marker.Radius)
	case c.Curve.Steps < 1:
		return fmt.Errorf("%w: curve steps must be at least 1, got %d", ErrInvalidConfig, c.Curve.Steps)
	case c.Curve.Width <= 0:
		return fmt.Errorf("%w: curve width must be positive, got %g", ErrInvalidConfig, c.Curve.Width)
	case strings.TrimSpace(c.Keys.Reset) == "" || strings.TrimSpace(c.Keys.ToggleMarkers) == "":
		return fmt.Errorf("%w: key bindings must not be empty", ErrInvalidConfig)
	case strings.EqualFold(c.Keys.Reset, c.Keys.ToggleMarkers):
		return fmt.Errorf("%w: %q is bound to both reset and toggle-markers", ErrInvalidConfig, c.Keys.Reset)
	}

	return nil
}
