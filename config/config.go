// Package config holds the runtime parameters of the risk runner and the commands.
package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/meenmo/mocurve/check"
	"github.com/meenmo/mocurve/interpolation"
)

// Config holds bump-and-reval and curve construction parameters.
type Config struct {
	// BumpSize is the absolute shift applied to one parameter for a central difference.
	BumpSize float64 `mapstructure:"bumpsize"`

	// Workers bounds the scenarios revalued concurrently.
	Workers int `mapstructure:"workers"`

	// CacheTTL is how long a revalued scenario stays memoized.
	CacheTTL time.Duration `mapstructure:"cachettl"`

	// Interpolator, LeftExtrapolator and RightExtrapolator name the scheme used when a
	// definition does not set one.
	Interpolator      string `mapstructure:"interpolator"`
	LeftExtrapolator  string `mapstructure:"leftextrapolator"`
	RightExtrapolator string `mapstructure:"rightextrapolator"`

	// LogLevel is one of error, info, debug, trace.
	LogLevel string `mapstructure:"loglevel"`
}

// DefaultConfig provides the values used when nothing is configured.
var DefaultConfig = Config{
	BumpSize:          1e-4,
	Workers:           4,
	CacheTTL:          5 * time.Minute,
	Interpolator:      interpolation.LinearName,
	LeftExtrapolator:  interpolation.FlatName,
	RightExtrapolator: interpolation.FlatName,
	LogLevel:          "info",
}

var (
	mu  sync.RWMutex
	cfg = DefaultConfig
)

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	mu.Lock()
	defer mu.Unlock()
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// Validate checks the numeric fields and scheme names.
func (c Config) Validate() error {
	if err := check.Positive(c.BumpSize, "config: bumpSize"); err != nil {
		return err
	}
	if c.Workers < 1 {
		return check.Errorf("config: workers must be at least 1, got %d", c.Workers)
	}
	if c.CacheTTL < 0 {
		return check.Errorf("config: cacheTTL must not be negative, got %s", c.CacheTTL)
	}
	if _, err := interpolation.CombinedInterpolatorByName(c.Interpolator, c.LeftExtrapolator, c.RightExtrapolator); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Load reads path, if not empty, over DefaultConfig. Environment variables prefixed
// with MOCURVE_ (MOCURVE_WORKERS, MOCURVE_BUMPSIZE, ...) take precedence over the file.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("bumpsize", DefaultConfig.BumpSize)
	v.SetDefault("workers", DefaultConfig.Workers)
	v.SetDefault("cachettl", DefaultConfig.CacheTTL)
	v.SetDefault("interpolator", DefaultConfig.Interpolator)
	v.SetDefault("leftextrapolator", DefaultConfig.LeftExtrapolator)
	v.SetDefault("rightextrapolator", DefaultConfig.RightExtrapolator)
	v.SetDefault("loglevel", DefaultConfig.LogLevel)

	v.SetEnvPrefix("MOCURVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config.Load: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
