// Package config resolves game settings from the environment and command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Debug       bool          `env:"WISP_DEBUG"`
	BaseMonitor bool          `env:"WISP_BASE_MONITOR"`
	AssetDir    string        `env:"WISP_ASSET_DIR"`
	Manifest    string        `env:"WISP_MANIFEST" envDefault:"manifest.yaml"`
	Volume      float64       `env:"WISP_VOLUME" envDefault:"1"`
	LoadTimeout time.Duration `env:"WISP_LOAD_TIMEOUT" envDefault:"0s"`
	Concurrency int           `env:"WISP_LOAD_CONCURRENCY" envDefault:"4"`
}

// Load reads the environment, then lets flags in args override it.
func Load(name string, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug mode (asset hot reload when -assets is set)")
	fs.BoolVar(&cfg.BaseMonitor, "m", cfg.BaseMonitor, "use base monitor instead of primary (for multi-monitor setups)")
	fs.StringVar(&cfg.AssetDir, "assets", cfg.AssetDir, "load assets from this directory instead of the embedded set")
	fs.StringVar(&cfg.Manifest, "manifest", cfg.Manifest, "asset manifest name inside the asset set")
	fs.Float64Var(&cfg.Volume, "volume", cfg.Volume, "initial master volume in [0,1]")
	fs.DurationVar(&cfg.LoadTimeout, "load-timeout", cfg.LoadTimeout, "give up on pending asset loads after this long (0 waits forever)")
	fs.IntVar(&cfg.Concurrency, "j", cfg.Concurrency, "number of assets decoded in parallel")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Volume < 0 || c.Volume > 1 {
		errs = append(errs, fmt.Errorf("volume %v outside [0,1]", c.Volume))
	}
	if c.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("load concurrency must be positive, got %d", c.Concurrency))
	}
	if c.LoadTimeout < 0 {
		errs = append(errs, fmt.Errorf("load timeout must not be negative, got %s", c.LoadTimeout))
	}
	if c.Manifest == "" {
		errs = append(errs, errors.New("manifest name is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
