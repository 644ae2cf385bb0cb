package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config is the TOML configuration of the voxemit command. Every field can be
// overridden from the environment.
type Config struct {
	Logging    LogConfig        `toml:"logging"`
	Repository RepositoryConfig `toml:"repository"`
	Emitter    EmitterConfig    `toml:"emitter"`
	Render     RenderConfig     `toml:"render"`
}

// LogConfig selects the log destination. An empty Logfile logs to stderr.
type LogConfig struct {
	Logfile string `toml:"logfile" env:"VOXEMIT_LOGFILE"`
	MaxSize int    `toml:"max_log_size" env:"VOXEMIT_MAX_LOG_SIZE"` // megabytes
	MaxAge  int    `toml:"max_log_age" env:"VOXEMIT_MAX_LOG_AGE"`   // days
	Debug   bool   `toml:"debug" env:"VOXEMIT_DEBUG"`
}

// RepositoryConfig locates the emitter repository.
type RepositoryConfig struct {
	Root string `toml:"root" env:"VOXEMIT_REPOSITORY"`
}

// EmitterConfig names the emitter to render and its traversal settings.
type EmitterConfig struct {
	Group      string  `toml:"group" env:"VOXEMIT_GROUP"`
	Name       string  `toml:"name" env:"VOXEMIT_NAME"`
	Step       float64 `toml:"step" env:"VOXEMIT_STEP"` // 0 selects the grid default
	MinSamples int     `toml:"min_samples" env:"VOXEMIT_MIN_SAMPLES"`
	LoadCache  bool    `toml:"load_cache" env:"VOXEMIT_LOAD_CACHE"`
	SaveCache  bool    `toml:"save_cache" env:"VOXEMIT_SAVE_CACHE"`
}

// RenderConfig describes the batch of random chords to render.
type RenderConfig struct {
	MinWavelength float64 `toml:"min_wavelength" env:"VOXEMIT_MIN_WAVELENGTH"`
	MaxWavelength float64 `toml:"max_wavelength" env:"VOXEMIT_MAX_WAVELENGTH"`
	Bins          int     `toml:"bins" env:"VOXEMIT_BINS"`
	Rays          int     `toml:"rays" env:"VOXEMIT_RAYS"`
	Workers       int     `toml:"workers" env:"VOXEMIT_WORKERS"`
	Seed          int64   `toml:"seed" env:"VOXEMIT_SEED"`
}

// defaultConfig holds the values used when neither the file nor the
// environment sets them.
func defaultConfig() Config {
	return Config{
		Logging:    LogConfig{MaxSize: 100, MaxAge: 28},
		Repository: RepositoryConfig{Root: "."},
		Emitter:    EmitterConfig{MinSamples: 2},
		Render:     RenderConfig{Bins: 40, Rays: 1000, Workers: 4, Seed: 1},
	}
}

// LoadConfig reads filename (optional), applies environment overrides, makes
// relative paths absolute against the file's directory and validates.
func LoadConfig(filename string) (*Config, error) {
	c := defaultConfig()
	if filename != "" {
		if _, err := toml.DecodeFile(filename, &c); err != nil {
			return nil, fmt.Errorf("could not decode TOML config: %w", err)
		}
	}
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if filename != "" {
		dir := filepath.Dir(filename)
		c.Repository.Root = absolute(c.Repository.Root, dir)
		if c.Logging.Logfile != "" {
			c.Logging.Logfile = absolute(c.Logging.Logfile, dir)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func absolute(path, dir string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}

// Validate checks the settings the engine does not check itself.
func (c *Config) Validate() error {
	var errs []error
	if c.Emitter.Group == "" || c.Emitter.Name == "" {
		errs = append(errs, errors.New("[emitter] group and name are required"))
	}
	if c.Emitter.MinSamples < 2 {
		errs = append(errs, fmt.Errorf("[emitter] min_samples %d must be >= 2", c.Emitter.MinSamples))
	}
	if c.Emitter.Step < 0 {
		errs = append(errs, fmt.Errorf("[emitter] step %g must be >= 0", c.Emitter.Step))
	}
	if !(c.Render.MinWavelength >= 0 && c.Render.MinWavelength < c.Render.MaxWavelength) {
		errs = append(errs, fmt.Errorf("[render] window [%g, %g) is empty", c.Render.MinWavelength, c.Render.MaxWavelength))
	}
	if c.Render.Bins <= 0 || c.Render.Rays < 0 || c.Render.Workers <= 0 {
		errs = append(errs, errors.New("[render] bins and workers must be > 0, rays >= 0"))
	}

	return errors.Join(errs...)
}
