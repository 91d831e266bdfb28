package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tim-timman/git-tools/internal/discover"
	"github.com/tim-timman/git-tools/internal/format"
)

// DiscoverConfig holds repository discovery defaults.
type DiscoverConfig struct {
	Depth   int      `toml:"depth"`
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// DispatchConfig holds dispatch defaults.
type DispatchConfig struct {
	Jobs int `toml:"jobs"`
}

// OutputConfig holds output defaults.
type OutputConfig struct {
	// Prefix overrides the sub-mode's default prefix policy when set.
	Prefix string `toml:"prefix"`
	// Color is auto, always or never.
	Color string `toml:"color"`
}

// Config holds the git-r configuration.
type Config struct {
	Discover DiscoverConfig `toml:"discover"`
	Dispatch DispatchConfig `toml:"dispatch"`
	Output   OutputConfig   `toml:"output"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Discover: DiscoverConfig{Depth: discover.DefaultMaxDepth},
		Dispatch: DispatchConfig{Jobs: 1},
		Output:   OutputConfig{Color: "auto"},
	}
}

// configPath returns the path to the config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "git-r", "config.toml"), nil
}

// Load reads the config file, falling back to defaults when it is absent.
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), fmt.Errorf("locate config: %w", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file at an explicit path. A missing file returns
// the defaults without error; a malformed or invalid file returns the
// defaults along with the error so the caller can warn and continue.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Discover.Depth < 0 {
		return fmt.Errorf("discover.depth must be >= 0, got %d", c.Discover.Depth)
	}
	if c.Dispatch.Jobs < 1 {
		return fmt.Errorf("dispatch.jobs must be >= 1, got %d", c.Dispatch.Jobs)
	}
	if _, err := format.ParsePolicy(c.Output.Prefix); err != nil {
		return err
	}
	switch c.Output.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("invalid output.color %q (want auto, always or never)", c.Output.Color)
	}
	return nil
}
