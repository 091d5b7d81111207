package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default locations used when nothing else is supplied.
const (
	DefaultInput     = "icon-source.png"
	DefaultOutputDir = "icons"
)

// Size limits for generated files.
const (
	MaxPNGSize = 4096
	MaxICOSize = 256
)

// Config describes one icon preparation run
type Config struct {
	Input     string      `yaml:"input"`
	OutputDir string      `yaml:"output_dir"`
	PNG       []PNGTarget `yaml:"png"`
	Icon      IconConfig  `yaml:"icon"`
}

// PNGTarget is one square PNG output
type PNGTarget struct {
	Name string `yaml:"name"`
	Size int    `yaml:"size"`
}

// IconConfig is the multi-resolution ICO output
type IconConfig struct {
	Name  string `yaml:"name"`
	Sizes []int  `yaml:"sizes"`
}

// Default returns the standard desktop app icon set.
func Default() *Config {
	return &Config{
		Input:     DefaultInput,
		OutputDir: DefaultOutputDir,
		PNG: []PNGTarget{
			{Name: "icon.png", Size: 512},
			{Name: "128x128.png", Size: 128},
			{Name: "128x128@2x.png", Size: 256},
			{Name: "32x32.png", Size: 32},
		},
		Icon: IconConfig{
			Name:  "icon.ico",
			Sizes: []int{16, 32, 48, 64, 128, 256},
		},
	}
}

// Load reads a YAML file on top of Default. Keys missing from the file keep
// their default values; a png or icon.sizes list replaces the default list.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks paths, file names and sizes
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if len(c.PNG) == 0 && c.Icon.Name == "" {
		return fmt.Errorf("no outputs configured")
	}

	seen := make(map[string]bool)
	for i, t := range c.PNG {
		if err := checkName(t.Name, seen); err != nil {
			return fmt.Errorf("png[%d]: %w", i, err)
		}
		if t.Size < 1 || t.Size > MaxPNGSize {
			return fmt.Errorf("png[%d]: size %d out of range 1-%d", i, t.Size, MaxPNGSize)
		}
	}

	if c.Icon.Name == "" {
		return nil
	}
	if err := checkName(c.Icon.Name, seen); err != nil {
		return fmt.Errorf("icon: %w", err)
	}
	if len(c.Icon.Sizes) == 0 {
		return fmt.Errorf("icon.sizes is required")
	}
	sizes := make(map[int]bool)
	for _, s := range c.Icon.Sizes {
		if s < 1 || s > MaxICOSize {
			return fmt.Errorf("icon: size %d out of range 1-%d", s, MaxICOSize)
		}
		if sizes[s] {
			return fmt.Errorf("icon: duplicate size %d", s)
		}
		sizes[s] = true
	}

	return nil
}

// checkName rejects empty, duplicate and path-like output names.
func checkName(name string, seen map[string]bool) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("name %q must be a plain file name", name)
	}
	if seen[name] {
		return fmt.Errorf("duplicate output name %q", name)
	}
	seen[name] = true
	return nil
}
