package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) validate() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render dimensions must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.Samples <= 0 {
		return fmt.Errorf("samples must be positive, got %d", c.Render.Samples)
	}
	if c.Scene.IOR <= 0 {
		return fmt.Errorf("scene ior must be positive, got %g", c.Scene.IOR)
	}
	if c.Scene.Thickness < 0 {
		return fmt.Errorf("scene thickness must be non-negative, got %g", c.Scene.Thickness)
	}
	for _, a := range c.Scene.SigmaA {
		if a < 0 {
			return fmt.Errorf("sigma_a components must be non-negative")
		}
	}
	switch c.Render.Format {
	case "png", "webp":
	default:
		return fmt.Errorf("unsupported output format %q", c.Render.Format)
	}
	return nil
}
