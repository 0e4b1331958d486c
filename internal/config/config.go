// Package config loads and saves sketch configuration as YAML: which
// sketch to run, host settings, and one flat option map per simulator
// that is applied through each sketch's SetParam surface.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sketchlab/internal/sketch"
)

const (
	DefaultFPS    = 60
	DefaultSketch = "waves"
	DefaultSystem = "lorenz"
)

type Config struct {
	Sketch  string `yaml:"sketch"`
	System  string `yaml:"system"` // attractor only: lorenz or rossler
	Quality string `yaml:"quality"`
	FPS     int    `yaml:"fps"`
	Seed    int64  `yaml:"seed"`

	Waves     map[string]float64 `yaml:"waves"`
	Attractor map[string]float64 `yaml:"attractor"`
	Field     map[string]float64 `yaml:"field"`
}

func DefaultConfig() *Config {
	return &Config{
		Sketch:  DefaultSketch,
		System:  DefaultSystem,
		Quality: "full",
		FPS:     DefaultFPS,
		Seed:    1,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// QualityMode maps the config string onto a sketch quality, defaulting
// to full.
func (c *Config) QualityMode() sketch.Quality {
	if c.Quality == "preview" {
		return sketch.Preview
	}
	return sketch.Full
}

// OptionsFor returns the option map for the named sketch, or nil.
func (c *Config) OptionsFor(name string) map[string]float64 {
	switch name {
	case "waves":
		return c.Waves
	case "attractor":
		return c.Attractor
	case "field":
		return c.Field
	}
	return nil
}
