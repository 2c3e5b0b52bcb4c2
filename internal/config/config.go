package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTitle   = "Pendulum"
	DefaultWidth   = 800
	DefaultHeight  = 480
	DefaultFPS     = 60
	DefaultBackend = "window"
	DefaultPreset  = "classic"
)

var (
	ErrNoPendulums = errors.New("config: at least one pendulum is required")
	ErrArmLength   = errors.New("config: pendulum length must be positive")
	ErrWindowSize  = errors.New("config: window dimensions must be positive")
	ErrFPS         = errors.New("config: fps must be positive")
)

type Config struct {
	Title     string           `yaml:"title"`
	Width     int              `yaml:"width"`
	Height    int              `yaml:"height"`
	FPS       int              `yaml:"fps"`
	Backend   string           `yaml:"backend"`
	Pendulums []PendulumConfig `yaml:"pendulums"`
}

type PendulumConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Length float64 `yaml:"length"`
}

func DefaultConfig() *Config {
	return &Config{
		Title:   DefaultTitle,
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		FPS:     DefaultFPS,
		Backend: DefaultBackend,
		Pendulums: []PendulumConfig{
			{X: 400, Y: 0, Length: 200},
			{X: 400, Y: 0, Length: 400},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Validate checks user-supplied configuration. The physics itself accepts
// any length; this only keeps bad files from reaching it.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrWindowSize, c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: %d", ErrFPS, c.FPS)
	}
	if len(c.Pendulums) == 0 {
		return ErrNoPendulums
	}
	for i, p := range c.Pendulums {
		if p.Length <= 0 {
			return fmt.Errorf("%w: pendulum %d has length %g", ErrArmLength, i, p.Length)
		}
	}
	return nil
}

func (c *Config) Clone() *Config {
	out := *c
	out.Pendulums = append([]PendulumConfig(nil), c.Pendulums...)
	return &out
}
