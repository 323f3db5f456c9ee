// Package config loads and saves the session configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/svrgn-eu/BallDragDrop-sub004/internal/physics"
)

const (
	DefaultWidth     = 800.0
	DefaultHeight    = 600.0
	DefaultRadius    = 25.0
	DefaultCadenceHz = 60
)

type Config struct {
	Physics   PhysicsConfig `yaml:"physics"`
	Ball      BallConfig    `yaml:"ball"`
	Area      AreaConfig    `yaml:"area"`
	CadenceHz int           `yaml:"cadence_hz"`
	// MaxEpisode force-ends a throw that never settles; 0 disables.
	MaxEpisode time.Duration `yaml:"max_episode"`
}

type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`
	Friction      float64 `yaml:"friction"`
	Bounce        float64 `yaml:"bounce"`
	RestThreshold float64 `yaml:"rest_threshold"`
}

type BallConfig struct {
	Radius float64 `yaml:"radius"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

type AreaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func DefaultConfig() *Config {
	p := physics.DefaultConfig()
	return &Config{
		Physics: PhysicsConfig{
			Gravity:       p.Gravity,
			Friction:      p.Friction,
			Bounce:        p.Bounce,
			RestThreshold: p.RestThreshold,
		},
		Ball: BallConfig{
			Radius: DefaultRadius,
			X:      DefaultWidth / 2,
			Y:      DefaultHeight / 2,
		},
		Area: AreaConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		CadenceHz: DefaultCadenceHz,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
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

// Validate checks everything the physics package does not already own.
func (c *Config) Validate() error {
	if err := c.PhysicsConfig().Validate(); err != nil {
		return err
	}
	if c.Ball.Radius <= 0 {
		return fmt.Errorf("config: ball radius must be positive, got %f", c.Ball.Radius)
	}
	if c.Area.Width <= 0 || c.Area.Height <= 0 {
		return fmt.Errorf("config: area %.0fx%.0f must be positive", c.Area.Width, c.Area.Height)
	}
	if c.CadenceHz <= 0 {
		return fmt.Errorf("config: cadence must be positive, got %d", c.CadenceHz)
	}
	if c.MaxEpisode < 0 {
		return fmt.Errorf("config: max_episode must not be negative, got %s", c.MaxEpisode)
	}
	return nil
}

// PhysicsConfig converts to the integrator's config type.
func (c *Config) PhysicsConfig() physics.Config {
	return physics.Config{
		Gravity:       c.Physics.Gravity,
		Friction:      c.Physics.Friction,
		Bounce:        c.Physics.Bounce,
		RestThreshold: c.Physics.RestThreshold,
	}
}

// Interval returns the physics cadence as a duration.
func (c *Config) Interval() time.Duration {
	return time.Second / time.Duration(c.CadenceHz)
}
