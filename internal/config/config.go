package config

import (
	"fmt"

	"arplace/internal/hittest"
	"arplace/internal/perception"

	"github.com/caarlos0/env/v11"
)

// Config is read from ARPLACE_* environment variables.
type Config struct {
	FixturePath     string                  `env:"ARPLACE_FIXTURE" envDefault:"assets/fixtures/room.json"`
	LayoutPath      string                  `env:"ARPLACE_LAYOUT" envDefault:"layout.json"`
	HeightTolerance float32                 `env:"ARPLACE_HEIGHT_TOLERANCE" envDefault:"0.05"`
	InfinitePlane   bool                    `env:"ARPLACE_INFINITE_PLANE" envDefault:"true"`
	Alignments      perception.AlignmentSet `env:"ARPLACE_ALIGNMENTS" envDefault:"horizontal,vertical"`
	WindowWidth     int32                   `env:"ARPLACE_WINDOW_WIDTH" envDefault:"1280"`
	WindowHeight    int32                   `env:"ARPLACE_WINDOW_HEIGHT" envDefault:"720"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.HeightTolerance < 0 {
		return fmt.Errorf("ARPLACE_HEIGHT_TOLERANCE must not be negative, got %g", c.HeightTolerance)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight)
	}
	return nil
}

// HitOptions turns the placement settings into picker options.
func (c Config) HitOptions() hittest.Options {
	return hittest.Options{
		InfinitePlane: c.InfinitePlane,
		Allowed:       c.Alignments,
	}
}
