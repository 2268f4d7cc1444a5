// Package config loads wavesim settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable of the application. Command-line flags override
// values loaded from the environment.
type Config struct {
	Width        int     `env:"WAVESIM_WIDTH" envDefault:"800"`
	Height       int     `env:"WAVESIM_HEIGHT" envDefault:"1200"`
	WindowScale  float64 `env:"WAVESIM_WINDOW_SCALE" envDefault:"0.6"`
	TPS          int     `env:"WAVESIM_TPS" envDefault:"20"`
	StepsPerTick int     `env:"WAVESIM_STEPS_PER_TICK" envDefault:"1"`

	Dt              float64 `env:"WAVESIM_DT" envDefault:"1"`
	BorderThickness int     `env:"WAVESIM_BORDER" envDefault:"32"`
	SourceOpacity   float64 `env:"WAVESIM_SOURCE_OPACITY" envDefault:"0.9"`
	GlobalDampening float64 `env:"WAVESIM_GLOBAL_DAMPENING" envDefault:"1"`
	ChurnPeriod     float64 `env:"WAVESIM_CHURN_PERIOD" envDefault:"10"`

	Sources         int     `env:"WAVESIM_SOURCES" envDefault:"1500"`
	SourceAmplitude float64 `env:"WAVESIM_SOURCE_AMPLITUDE" envDefault:"100"`
	SourcePeriod    float64 `env:"WAVESIM_SOURCE_PERIOD" envDefault:"30"`
	Seed            int64   `env:"WAVESIM_SEED" envDefault:"0"`

	Backend string `env:"WAVESIM_BACKEND" envDefault:"direct"`
	Workers int    `env:"WAVESIM_WORKERS" envDefault:"0"`

	Headless   bool   `env:"WAVESIM_HEADLESS" envDefault:"false"`
	Frames     int    `env:"WAVESIM_FRAMES" envDefault:"300"`
	RecordPath string `env:"WAVESIM_RECORD"`
	PlotPath   string `env:"WAVESIM_PLOT"`
	FrameRate  int    `env:"WAVESIM_FRAME_RATE" envDefault:"20"`

	CPUProfile  string `env:"WAVESIM_CPUPROFILE"`
	EnableAudio bool   `env:"WAVESIM_AUDIO" envDefault:"false"`
	Debug       bool   `env:"WAVESIM_DEBUG" envDefault:"false"`
}

// Load parses and validates the process environment.
func Load() (Config, error) {
	cfg, err := Parse()
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Parse reads the process environment without validating it, for callers
// that layer further overrides before calling Validate.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadFrom parses a supplied environment map instead of the process one.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the simulator cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("grid size %dx%d must be positive", c.Width, c.Height)
	case c.Dt <= 0:
		return fmt.Errorf("dt %v must be positive", c.Dt)
	case c.SourceOpacity < 0 || c.SourceOpacity > 1:
		return fmt.Errorf("source opacity %v outside [0, 1]", c.SourceOpacity)
	case c.TPS <= 0:
		return fmt.Errorf("tps %d must be positive", c.TPS)
	case c.StepsPerTick <= 0:
		return fmt.Errorf("steps per tick %d must be positive", c.StepsPerTick)
	case c.Sources < 0:
		return fmt.Errorf("source count %d must not be negative", c.Sources)
	case c.SourcePeriod <= 0:
		return fmt.Errorf("source period %v must be positive", c.SourcePeriod)
	case c.Headless && c.Frames <= 0:
		return fmt.Errorf("headless frame count %d must be positive", c.Frames)
	case c.FrameRate <= 0:
		return fmt.Errorf("frame rate %d must be positive", c.FrameRate)
	}
	return nil
}

// SeedRadius is the radius of the initial source disk, (w+h)/10.
func (c Config) SeedRadius() float64 {
	return float64((c.Width + c.Height) / 10)
}
