// Package config loads the game settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Frontends.
const (
	FrontendWindow = "window"
	FrontendEbiten = "ebiten"
)

// Config holds the runtime settings.
type Config struct {
	CameraID      int     `env:"BANANARUSH_CAMERA_ID" envDefault:"0"`
	Frontend      string  `env:"BANANARUSH_FRONTEND" envDefault:"window"`
	Seed          uint64  `env:"BANANARUSH_SEED" envDefault:"0"`
	MinConfidence float64 `env:"BANANARUSH_MIN_CONFIDENCE" envDefault:"0.7"`
	// HTTPAddr enables the spectator server when set.
	HTTPAddr string `env:"BANANARUSH_HTTP_ADDR"`
	// Tray is only available with FrontendWindow.
	Tray   bool `env:"BANANARUSH_TRAY" envDefault:"false"`
	Sound  bool `env:"BANANARUSH_SOUND" envDefault:"true"`
	Mirror bool `env:"BANANARUSH_MIRROR" envDefault:"true"`
}

// Load reads the optional dotenv files (".env" when none are given), then
// parses and validates the environment. Variables already set in the
// environment win over dotenv values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
		log.Printf("Loaded environment from %s", f)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges that the env tags cannot express.
func (c Config) Validate() error {
	switch c.Frontend {
	case FrontendWindow, FrontendEbiten:
	default:
		return fmt.Errorf("invalid frontend %q: want %q or %q", c.Frontend, FrontendWindow, FrontendEbiten)
	}
	if c.MinConfidence <= 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min confidence %v out of range (0, 1]", c.MinConfidence)
	}
	if c.CameraID < 0 {
		return fmt.Errorf("invalid camera id %d", c.CameraID)
	}
	// The tray's events are pumped by the highgui window loop.
	if c.Tray && c.Frontend != FrontendWindow {
		return fmt.Errorf("tray needs the %q frontend, got %q", FrontendWindow, c.Frontend)
	}
	return nil
}
