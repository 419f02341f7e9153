// Package config reads game settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings cmd/tuxtown starts the game with.
type Config struct {
	ScreenWidth  int     `env:"TUXTOWN_SCREEN_WIDTH"  envDefault:"800"`
	ScreenHeight int     `env:"TUXTOWN_SCREEN_HEIGHT" envDefault:"600"`
	Title        string  `env:"TUXTOWN_TITLE"         envDefault:"Tuxtown"`
	PlayerSpeed  float64 `env:"TUXTOWN_PLAYER_SPEED"  envDefault:"150"`
	Map          string  `env:"TUXTOWN_MAP"           envDefault:"town.json"`
	AssetsDir    string  `env:"TUXTOWN_ASSETS_DIR"    envDefault:"assets"`
	TPS          int     `env:"TUXTOWN_TPS"           envDefault:"60"`
	Telemetry    bool    `env:"TUXTOWN_TELEMETRY"     envDefault:"false"`
}

// Load parses the environment and validates the result.
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

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("invalid screen size %dx%d", c.ScreenWidth, c.ScreenHeight)
	}
	if c.PlayerSpeed <= 0 {
		return fmt.Errorf("player speed must be positive, got %v", c.PlayerSpeed)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	}
	if c.Map == "" {
		return fmt.Errorf("map is required")
	}
	return nil
}
