// Package config loads session settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/hammamikhairi/magicbakery/internal/domain"
)

// Config holds everything needed to set up a session.
type Config struct {
	Seed            int64    `env:"BAKERY_SEED" envDefault:"12345"`
	Players         []string `env:"BAKERY_PLAYERS" envDefault:"A,B" envSeparator:","`
	MaxRounds       int      `env:"BAKERY_MAX_ROUNDS" envDefault:"20"`
	GarnishBonus    int      `env:"BAKERY_GARNISH_BONUS" envDefault:"2"`
	IngredientsFile string   `env:"BAKERY_INGREDIENTS_FILE"`
	LayersFile      string   `env:"BAKERY_LAYERS_FILE"`
	CustomersFile   string   `env:"BAKERY_CUSTOMERS_FILE"`
	LogFile         string   `env:"BAKERY_LOG_FILE" envDefault:".bakery-logs/bakery.log"`
}

// Load reads the given env files, then parses the environment. Variables
// already set win over file values. With no files, ./.env is read if it
// exists.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Players = ParsePlayers(strings.Join(cfg.Players, ","))
	return cfg, nil
}

// ParsePlayers splits a comma separated list of names, dropping blanks.
func ParsePlayers(list string) []string {
	var out []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Validate checks the settings a session cannot start without.
func (c Config) Validate() error {
	var errs []error
	if n := len(c.Players); n < 2 || n > 5 {
		errs = append(errs, fmt.Errorf("%d players, want 2 to 5: %w", n, domain.ErrInvalidPlayers))
	}
	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		key := domain.Fold(p)
		if seen[key] {
			errs = append(errs, fmt.Errorf("duplicate player %q: %w", p, domain.ErrInvalidPlayers))
		}
		seen[key] = true
	}
	if c.MaxRounds <= 0 {
		errs = append(errs, fmt.Errorf("max rounds must be positive, got %d", c.MaxRounds))
	}
	if c.GarnishBonus < 0 {
		errs = append(errs, fmt.Errorf("garnish bonus must not be negative, got %d", c.GarnishBonus))
	}
	return errors.Join(errs...)
}
