package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hammamikhairi/magicbakery/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Seed != 12345 || cfg.MaxRounds != 20 || cfg.GarnishBonus != 2 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if strings.Join(cfg.Players, ",") != "A,B" {
		t.Fatalf("expected players A,B, got %v", cfg.Players)
	}
	if cfg.IngredientsFile != "" || cfg.LogFile == "" {
		t.Fatalf("unexpected file defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BAKERY_SEED", "99")
	t.Setenv("BAKERY_PLAYERS", " Ann, Bo ,,Cy")
	t.Setenv("BAKERY_MAX_ROUNDS", "5")
	t.Setenv("BAKERY_LAYERS_FILE", "layers.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Seed != 99 || cfg.MaxRounds != 5 || cfg.LayersFile != "layers.csv" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if strings.Join(cfg.Players, "|") != "Ann|Bo|Cy" {
		t.Fatalf("expected trimmed players, got %q", cfg.Players)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bakery.env")
	if err := os.WriteFile(path, []byte("BAKERY_GARNISH_BONUS=4\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("BAKERY_GARNISH_BONUS", "")
	os.Unsetenv("BAKERY_GARNISH_BONUS")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GarnishBonus != 4 {
		t.Fatalf("expected garnish bonus from file, got %d", cfg.GarnishBonus)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected an error for a missing env file")
	}
}

func TestLoadBadValue(t *testing.T) {
	t.Setenv("BAKERY_SEED", "not-a-number")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := Config{Players: []string{"A", "B"}, MaxRounds: 20, GarnishBonus: 2}

	tests := []struct {
		name       string
		edit       func(*Config)
		wantErr    bool
		wantPlayer bool
	}{
		{"valid", func(c *Config) {}, false, false},
		{"one player", func(c *Config) { c.Players = []string{"A"} }, true, true},
		{"six players", func(c *Config) { c.Players = []string{"A", "B", "C", "D", "E", "F"} }, true, true},
		{"duplicate", func(c *Config) { c.Players = []string{"Ann", "ANN"} }, true, true},
		{"zero rounds", func(c *Config) { c.MaxRounds = 0 }, true, false},
		{"negative bonus", func(c *Config) { c.GarnishBonus = -1 }, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.Players = append([]string(nil), base.Players...)
			tt.edit(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
			if errors.Is(err, domain.ErrInvalidPlayers) != tt.wantPlayer {
				t.Fatalf("ErrInvalidPlayers match=%v, want %v (%v)", !tt.wantPlayer, tt.wantPlayer, err)
			}
		})
	}
}
