package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	rules := Default()

	if rules.MinPlayers != 2 {
		t.Errorf("Expected min_players 2, got %d", rules.MinPlayers)
	}
	if rules.MaxPlayers != 4 {
		t.Errorf("Expected max_players 4, got %d", rules.MaxPlayers)
	}
	if rules.HandSize != 7 {
		t.Errorf("Expected hand_size 7, got %d", rules.HandSize)
	}
	if err := rules.Validate(); err != nil {
		t.Errorf("Expected default rules to validate, got %v", err)
	}
	if rules.PingInterval() != 5*time.Second {
		t.Errorf("Expected 5s ping interval, got %s", rules.PingInterval())
	}
	if rules.SweepInterval() != 10*time.Second {
		t.Errorf("Expected 10s sweep interval, got %s", rules.SweepInterval())
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	rules, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if rules != Default() {
		t.Errorf("Expected defaults, got %+v", rules)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(`{"max_players":3,"hand_size":5}`), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if rules.MaxPlayers != 3 {
		t.Errorf("Expected max_players 3, got %d", rules.MaxPlayers)
	}
	if rules.HandSize != 5 {
		t.Errorf("Expected hand_size 5, got %d", rules.HandSize)
	}
	// Omitted fields keep their defaults.
	if rules.MinPlayers != 2 {
		t.Errorf("Expected min_players 2, got %d", rules.MinPlayers)
	}
}

func TestValidateRejectsBadRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rules)
	}{
		{"min players below 2", func(r *Rules) { r.MinPlayers = 1 }},
		{"max below min", func(r *Rules) { r.MaxPlayers = 1 }},
		{"zero hand size", func(r *Rules) { r.HandSize = 0 }},
		{"deal exceeds deck", func(r *Rules) { r.HandSize = 20 }},
		{"zero ping interval", func(r *Rules) { r.PingIntervalSeconds = 0 }},
		{"zero sweep interval", func(r *Rules) { r.SweepIntervalSeconds = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := Default()
			tt.mutate(&rules)
			if err := rules.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Expected error for missing rules file")
	}
}
