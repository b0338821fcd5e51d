package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/wricardo/mcp-training/unogame/game/engine"
)

// ErrInvalidConfig is returned when a rules file fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Rules holds the tunable game parameters. The zero value is not usable;
// start from Default.
type Rules struct {
	// MinPlayers is the roster size required before the host may start.
	MinPlayers int `json:"min_players"`

	// MaxPlayers is the join-gate capacity of a single game.
	MaxPlayers int `json:"max_players"`

	// HandSize is the number of cards dealt to each player at start.
	HandSize int `json:"hand_size"`

	// PingIntervalSeconds is how often each connection is sent a keep-alive.
	PingIntervalSeconds int `json:"ping_interval_seconds"`

	// SweepIntervalSeconds is how often abandoned games are collected.
	SweepIntervalSeconds int `json:"sweep_interval_seconds"`
}

// Default returns the classic rule set.
func Default() Rules {
	return Rules{
		MinPlayers:           2,
		MaxPlayers:           4,
		HandSize:             7,
		PingIntervalSeconds:  5,
		SweepIntervalSeconds: 10,
	}
}

// Load reads a rules file, applying defaults for omitted fields. An empty
// path returns the defaults.
func Load(path string) (Rules, error) {
	rules := Default()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	if err := json.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// Validate checks the rules for internal consistency.
func (r Rules) Validate() error {
	if r.MinPlayers < 2 {
		return fmt.Errorf("%w: min_players must be at least 2, got %d", ErrInvalidConfig, r.MinPlayers)
	}
	if r.MaxPlayers < r.MinPlayers {
		return fmt.Errorf("%w: max_players %d is below min_players %d", ErrInvalidConfig, r.MaxPlayers, r.MinPlayers)
	}
	if r.HandSize < 1 {
		return fmt.Errorf("%w: hand_size must be positive, got %d", ErrInvalidConfig, r.HandSize)
	}
	// Every player gets a full hand plus one card to seed the discard pile.
	if r.MaxPlayers*r.HandSize+1 > engine.DeckSize {
		return fmt.Errorf("%w: %d players with %d cards each cannot be dealt from a %d-card deck",
			ErrInvalidConfig, r.MaxPlayers, r.HandSize, engine.DeckSize)
	}
	if r.PingIntervalSeconds < 1 {
		return fmt.Errorf("%w: ping_interval_seconds must be positive, got %d", ErrInvalidConfig, r.PingIntervalSeconds)
	}
	if r.SweepIntervalSeconds < 1 {
		return fmt.Errorf("%w: sweep_interval_seconds must be positive, got %d", ErrInvalidConfig, r.SweepIntervalSeconds)
	}
	return nil
}

// PingInterval returns the keep-alive period as a duration.
func (r Rules) PingInterval() time.Duration {
	return time.Duration(r.PingIntervalSeconds) * time.Second
}

// SweepInterval returns the abandoned-game sweep period as a duration.
func (r Rules) SweepInterval() time.Duration {
	return time.Duration(r.SweepIntervalSeconds) * time.Second
}
