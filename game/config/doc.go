// Package config provides the game rules configuration for the Uno Card
// Game Server.
//
// Rules captures the knobs that shape a session: player limits, hand size,
// and the keep-alive and sweep intervals. Defaults match the classic setup
// (2-4 players, 7 cards each). A JSON file can override them via Load,
// which validates the result against the fixed 76-card deck.
package config
