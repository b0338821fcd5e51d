package session

import (
	"github.com/google/uuid"

	"github.com/wricardo/mcp-training/unogame/game/engine"
)

// Sender delivers outbound messages to one connected player. Implementations
// must be safe to call from any goroutine and must never block the caller
// indefinitely; Close must be idempotent.
type Sender interface {
	Send(msg any) error
	Close()
}

// Player is one connected participant of a session. The hand is owned by the
// session and only mutated under the session lock.
type Player struct {
	ID   string
	Name string
	Hand []engine.Card

	sender Sender
}

// NewPlayer creates a player with a fresh opaque ID.
func NewPlayer(name string, sender Sender) *Player {
	return &Player{
		ID:     uuid.NewString(),
		Name:   name,
		Hand:   []engine.Card{},
		sender: sender,
	}
}
