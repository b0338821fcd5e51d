package service

import (
	"time"

	"github.com/wricardo/mcp-training/unogame/game/engine"
)

// GameInfo is the read-only view of a game exposed over the REST and MCP
// surfaces. Hands are deliberately absent; per-player state only travels
// over each player's own websocket.
type GameInfo struct {
	ID          string        `json:"id"`
	Status      engine.Status `json:"status"`
	PlayerCount int           `json:"player_count"`
	Players     []string      `json:"players"`
	Host        string        `json:"host,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Stats summarizes the server's live games.
type Stats struct {
	Games           int `json:"games"`
	Players         int `json:"players"`
	GamesInProgress int `json:"games_in_progress"`
	GamesWaiting    int `json:"games_waiting"`
	GamesFinished   int `json:"games_finished"`
}
