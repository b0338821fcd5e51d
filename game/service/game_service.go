package service

import (
	"context"
)

// GameService defines all game-related operations exposed to transports.
type GameService interface {
	// Game lifecycle
	CreateGame(ctx context.Context) (*GameInfo, error)
	GetGame(ctx context.Context, gameID string) (*GameInfo, error)
	ListGames(ctx context.Context) ([]*GameInfo, error)
	DeleteGame(ctx context.Context, gameID string) error

	// BroadcastStatus pushes a fresh snapshot to every player of an
	// in-progress game. Returns ErrGameNotInProgress otherwise.
	BroadcastStatus(ctx context.Context, gameID string) error

	// Stats returns aggregate counts across all games.
	Stats(ctx context.Context) (*Stats, error)
}
