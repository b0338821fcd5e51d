package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/wricardo/mcp-training/unogame/game/engine"
	"github.com/wricardo/mcp-training/unogame/game/session"
)

// ErrGameNotInProgress is returned by BroadcastStatus for games that have
// not started or have already finished.
var ErrGameNotInProgress = errors.New("game is not in progress")

// gameService implements GameService on top of the session registry.
type gameService struct {
	manager *session.Manager
	log     *zap.Logger
}

// NewGameService creates the service layer over the given registry.
func NewGameService(manager *session.Manager, log *zap.Logger) GameService {
	return &gameService{
		manager: manager,
		log:     log,
	}
}

func (g *gameService) CreateGame(ctx context.Context) (*GameInfo, error) {
	s := g.manager.Create()
	return infoFor(s), nil
}

func (g *gameService) GetGame(ctx context.Context, gameID string) (*GameInfo, error) {
	s, err := g.manager.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("get game %s: %w", gameID, err)
	}
	return infoFor(s), nil
}

func (g *gameService) ListGames(ctx context.Context) ([]*GameInfo, error) {
	sessions := g.manager.List()

	infos := make([]*GameInfo, 0, len(sessions))
	for _, s := range sessions {
		infos = append(infos, infoFor(s))
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})
	return infos, nil
}

func (g *gameService) DeleteGame(ctx context.Context, gameID string) error {
	if err := g.manager.Delete(gameID); err != nil {
		return fmt.Errorf("delete game %s: %w", gameID, err)
	}
	g.log.Info("deleted game", zap.String("game", gameID))
	return nil
}

func (g *gameService) BroadcastStatus(ctx context.Context, gameID string) error {
	s, err := g.manager.Get(gameID)
	if err != nil {
		return fmt.Errorf("broadcast status for %s: %w", gameID, err)
	}
	if s.Status() != engine.StatusInProgress {
		return fmt.Errorf("broadcast status for %s: %w", gameID, ErrGameNotInProgress)
	}
	s.BroadcastStatus()
	return nil
}

func (g *gameService) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	for _, s := range g.manager.List() {
		stats.Games++
		stats.Players += s.PlayerCount()
		switch s.Status() {
		case engine.StatusWaitingForPlayers:
			stats.GamesWaiting++
		case engine.StatusInProgress:
			stats.GamesInProgress++
		case engine.StatusFinished:
			stats.GamesFinished++
		}
	}
	return stats, nil
}

func infoFor(s *session.Session) *GameInfo {
	return &GameInfo{
		ID:          s.ID,
		Status:      s.Status(),
		PlayerCount: s.PlayerCount(),
		Players:     s.PlayerNames(),
		Host:        s.HostName(),
		CreatedAt:   s.CreatedAt,
	}
}
