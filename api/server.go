package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/wricardo/mcp-training/unogame/game/config"
	"github.com/wricardo/mcp-training/unogame/game/engine"
	"github.com/wricardo/mcp-training/unogame/game/service"
	"github.com/wricardo/mcp-training/unogame/game/session"
	"github.com/wricardo/mcp-training/unogame/transport/websocket"
	"github.com/wricardo/mcp-training/unogame/validate"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	manager *session.Manager
	rules   config.Rules
	version string
	log     *zap.Logger
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, manager *session.Manager, rules config.Rules, version string, log *zap.Logger) *Server {
	s := &Server{
		service: gameService,
		manager: manager,
		rules:   rules,
		version: version,
		log:     log,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Game lifecycle
	api.HandleFunc("/games", s.handleCreateGame).Methods("POST")
	api.HandleFunc("/games", s.handleListGames).Methods("GET")
	// Aggregate stats (must be before {id} pattern)
	api.HandleFunc("/games/stats", s.handleStats).Methods("GET")
	api.HandleFunc("/games/{id}", s.handleGetGame).Methods("GET")
	api.HandleFunc("/games/{id}", s.handleDeleteGame).Methods("DELETE")

	// Game operations
	api.HandleFunc("/games/{id}/broadcastStatus", s.handleBroadcastStatus).Methods("POST")

	// WebSocket join gate
	s.router.HandleFunc("/games/{id}/join", s.handleJoin).Methods("GET")

	// Service endpoints
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/version", s.handleVersion).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Game Handlers

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	game, err := s.service.CreateGame(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, game)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.service.ListGames(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(games),
		"games": games,
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	game, err := s.service.GetGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, game)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	err := s.service.DeleteGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Game %s deleted", gameID),
	})
}

func (s *Server) handleBroadcastStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	err := s.service.BroadcastStatus(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotInProgress) {
			respondError(w, http.StatusForbidden, err.Error())
			return
		}
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Status broadcast to game %s", gameID),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// WebSocket Join Handler

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]
	name := r.URL.Query().Get("name")

	// The join gate runs every check before the upgrade so that rejected
	// clients get a plain HTTP status instead of a half-open websocket.
	sess, err := s.manager.Get(gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "game not found")
		return
	}

	if sess.Status() != engine.StatusWaitingForPlayers {
		respondError(w, http.StatusForbidden, "game has already started")
		return
	}

	if sess.PlayerCount() >= s.rules.MaxPlayers {
		respondError(w, http.StatusForbidden, "game is full")
		return
	}

	if err := validate.PlayerName(name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = websocket.Attach(w, r, sess, strings.TrimSpace(name), s.rules.PingInterval(), s.log)
	if err != nil {
		// The gate races joins from other players, so AddPlayer can still
		// reject a connection that passed the checks above.
		s.log.Warn("websocket join failed",
			zap.String("game", gameID),
			zap.String("player", name),
			zap.Error(err))
	}
}

// Service Handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"name":    "uno-game-server",
		"version": s.version,
	})
}
