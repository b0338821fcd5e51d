// Package api provides the HTTP surface of the Uno Card Game Server.
//
// The api package implements:
//   - RESTful endpoints for game lifecycle management
//   - The websocket join gate, which validates a join before upgrading
//   - Health and version endpoints
//
// Endpoints:
//
// Game Lifecycle:
//   - POST /api/games - Create a new game, returns its join code
//   - GET /api/games - List all games
//   - GET /api/games/stats - Aggregate counts across games
//   - GET /api/games/{id} - Get one game's public info
//   - DELETE /api/games/{id} - Delete a game, disconnecting its players
//
// Game Operations:
//   - POST /api/games/{id}/broadcastStatus - Push a fresh snapshot to
//     every player of an in-progress game (403 otherwise)
//
// Joining:
//   - GET /games/{id}/join?name=alice - WebSocket upgrade. Responds with
//     404 for an unknown game, 403 when the game has started or is full,
//     and 400 for an invalid player name; otherwise the connection is
//     upgraded and held open for the lifetime of the player.
//
// Service:
//   - GET /healthz - Liveness probe
//   - GET /version - Server name and version
//
// Request/Response Format:
//
// All REST endpoints return JSON. Errors are returned as JSON with the
// appropriate HTTP status code:
//
//	{
//	  "error": "error message"
//	}
//
// Usage:
//
//	server := api.NewServer(gameService, manager, rules, version, logger)
//	http.ListenAndServe(":8080", server)
package api
