// Package mcp provides the Model Context Protocol surface of the Uno Card
// Game Server.
//
// The mcp package implements:
//   - An MCP server exposing game management tools to AI agents
//   - Tool handlers that proxy to the REST API
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools:
//   - create_game: Create a new game and return its join code
//   - get_game: Get one game's public info
//   - list_games: List all active games
//   - delete_game: Delete a game, disconnecting its players
//   - broadcast_status: Push a fresh snapshot to an in-progress game
//   - game_instructions: Get the full rules and connection guide
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: An /mcp endpoint served next to the REST API
//
// Scope:
//
// MCP covers game management only. Gameplay itself (starting, playing
// cards, drawing) runs over each player's websocket connection, keeping a
// single authoritative path for game mutations.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	srv := client.GetMCPServer()
//	// stdio mode
//	server.ServeStdio(srv)
package mcp
