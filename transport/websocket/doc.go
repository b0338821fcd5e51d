// Package websocket provides the WebSocket transport for the Uno Card Game
// Server.
//
// The websocket package implements:
//   - A per-player connection handler that decodes inbound protocol
//     messages and dispatches them to the game session
//   - A periodic keep-alive ping on each connection
//   - Non-blocking outbound delivery to players
//   - Connection lifecycle management (a disconnect removes the player
//     from its session)
//
// Architecture:
//
// There is no central hub: each Client belongs to exactly one player in
// exactly one game session. The session addresses players individually
// through the session.Sender interface, which Client implements. Each
// connection runs two goroutines, a read pump that drives game operations
// and a write pump that serializes all outbound traffic, including pings,
// onto the wire.
//
// Outbound sends never block the game loop: messages are queued on a small
// buffer, and a client that cannot keep up is disconnected.
//
// Usage:
//
//	err := websocket.Attach(w, r, sess, playerName, pingPeriod, logger)
//
// Attach upgrades the HTTP request, registers the player with the session
// and blocks until the connection closes.
package websocket
