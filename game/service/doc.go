// Package service provides the business logic layer for the Uno Card Game
// Server.
//
// The service package implements:
//   - Game lifecycle management (create, lookup, list, delete)
//   - The administrative broadcast-status operation
//   - Aggregate server statistics
//
// Architecture:
//
// GameService sits between the transport layers (REST, MCP) and the session
// engine. It exposes read-only GameInfo snapshots to callers; the live
// *session.Session handles and the websocket join path are wired directly in
// the api package, because joining hands the connection over to the session
// for its lifetime.
package service
