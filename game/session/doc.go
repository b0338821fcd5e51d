// Package session implements the game session engine for the Uno Card Game
// Server.
//
// The session package implements:
//   - The Session aggregate: roster, deck, discard pile, turn pointer,
//     direction, and the WaitingForPlayers -> InProgress -> Finished
//     state machine
//   - All game-mutating operations (join, leave, start, play, draw)
//   - The broadcast protocol that keeps every connected client consistent
//     with authoritative server state
//   - The Manager registry that tracks live sessions by join code and
//     collects abandoned ones
//
// Concurrency:
//
// Each Session owns a single mutex guarding all of its mutable state. Every
// operation mutates state and builds its outbound messages under that lock,
// then releases the lock before any network send, so a stalled client can
// never block other players' turns or other sessions. Operations are invoked
// directly from the connection goroutine that received the triggering
// message; there is no separate game-logic goroutine.
//
// Client actions that are stale relative to current server state (playing a
// card that is no longer in hand, starting a started game, removing an
// absent player) are logged as warnings and silently dropped; clients
// reconcile through the next status snapshot.
package session
