// Package engine provides the core card model for the Uno Card Game Server.
//
// The engine package implements the rules-level building blocks:
//   - Card values (rank and color) and the play-matching predicate
//   - The 76-card deck with uniform shuffling and draw-until-exhausted semantics
//   - The discard pile stack
//   - Game status and turn direction enumerations
//
// Core Types:
//
// Card is an immutable value identified by its rank and color; two cards are
// equal when both fields are equal. Deck is a mutable stack of cards owned
// exclusively by one game session per round. DiscardPile is the stack of
// played cards whose top card is the active match target.
//
// Usage:
//
//	deck := engine.NewDeck()
//	card, err := deck.Draw()
//	if errors.Is(err, engine.ErrDeckExhausted) {
//		// no reshuffle is implemented; the round is over
//	}
//
// Game Rules:
//
// A card may be played on the discard pile when its color or its rank matches
// the top card. Only number cards (0-9) exist in the deck; special action
// cards (skip, reverse, draw-two, wild) are not supported.
package engine
