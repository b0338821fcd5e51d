package engine

import "fmt"

// Rank represents the face value of a number card.
type Rank string

const (
	Zero  Rank = "0"
	One   Rank = "1"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"

	// TODO: Add support for special cards (skip, reverse, draw-two, wild)
)

// Ranks lists every rank in deck order.
var Ranks = []Rank{Zero, One, Two, Three, Four, Five, Six, Seven, Eight, Nine}

// Color represents one of the four card colors.
type Color string

const (
	Red    Color = "Red"
	Yellow Color = "Yellow"
	Green  Color = "Green"
	Blue   Color = "Blue"
)

// Colors lists every color in deck order.
var Colors = []Color{Red, Yellow, Green, Blue}

// Card is an immutable card value. Equality is structural: two cards are the
// same card when rank and color both match.
type Card struct {
	Rank  Rank  `json:"rank"`
	Color Color `json:"color"`
}

// Matches reports whether the card may be played on top of the given discard
// pile card. A play is legal when either the color or the rank matches.
func (c Card) Matches(top Card) bool {
	return c.Color == top.Color || c.Rank == top.Rank
}

// String returns a human-readable form such as "Red 5".
func (c Card) String() string {
	return fmt.Sprintf("%s %s", c.Color, c.Rank)
}
