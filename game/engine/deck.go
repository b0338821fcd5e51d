package engine

import (
	"errors"
	"math/rand/v2"
)

// DeckSize is the number of cards in a fresh deck: two copies of ranks 1-9
// plus one copy of rank 0, in each of the four colors.
const DeckSize = 2*9*4 + 4

// ErrDeckExhausted is returned by Draw when no cards are left. The deck is
// never reshuffled from the discard pile.
var ErrDeckExhausted = errors.New("no cards left in deck")

// Deck is a shuffled stack of cards. It is not safe for concurrent use; a
// deck is owned exclusively by one game session, which serializes access
// behind its own lock.
type Deck struct {
	cards []Card
}

// NewDeck builds the full 76-card set and applies a uniform Fisher-Yates
// shuffle.
func NewDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, color := range Colors {
		cards = append(cards, Card{Rank: Zero, Color: color})
		for _, rank := range Ranks[1:] {
			cards = append(cards, Card{Rank: rank, Color: color}, Card{Rank: rank, Color: color})
		}
	}

	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return &Deck{cards: cards}
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}

	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}
