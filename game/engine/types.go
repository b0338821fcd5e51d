package engine

// Status represents the lifecycle state of a game session.
type Status string

const (
	StatusWaitingForPlayers Status = "WaitingForPlayers"
	StatusInProgress        Status = "InProgress"
	StatusFinished          Status = "Finished"
)

// Direction is the turn advancement direction: +1 walks the roster forward,
// -1 walks it backward. No card in the current rule set flips it.
type Direction int

const (
	DirectionUp   Direction = 1
	DirectionDown Direction = -1
)

// DiscardPile is a stack of played cards; the top card is the active match
// target. Like Deck, it is owned exclusively by one game session.
type DiscardPile struct {
	cards []Card
}

// Push places a card on top of the pile.
func (p *DiscardPile) Push(c Card) {
	p.cards = append(p.cards, c)
}

// Top returns the most recently played card, if any.
func (p *DiscardPile) Top() (Card, bool) {
	if len(p.cards) == 0 {
		return Card{}, false
	}
	return p.cards[len(p.cards)-1], true
}

// Len returns the number of cards in the pile.
func (p *DiscardPile) Len() int {
	return len(p.cards)
}
