package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wricardo/mcp-training/unogame/game/config"
	"github.com/wricardo/mcp-training/unogame/game/engine"
	"github.com/wricardo/mcp-training/unogame/protocol"
)

// ErrSessionFull is returned by AddPlayer when the roster is at capacity.
// The join gate normally rejects earlier; this is the defensive backstop.
var ErrSessionFull = errors.New("session is full")

// outbound is one message addressed to one player. Batches are built under
// the session lock and delivered after it is released.
type outbound struct {
	to  Sender
	msg any
}

// Session is one running game instance. All mutable state below mu is
// guarded by it; every operation mutates under the lock and sends after
// releasing it.
type Session struct {
	ID        string
	CreatedAt time.Time

	rules config.Rules
	log   *zap.Logger

	mu         sync.Mutex
	players    []*Player // seating order; turn arithmetic is modulo len(players)
	host       *Player
	currentIdx int // index into players, -1 when no current player
	direction  engine.Direction
	status     engine.Status
	deck       *engine.Deck
	discard    engine.DiscardPile
}

// NewSession creates an empty session in the WaitingForPlayers state.
func NewSession(id string, rules config.Rules, log *zap.Logger) *Session {
	return &Session{
		ID:         id,
		CreatedAt:  time.Now(),
		rules:      rules,
		log:        log.With(zap.String("game", id)),
		currentIdx: -1,
		direction:  engine.DirectionUp,
		status:     engine.StatusWaitingForPlayers,
	}
}

// AddPlayer appends a player to the roster. The first player to join becomes
// the host. All players, including the new one, are notified of the roster
// change.
func (s *Session) AddPlayer(p *Player) error {
	s.mu.Lock()
	if len(s.players) >= s.rules.MaxPlayers {
		s.mu.Unlock()
		return ErrSessionFull
	}

	s.players = append(s.players, p)
	if s.host == nil {
		s.host = p
	}
	batch := s.playerListChangedLocked()
	s.mu.Unlock()

	s.log.Info("player joined",
		zap.String("player", p.Name),
		zap.String("playerId", p.ID))
	s.flush(batch)
	return nil
}

// RemovePlayer takes a player out of the roster, advancing the turn first if
// it was that player's turn. Removing a player who already left is a no-op;
// disconnect races are expected. The player's connection is closed either
// way.
func (s *Session) RemovePlayer(p *Player) {
	s.mu.Lock()
	idx := slices.Index(s.players, p)
	if idx < 0 {
		s.mu.Unlock()
		s.log.Warn("remove requested for absent player",
			zap.String("player", p.Name),
			zap.String("playerId", p.ID))
		p.sender.Close()
		return
	}

	// Advance off the leaving player while the pre-removal roster still
	// makes the modulo arithmetic well-defined.
	if s.currentIdx == idx {
		s.advanceTurnLocked()
	}
	var current *Player
	if s.currentIdx >= 0 && s.currentIdx < len(s.players) {
		current = s.players[s.currentIdx]
	}

	s.players = slices.Delete(s.players, idx, idx+1)

	if current == nil || current == p {
		s.currentIdx = -1
	} else {
		s.currentIdx = slices.Index(s.players, current)
	}
	if s.host == p {
		s.host = nil
		if len(s.players) > 0 {
			s.host = s.players[0]
		}
	}

	batch := s.playerListChangedLocked()
	if s.status == engine.StatusInProgress {
		batch = append(batch, s.statusLocked()...)
	}
	s.mu.Unlock()

	s.log.Info("player removed",
		zap.String("player", p.Name),
		zap.String("playerId", p.ID))
	s.flush(batch)
	p.sender.Close()
}

// Start deals a fresh round. Only the host may start, at least MinPlayers
// must be seated, and a game that already left the lobby is not restarted (a
// duplicate start request is logged and dropped).
func (s *Session) Start(requestedBy *Player) {
	s.mu.Lock()
	if s.status != engine.StatusWaitingForPlayers {
		s.mu.Unlock()
		s.log.Warn("start requested but game is not waiting for players",
			zap.String("status", string(s.status)),
			zap.String("player", requestedBy.Name))
		return
	}
	if requestedBy != s.host {
		hostName := ""
		if s.host != nil {
			hostName = s.host.Name
		}
		batch := s.serverMessageLocked(fmt.Sprintf("Only the host (%s) can start the game.", hostName))
		s.mu.Unlock()
		s.flush(batch)
		return
	}
	if len(s.players) < s.rules.MinPlayers {
		batch := s.serverMessageLocked(fmt.Sprintf("At least %d players are needed to start the game.", s.rules.MinPlayers))
		s.mu.Unlock()
		s.flush(batch)
		return
	}

	s.deck = engine.NewDeck()
	s.discard = engine.DiscardPile{}
	for _, p := range s.players {
		p.Hand = p.Hand[:0]
	}
	for _, p := range s.players {
		for range s.rules.HandSize {
			card, err := s.deck.Draw()
			if err != nil {
				// Unreachable with a validated config: the deck always covers
				// a full deal plus the discard seed.
				s.mu.Unlock()
				s.log.Error("deck exhausted during deal", zap.Error(err))
				return
			}
			p.Hand = append(p.Hand, card)
		}
	}

	s.currentIdx = rand.IntN(len(s.players))
	s.status = engine.StatusInProgress
	s.direction = engine.DirectionUp

	seed, err := s.deck.Draw()
	if err != nil {
		s.mu.Unlock()
		s.log.Error("deck exhausted seeding discard pile", zap.Error(err))
		return
	}
	s.discard.Push(seed)

	first := s.players[s.currentIdx]
	playerCount := len(s.players)
	batch := s.statusLocked()
	batch = append(batch, s.serverMessageLocked(fmt.Sprintf("The game has started. It is %s's turn.", first.Name))...)
	s.mu.Unlock()

	s.log.Info("game started",
		zap.Int("players", playerCount),
		zap.String("firstPlayer", first.Name))
	s.flush(batch)
}

// DropCard plays a card from the player's hand onto the discard pile. The
// play must come from the hand and match the pile's top card by color or
// rank; anything else is a stale client action, logged and dropped. A play
// that empties the hand finishes the game.
func (s *Session) DropCard(p *Player, card engine.Card) {
	s.mu.Lock()
	if s.status != engine.StatusInProgress {
		s.mu.Unlock()
		s.log.Warn("card played while game is not in progress",
			zap.String("status", string(s.status)),
			zap.String("player", p.Name))
		return
	}
	idx := slices.Index(p.Hand, card)
	if idx < 0 {
		s.mu.Unlock()
		s.log.Warn("card played that is not in hand",
			zap.String("player", p.Name),
			zap.String("card", card.String()))
		return
	}
	top, ok := s.discard.Top()
	if !ok || !card.Matches(top) {
		s.mu.Unlock()
		s.log.Warn("card played that does not match the discard pile",
			zap.String("player", p.Name),
			zap.String("card", card.String()),
			zap.String("top", top.String()))
		return
	}

	p.Hand = slices.Delete(p.Hand, idx, idx+1)
	s.discard.Push(card)
	s.advanceTurnLocked()

	var batch []outbound
	won := len(p.Hand) == 0
	if won {
		s.status = engine.StatusFinished
		batch = s.broadcastLocked(protocol.NewWinnerMessage(p.ID, p.Name))
	} else {
		next := s.players[s.currentIdx]
		batch = s.statusLocked()
		batch = append(batch, s.serverMessageLocked(fmt.Sprintf("%s played %s. It is %s's turn.", p.Name, card, next.Name))...)
	}
	s.mu.Unlock()

	if won {
		s.log.Info("game finished",
			zap.String("winner", p.Name),
			zap.String("winnerId", p.ID))
	}
	s.flush(batch)
}

// TakeFromPile draws one card from the deck into the player's hand and
// advances the turn. An empty deck is a server error, not a client one:
// there is no reshuffle from the discard pile.
func (s *Session) TakeFromPile(p *Player) error {
	s.mu.Lock()
	if s.status != engine.StatusInProgress {
		s.mu.Unlock()
		s.log.Warn("card taken while game is not in progress",
			zap.String("status", string(s.status)),
			zap.String("player", p.Name))
		return nil
	}

	card, err := s.deck.Draw()
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("take from pile: %w", err)
	}
	p.Hand = append(p.Hand, card)
	s.advanceTurnLocked()

	next := s.players[s.currentIdx]
	batch := s.statusLocked()
	batch = append(batch, s.serverMessageLocked(fmt.Sprintf("%s took a card from the pile. It is %s's turn.", p.Name, next.Name))...)
	s.mu.Unlock()

	s.flush(batch)
	return nil
}

// BroadcastChat relays a chat message to every player.
func (s *Session) BroadcastChat(from, message string) {
	s.mu.Lock()
	batch := s.broadcastLocked(protocol.NewPublishMessage(from, message))
	s.mu.Unlock()
	s.flush(batch)
}

// BroadcastServerMessage sends an announcement under the server sender label.
func (s *Session) BroadcastServerMessage(message string) {
	s.mu.Lock()
	batch := s.serverMessageLocked(message)
	s.mu.Unlock()
	s.flush(batch)
}

// BroadcastPlayerListChanged notifies every player of the current roster.
func (s *Session) BroadcastPlayerListChanged() {
	s.mu.Lock()
	batch := s.playerListChangedLocked()
	s.mu.Unlock()
	s.flush(batch)
}

// BroadcastStatus sends a personalized status snapshot to every player.
func (s *Session) BroadcastStatus() {
	s.mu.Lock()
	batch := s.statusLocked()
	s.mu.Unlock()
	s.flush(batch)
}

// Close force-closes every player's connection. Used at process shutdown;
// the resulting disconnects drain the roster through RemovePlayer.
func (s *Session) Close() {
	s.mu.Lock()
	senders := make([]Sender, 0, len(s.players))
	for _, p := range s.players {
		senders = append(senders, p.sender)
	}
	s.mu.Unlock()

	for _, sender := range senders {
		sender.Close()
	}
}

// Status returns the current lifecycle state.
func (s *Session) Status() engine.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// PlayerCount returns the roster size.
func (s *Session) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}

// PlayerNames returns the display names in seating order.
func (s *Session) PlayerNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerNamesLocked()
}

// HostName returns the host's display name, or "" for an empty session.
func (s *Session) HostName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.host == nil {
		return ""
	}
	return s.host.Name
}

// CurrentPlayerID returns the ID of the player whose turn it is, or "".
func (s *Session) CurrentPlayerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentIdx < 0 || s.currentIdx >= len(s.players) {
		return ""
	}
	return s.players[s.currentIdx].ID
}

// DeckLen returns the number of undrawn cards, 0 before the first deal.
func (s *Session) DeckLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deck == nil {
		return 0
	}
	return s.deck.Len()
}

// advanceTurnLocked moves the turn pointer one seat in the current
// direction, wrapping around the roster. It never changes the direction.
func (s *Session) advanceTurnLocked() {
	n := len(s.players)
	if n == 0 || s.currentIdx < 0 {
		return
	}
	s.currentIdx = ((s.currentIdx+int(s.direction))%n + n) % n
}

func (s *Session) playerNamesLocked() []string {
	names := make([]string, 0, len(s.players))
	for _, p := range s.players {
		names = append(names, p.Name)
	}
	return names
}

// broadcastLocked addresses one identical message to every player in
// seating order.
func (s *Session) broadcastLocked(msg any) []outbound {
	batch := make([]outbound, 0, len(s.players))
	for _, p := range s.players {
		batch = append(batch, outbound{to: p.sender, msg: msg})
	}
	return batch
}

func (s *Session) playerListChangedLocked() []outbound {
	return s.broadcastLocked(protocol.NewPlayerListChanged(s.playerNamesLocked()))
}

func (s *Session) serverMessageLocked(message string) []outbound {
	return s.broadcastLocked(protocol.NewServerMessage(message))
}

// statusLocked builds the personalized snapshot for every player. Each
// recipient sees their full hand but only hand sizes for everyone else.
// Hands are copied so the messages stay stable after the lock is released.
func (s *Session) statusLocked() []outbound {
	var top *engine.Card
	if t, ok := s.discard.Top(); ok {
		card := t
		top = &card
	}
	var currentID string
	if s.currentIdx >= 0 && s.currentIdx < len(s.players) {
		currentID = s.players[s.currentIdx].ID
	}

	batch := make([]outbound, 0, len(s.players))
	for _, p := range s.players {
		others := make([]protocol.OtherPlayerStatus, 0, len(s.players)-1)
		for _, o := range s.players {
			if o == p {
				continue
			}
			others = append(others, protocol.OtherPlayerStatus{
				PlayerID: o.ID,
				Name:     o.Name,
				HandSize: len(o.Hand),
			})
		}

		batch = append(batch, outbound{to: p.sender, msg: protocol.PlayerStatusMessage{
			Type:            protocol.TypePlayerStatusMessage,
			GameStatus:      s.status,
			Hand:            slices.Clone(p.Hand),
			DiscardPileTop:  top,
			CurrentPlayerID: currentID,
			ItIsYourTurn:    currentID != "" && currentID == p.ID,
			OtherPlayers:    others,
		}})
	}
	return batch
}

// flush delivers a batch built under the lock. Send failures are expected
// during disconnects and are only logged.
func (s *Session) flush(batch []outbound) {
	for _, o := range batch {
		if err := o.to.Send(o.msg); err != nil {
			s.log.Debug("send failed", zap.Error(err))
		}
	}
}
