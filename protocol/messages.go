// Package protocol defines the JSON wire messages exchanged with game
// clients over the websocket connection.
//
// Every message carries a "type" discriminant naming its concrete kind.
// Inbound messages (client to server) are PublishMessage, StartMessage,
// DropCard, and TakeFromPile. Outbound messages additionally include
// PlayerListChanged, PlayerStatusMessage, WinnerMessage, and Ping.
// PublishMessage flows both ways: clients use it for chat, and the server
// reuses it for announcements under the fixed ServerSender label.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/wricardo/mcp-training/unogame/game/engine"
)

// Message type discriminants.
const (
	TypePublishMessage      = "PublishMessage"
	TypeStartMessage        = "StartMessage"
	TypeDropCard            = "DropCard"
	TypeTakeFromPile        = "TakeFromPile"
	TypePlayerListChanged   = "PlayerListChanged"
	TypePlayerStatusMessage = "PlayerStatusMessage"
	TypeWinnerMessage       = "WinnerMessage"
	TypePing                = "Ping"
)

// ServerSender is the sender label used for server announcements.
const ServerSender = "🤖"

// Envelope carries only the discriminant, used to pick the concrete type
// before a second unmarshal.
type Envelope struct {
	Type string `json:"type"`
}

// PublishMessage is a chat message, from a player or from the server.
type PublishMessage struct {
	Type    string `json:"type"`
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// NewPublishMessage builds a chat message from the given sender.
func NewPublishMessage(sender, message string) PublishMessage {
	return PublishMessage{Type: TypePublishMessage, Sender: sender, Message: message}
}

// NewServerMessage builds a server announcement.
func NewServerMessage(message string) PublishMessage {
	return NewPublishMessage(ServerSender, message)
}

// StartMessage asks the server to start the game. Only honored when sent by
// the host.
type StartMessage struct {
	Type string `json:"type"`
}

// DropCard asks the server to play the given card from the sender's hand.
type DropCard struct {
	Type string      `json:"type"`
	Card engine.Card `json:"card"`
}

// TakeFromPile asks the server to draw one card from the deck into the
// sender's hand.
type TakeFromPile struct {
	Type string `json:"type"`
}

// PlayerListChanged notifies all players that the roster changed. Names are
// listed in seating order.
type PlayerListChanged struct {
	Type       string   `json:"type"`
	PlayerList []string `json:"playerList"`
}

// NewPlayerListChanged builds a roster notification.
func NewPlayerListChanged(names []string) PlayerListChanged {
	return PlayerListChanged{Type: TypePlayerListChanged, PlayerList: names}
}

// OtherPlayerStatus is the view of another player inside a status snapshot.
// It never exposes the other player's cards, only the hand size.
type OtherPlayerStatus struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	HandSize int    `json:"handSize"`
}

// PlayerStatusMessage is the personalized state snapshot sent to one player
// after every change.
type PlayerStatusMessage struct {
	Type            string              `json:"type"`
	GameStatus      engine.Status       `json:"gameStatus"`
	Hand            []engine.Card       `json:"hand"`
	DiscardPileTop  *engine.Card        `json:"discardPileTop,omitempty"`
	CurrentPlayerID string              `json:"currentPlayerId,omitempty"`
	ItIsYourTurn    bool                `json:"itIsYourTurn"`
	OtherPlayers    []OtherPlayerStatus `json:"otherPlayers"`
}

// WinnerMessage announces the end of the game to all players.
type WinnerMessage struct {
	Type       string `json:"type"`
	WinnerID   string `json:"winnerId"`
	WinnerName string `json:"winnerName"`
}

// NewWinnerMessage builds a winner announcement.
func NewWinnerMessage(id, name string) WinnerMessage {
	return WinnerMessage{Type: TypeWinnerMessage, WinnerID: id, WinnerName: name}
}

// Ping is the keep-alive message sent periodically to every client.
type Ping struct {
	Type string `json:"type"`
}

// NewPing builds a keep-alive message.
func NewPing() Ping {
	return Ping{Type: TypePing}
}

// Decode parses one inbound client message. It returns the concrete message
// value (PublishMessage, StartMessage, DropCard, or TakeFromPile) or an
// error for malformed payloads and unknown types.
func Decode(data []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode message envelope: %w", err)
	}

	switch env.Type {
	case TypePublishMessage:
		var msg PublishMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return msg, nil
	case TypeStartMessage:
		return StartMessage{Type: TypeStartMessage}, nil
	case TypeDropCard:
		var msg DropCard
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return msg, nil
	case TypeTakeFromPile:
		return TakeFromPile{Type: TypeTakeFromPile}, nil
	default:
		return nil, fmt.Errorf("unknown message type %q", env.Type)
	}
}
