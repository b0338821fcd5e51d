// Command unobot is a small automated player for the Uno Card Game Server.
// It joins a game over websocket and, whenever it is its turn, plays the
// first card that matches the discard pile top, drawing from the deck when
// nothing matches.
//
// Without -game it creates a fresh game first, which also makes it the host;
// use -start to have it start the game once enough players joined.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wricardo/mcp-training/unogame/game/engine"
	"github.com/wricardo/mcp-training/unogame/game/service"
	"github.com/wricardo/mcp-training/unogame/protocol"
)

var (
	serverURL = flag.String("server", "http://localhost:8080", "Base URL of the game server")
	gameCode  = flag.String("game", "", "Join code of the game (empty to create a new one)")
	name      = flag.String("name", "unobot", "Player name")
	start     = flag.Int("start", 0, "Start the game once this many players joined (0 = never, host only)")
	delay     = flag.Duration("delay", 500*time.Millisecond, "Pause before each play")
)

func main() {
	flag.Parse()

	code := *gameCode
	if code == "" {
		var err error
		code, err = createGame(*serverURL)
		if err != nil {
			log.Fatalf("create game: %v", err)
		}
		log.Printf("created game %s", code)
	}

	conn, err := dialGame(*serverURL, code, *name)
	if err != nil {
		log.Fatalf("join game %s: %v", code, err)
	}
	defer conn.Close()
	log.Printf("joined game %s as %s", code, *name)

	if err := play(conn); err != nil {
		log.Fatalf("play: %v", err)
	}
}

// createGame asks the REST API for a fresh game and returns its join code.
func createGame(baseURL string) (string, error) {
	resp, err := http.Post(baseURL+"/api/games", "application/json", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var game service.GameInfo
	if err := json.NewDecoder(resp.Body).Decode(&game); err != nil {
		return "", err
	}
	return game.ID, nil
}

// dialGame opens the websocket connection for one player.
func dialGame(baseURL, code, name string) (*websocket.Conn, error) {
	wsURL := strings.Replace(baseURL, "http", "ws", 1)
	url := fmt.Sprintf("%s/games/%s/join?name=%s", wsURL, code, name)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	return conn, err
}

// play runs the bot loop until the game ends or the connection drops.
func play(conn *websocket.Conn) error {
	started := false

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}

		var env protocol.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			log.Printf("skipping unreadable message: %v", err)
			continue
		}

		switch env.Type {
		case protocol.TypePing:
			// keep-alive, nothing to do

		case protocol.TypePublishMessage:
			var msg protocol.PublishMessage
			if err := json.Unmarshal(data, &msg); err == nil {
				log.Printf("[%s] %s", msg.Sender, msg.Message)
			}

		case protocol.TypePlayerListChanged:
			var msg protocol.PlayerListChanged
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			log.Printf("players: %s", strings.Join(msg.PlayerList, ", "))
			if !started && *start > 0 && len(msg.PlayerList) >= *start {
				started = true
				if err := send(conn, protocol.StartMessage{Type: protocol.TypeStartMessage}); err != nil {
					return err
				}
				log.Printf("requested game start")
			}

		case protocol.TypePlayerStatusMessage:
			var msg protocol.PlayerStatusMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			if !msg.ItIsYourTurn || msg.GameStatus != engine.StatusInProgress {
				continue
			}
			time.Sleep(*delay)
			if err := takeTurn(conn, msg); err != nil {
				return err
			}

		case protocol.TypeWinnerMessage:
			var msg protocol.WinnerMessage
			if err := json.Unmarshal(data, &msg); err == nil {
				log.Printf("game over, winner: %s", msg.WinnerName)
			}
			return nil
		}
	}
}

// takeTurn plays the first matching card, or draws when the hand has none.
func takeTurn(conn *websocket.Conn, status protocol.PlayerStatusMessage) error {
	if status.DiscardPileTop != nil {
		for _, card := range status.Hand {
			if card.Matches(*status.DiscardPileTop) {
				log.Printf("playing %s on %s", card, *status.DiscardPileTop)
				return send(conn, protocol.DropCard{Type: protocol.TypeDropCard, Card: card})
			}
		}
	}

	log.Printf("no matching card, drawing")
	return send(conn, protocol.TakeFromPile{Type: protocol.TypeTakeFromPile})
}

func send(conn *websocket.Conn, msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
