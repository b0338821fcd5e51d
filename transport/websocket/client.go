package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/wricardo/mcp-training/unogame/game/session"
	"github.com/wricardo/mcp-training/unogame/protocol"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Maximum inbound message size allowed from the peer.
	maxMessageSize = 1024

	// Outbound queue depth per connection.
	sendBufferSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // allow all origins for development
	},
}

// ErrClientClosed is returned by Send after the connection has been closed.
var ErrClientClosed = errors.New("websocket client closed")

// Client is one player's websocket connection. It implements session.Sender
// so the game session can address the player directly.
type Client struct {
	conn       *websocket.Conn
	send       chan []byte
	done       chan struct{}
	pingPeriod time.Duration
	log        *zap.Logger

	closeOnce sync.Once
}

// NewClient wraps an upgraded connection. The caller is expected to invoke
// Run to start the pumps.
func NewClient(conn *websocket.Conn, pingPeriod time.Duration, log *zap.Logger) *Client {
	return &Client{
		conn:       conn,
		send:       make(chan []byte, sendBufferSize),
		done:       make(chan struct{}),
		pingPeriod: pingPeriod,
		log:        log,
	}
}

// Send marshals msg to JSON and queues it for delivery. It never blocks: a
// client whose buffer is full is considered stuck and gets disconnected.
func (c *Client) Send(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal outbound message: %w", err)
	}

	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}

	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return ErrClientClosed
	default:
		c.log.Warn("send buffer full, dropping client")
		c.Close()
		return ErrClientClosed
	}
}

// Close shuts the connection down. Safe to call more than once and from
// any goroutine.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// writePump serializes all writes to the connection: queued messages and
// the periodic keep-alive ping.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	ping, _ := json.Marshal(protocol.NewPing())

	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// readPump reads client messages and dispatches them to the session until
// the connection drops.
func (c *Client) readPump(sess *session.Session, player *session.Player) {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("websocket read error", zap.Error(err))
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			c.log.Warn("dropping unreadable message", zap.Error(err))
			continue
		}

		switch m := msg.(type) {
		case protocol.PublishMessage:
			sess.BroadcastChat(player.Name, m.Message)
		case protocol.StartMessage:
			sess.Start(player)
		case protocol.DropCard:
			sess.DropCard(player, m.Card)
		case protocol.TakeFromPile:
			if err := sess.TakeFromPile(player); err != nil {
				c.log.Error("take from pile failed", zap.Error(err))
			}
		}
	}
}

// Run drives the connection until it closes, then removes the player from
// the session. It blocks for the lifetime of the connection.
func (c *Client) Run(sess *session.Session, player *session.Player) {
	go c.writePump()
	c.readPump(sess, player)
	sess.RemovePlayer(player)
}

// Attach upgrades the HTTP request to a websocket connection, joins the
// named player to the session and blocks until the connection closes. The
// caller must have validated the join beforehand: a session at capacity
// closes the fresh connection and returns session.ErrSessionFull.
func Attach(w http.ResponseWriter, r *http.Request, sess *session.Session, name string, pingPeriod time.Duration, log *zap.Logger) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("upgrade websocket: %w", err)
	}

	client := NewClient(conn, pingPeriod, log.With(zap.String("player", name)))
	player := session.NewPlayer(name, client)

	if err := sess.AddPlayer(player); err != nil {
		client.Close()
		return err
	}

	client.Run(sess, player)
	return nil
}
