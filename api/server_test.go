package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wricardo/mcp-training/unogame/game/config"
	"github.com/wricardo/mcp-training/unogame/game/engine"
	"github.com/wricardo/mcp-training/unogame/game/service"
	"github.com/wricardo/mcp-training/unogame/game/session"
	"github.com/wricardo/mcp-training/unogame/protocol"
)

type testEnv struct {
	manager *session.Manager
	srv     *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	rules := config.Default()
	manager := session.NewManager(rules, zap.NewNop())
	svc := service.NewGameService(manager, zap.NewNop())
	server := NewServer(svc, manager, rules, "test", zap.NewNop())
	srv := httptest.NewServer(server)
	t.Cleanup(func() {
		srv.Close()
		manager.CloseAll()
	})
	return &testEnv{manager: manager, srv: srv}
}

func (e *testEnv) createGame(t *testing.T) string {
	t.Helper()
	resp, err := http.Post(e.srv.URL+"/api/games", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var game service.GameInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&game))
	return game.ID
}

func (e *testEnv) join(t *testing.T, gameID, name string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(e.srv.URL, "http") + "/games/" + gameID + "/join?name=" + name
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func sendStart(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	start, err := json.Marshal(protocol.StartMessage{Type: protocol.TypeStartMessage})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, start))
}

// readUntil reads messages off conn until one with the wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) map[string]any {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn.SetReadDeadline(deadline)
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var msg map[string]any
		require.NoError(t, json.Unmarshal(data, &msg))
		if msg["type"] == msgType {
			return msg
		}
	}
	t.Fatalf("no %s message received", msgType)
	return nil
}

func TestCreateGame(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Post(env.srv.URL+"/api/games", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var game service.GameInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&game))
	assert.Regexp(t, regexp.MustCompile(`^[a-z]{6}$`), game.ID)
	assert.Equal(t, engine.StatusWaitingForPlayers, game.Status)
	assert.Zero(t, game.PlayerCount)
}

func TestGetGame(t *testing.T) {
	env := newTestEnv(t)
	id := env.createGame(t)

	var game service.GameInfo
	resp := getJSON(t, env.srv.URL+"/api/games/"+id, &game)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, game.ID)
}

func TestGetGameNotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := getJSON(t, env.srv.URL+"/api/games/nosuch", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListGames(t *testing.T) {
	env := newTestEnv(t)
	env.createGame(t)
	env.createGame(t)

	var body struct {
		Count int                 `json:"count"`
		Games []*service.GameInfo `json:"games"`
	}
	resp := getJSON(t, env.srv.URL+"/api/games", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, body.Count)
	assert.Len(t, body.Games, 2)
}

func TestDeleteGame(t *testing.T) {
	env := newTestEnv(t)
	id := env.createGame(t)

	req, err := http.NewRequest(http.MethodDelete, env.srv.URL+"/api/games/"+id, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = getJSON(t, env.srv.URL+"/api/games/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBroadcastStatusRequiresInProgress(t *testing.T) {
	env := newTestEnv(t)
	id := env.createGame(t)

	resp, err := http.Post(env.srv.URL+"/api/games/"+id+"/broadcastStatus", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBroadcastStatusUnknownGame(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Post(env.srv.URL+"/api/games/nosuch/broadcastStatus", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	env.createGame(t)

	var stats service.Stats
	resp := getJSON(t, env.srv.URL+"/api/games/stats", &stats)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, stats.Games)
	assert.Equal(t, 1, stats.GamesWaiting)
}

func TestHealthAndVersion(t *testing.T) {
	env := newTestEnv(t)

	var health map[string]string
	resp := getJSON(t, env.srv.URL+"/healthz", &health)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", health["status"])

	var version map[string]string
	resp = getJSON(t, env.srv.URL+"/version", &version)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "test", version["version"])
}

func TestJoinGateRejections(t *testing.T) {
	env := newTestEnv(t)
	id := env.createGame(t)

	tests := []struct {
		name string
		url  string
		want int
	}{
		{"unknown game", "/games/nosuch/join?name=alice", http.StatusNotFound},
		{"missing name", "/games/" + id + "/join", http.StatusBadRequest},
		{"blank name", "/games/" + id + "/join?name=%20%20", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := getJSON(t, env.srv.URL+tt.url, nil)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestJoinGateRejectsStartedGame(t *testing.T) {
	env := newTestEnv(t)
	id := env.createGame(t)

	alice := env.join(t, id, "alice")
	env.join(t, id, "bob")

	sess, err := env.manager.Get(id)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return sess.PlayerCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	// alice joined first, so she is the host.
	sendStart(t, alice)
	require.Eventually(t, func() bool { return sess.Status() == engine.StatusInProgress }, 2*time.Second, 10*time.Millisecond)

	resp := getJSON(t, env.srv.URL+"/games/"+id+"/join?name=carol", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestJoinGateRejectsFullGame(t *testing.T) {
	env := newTestEnv(t)
	id := env.createGame(t)

	for _, name := range []string{"alice", "bob", "carol", "dave"} {
		env.join(t, id, name)
	}
	sess, err := env.manager.Get(id)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return sess.PlayerCount() == 4 }, 2*time.Second, 10*time.Millisecond)

	resp := getJSON(t, env.srv.URL+"/games/"+id+"/join?name=eve", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestStartOverWebSocket(t *testing.T) {
	env := newTestEnv(t)
	id := env.createGame(t)

	alice := env.join(t, id, "alice")
	bob := env.join(t, id, "bob")

	sess, err := env.manager.Get(id)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return sess.PlayerCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	sendStart(t, alice)

	for _, conn := range []*websocket.Conn{alice, bob} {
		msg := readUntil(t, conn, protocol.TypePlayerStatusMessage)
		assert.Equal(t, string(engine.StatusInProgress), msg["gameStatus"])
		hand, ok := msg["hand"].([]any)
		require.True(t, ok)
		assert.Len(t, hand, config.Default().HandSize)
		others, ok := msg["otherPlayers"].([]any)
		require.True(t, ok)
		assert.Len(t, others, 1)
	}
}
