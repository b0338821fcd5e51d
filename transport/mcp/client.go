package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/unogame/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Uno Card Game Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Uno Card Game Server - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Be the first player to empty your hand. A card can be played when it shares
a color or a rank with the top card of the discard pile; otherwise you draw
from the deck and your turn passes.

AVAILABLE TOOLS:
- create_game: Create a new game and get its join code
- get_game: Get a game's public info (status, players, host)
- list_games: List all active games
- delete_game: Delete a game, disconnecting its players
- broadcast_status: Push a fresh state snapshot to every player
- game_instructions: Get the full rules and how players connect

NOTE: Playing the game itself happens over a websocket connection, not over
MCP. These tools manage games; players join with the code from create_game.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Game lifecycle
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_game",
		Description: "Create a new game and return its join code",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleCreateGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List all active games",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListGames)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_game",
		Description: "Get details of a specific game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Join code of the game to retrieve",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleGetGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_game",
		Description: "Delete a game and disconnect its players",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Join code of the game to delete",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleDeleteGame)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "broadcast_status",
		Description: "Push a fresh state snapshot to every player of an in-progress game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Join code of the game",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleBroadcastStatus)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the full game rules and connection instructions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiCall performs an HTTP request against the REST API
func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var game service.GameInfo
	err := c.apiCall("POST", "/api/games", nil, &game)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created game: %s\nStatus: %s\nPlayers join at: /games/%s/join?name=<name>\n",
		game.ID, game.Status, game.ID)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var resp struct {
		Count int                 `json:"count"`
		Games []*service.GameInfo `json:"games"`
	}
	err := c.apiCall("GET", "/api/games", nil, &resp)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if resp.Count == 0 {
		return mcp.NewToolResultText("No active games."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Active games: %d\n\n", resp.Count)
	for _, game := range resp.Games {
		fmt.Fprintf(&sb, "- %s: %s, %d player(s)", game.ID, game.Status, game.PlayerCount)
		if game.Host != "" {
			fmt.Fprintf(&sb, ", host %s", game.Host)
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var game service.GameInfo
	err := c.apiCall("GET", "/api/games/"+gameID, nil, &game)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Game: %s\nStatus: %s\nPlayers (%d): %s\nHost: %s\nCreated: %s\n",
		game.ID, game.Status, game.PlayerCount, strings.Join(game.Players, ", "),
		game.Host, game.CreatedAt.Format(time.RFC3339))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDeleteGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	err := c.apiCall("DELETE", "/api/games/"+gameID, nil, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deleted game %s", gameID)), nil
}

func (c *Client) handleBroadcastStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	err := c.apiCall("POST", "/api/games/"+gameID+"/broadcastStatus", nil, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Status broadcast to game %s", gameID)), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `UNO CARD GAME - RULES AND CONNECTION GUIDE

SETUP:
- Create a game with create_game; it returns a 6-letter join code.
- 2 to 4 players join over websocket: GET /games/{code}/join?name=<name>
- The first player to join is the host. Only the host can start the game.
- Starting deals 7 cards to each player and flips one card onto the
  discard pile.

PLAYING:
- On your turn, play a card that matches the top of the discard pile by
  color or by rank, or draw one card from the deck.
- Either action passes the turn to the next player.
- The first player to empty their hand wins.

WIRE PROTOCOL (JSON over the websocket):
- Send {"type":"StartMessage"} to start (host only).
- Send {"type":"DropCard","card":{"color":"Red","rank":"5"}} to play.
- Send {"type":"TakeFromPile"} to draw.
- Send {"type":"PublishMessage","sender":"<name>","message":"..."} to chat.
- Receive PlayerStatusMessage after every change: your hand, the discard
  top, whose turn it is, and every other player's hand size.
- Receive WinnerMessage when somebody wins, and Ping as a keep-alive.

DECK:
- 76 cards: for each of Red, Yellow, Green and Blue there are two of each
  rank 1-9 and one 0.`

	return mcp.NewToolResultText(instructions), nil
}
