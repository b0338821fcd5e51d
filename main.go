// Command unogame starts the Uno Card Game Server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket joins, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, the rules file, debug logging, version output,
// and optional ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/mcp-training/unogame/api"
	"github.com/wricardo/mcp-training/unogame/game/config"
	"github.com/wricardo/mcp-training/unogame/game/service"
	"github.com/wricardo/mcp-training/unogame/game/session"
	"github.com/wricardo/mcp-training/unogame/transport/mcp"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Uno Card Game Server"
)

// Configuration flags control how the server starts and which services are enabled.
var (
	port         = flag.Int("port", 8080, "HTTP server port")
	host         = flag.String("host", "localhost", "HTTP server host")
	rulesPath    = flag.String("rules", getRulesPathDefault(), "Path to a JSON rules file (empty for defaults)")
	debug        = flag.Bool("debug", false, "Enable debug logging")
	version      = flag.Bool("version", false, "Show version information")
	ngrokEnabled = flag.Bool("ngrok", false, "Enable ngrok tunnel")
	ngrokAuth    = flag.String("ngrok-auth", "", "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	ngrokDomain  = flag.String("ngrok-domain", "", "Custom ngrok domain (optional)")
)

// getRulesPathDefault returns the default rules file path.
// It honors the RULES_FILE environment variable; empty means built-in defaults.
func getRulesPathDefault() string {
	return os.Getenv("RULES_FILE")
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  server, http     Run HTTP server with API, WebSocket, and MCP endpoint (default)\n")
		fmt.Fprintf(os.Stderr, "  stdio-mcp        Run MCP stdio server with internal HTTP server\n")
		fmt.Fprintf(os.Stderr, "  mcp-stdio        Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "  mcp              Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                    # Run HTTP server on default port 8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -port 9090         # Run HTTP server on port 9090\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s stdio-mcp          # Run MCP stdio server\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s mcp -port 9090     # Run MCP stdio server with internal HTTP on port 9090\n", os.Args[0])
	}
}

// main parses flags, initializes services, and starts the selected mode.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	flag.Parse()

	// Show version if requested
	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Determine mode from command
	args := flag.Args()
	mode := "server" // default
	if len(args) > 0 {
		mode = args[0]
	}

	logger.Info("starting",
		zap.String("app", AppName),
		zap.String("version", Version),
		zap.String("mode", mode))

	// Initialize services
	gameService, manager, rules, err := initializeServices(logger)
	if err != nil {
		logger.Fatal("failed to initialize services", zap.Error(err))
	}

	switch mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		// Run MCP stdio server with internal HTTP server
		runStdioMCPWithInternalServer(gameService, manager, rules, logger)
		return

	case "server", "http":
		// Run HTTP server with API, WebSocket joins, and MCP endpoint
		runHTTPServer(gameService, manager, rules, logger)

	default:
		logger.Fatal("unknown mode, use 'server' (default) or 'stdio-mcp'", zap.String("mode", mode))
	}
}

// newLogger builds the process logger. Debug mode switches to the
// development config with human-readable output.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// initializeServices loads the rules, wires the session registry and the
// game service, and starts the abandoned-game collector.
func initializeServices(logger *zap.Logger) (service.GameService, *session.Manager, config.Rules, error) {
	rules, err := config.Load(*rulesPath)
	if err != nil {
		return nil, nil, config.Rules{}, fmt.Errorf("load rules: %w", err)
	}

	manager := session.NewManager(rules, logger)
	gameService := service.NewGameService(manager, logger)

	// Start abandoned-game collector
	go collectorRoutine(manager, rules.SweepInterval(), logger)

	return gameService, manager, rules, nil
}

// collectorRoutine periodically removes games that have no players left.
func collectorRoutine(manager *session.Manager, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CollectAbandoned()
		if removed > 0 {
			logger.Info("collected abandoned games", zap.Int("removed", removed))
		}
	}
}

// newRouter combines the REST API with the /mcp proxy endpoint.
func newRouter(apiServer *api.Server, mcpClient *mcp.Client) http.Handler {
	mainRouter := http.NewServeMux()

	// Mount API server at root
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	return mainRouter
}

// runHTTPServer starts the HTTP server with REST API, websocket joins, and an /mcp proxy endpoint.
// If ngrok is enabled (via flag or environment), it also provisions a public tunnel.
func runHTTPServer(gameService service.GameService, manager *session.Manager, rules config.Rules, logger *zap.Logger) {
	apiServer := api.NewServer(gameService, manager, rules, Version, logger)

	addr := fmt.Sprintf("%s:%d", *host, *port)

	// Create MCP client for /mcp endpoint
	baseURL := fmt.Sprintf("http://%s", addr)
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := newRouter(apiServer, mcpClient)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mainRouter,
		// No ReadTimeout/WriteTimeout: websocket connections stay open for
		// the lifetime of a player.
		IdleTimeout: 60 * time.Second,
	}

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	// Start regular HTTP server
	wg.Add(1)
	go func() {
		defer wg.Done()

		logger.Info("HTTP server listening", zap.String("addr", addr))
		logger.Info("endpoints",
			zap.String("rest", fmt.Sprintf("http://%s/api", addr)),
			zap.String("join", fmt.Sprintf("ws://%s/games/{id}/join?name=<name>", addr)),
			zap.String("mcp", fmt.Sprintf("http://%s/mcp", addr)))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Check if ngrok should be enabled (from flag or environment)
	ngrokShouldRun := *ngrokEnabled
	if !ngrokShouldRun {
		if envEnabled := os.Getenv("NGROK_ENABLED"); envEnabled == "true" || envEnabled == "1" {
			ngrokShouldRun = true
		}
	}

	// Start ngrok tunnel if enabled
	if ngrokShouldRun {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Get auth token from flag or environment (support both naming conventions)
			authToken := *ngrokAuth
			if authToken == "" {
				authToken = os.Getenv("NGROK_AUTHTOKEN")
				if authToken == "" {
					authToken = os.Getenv("NGROK_AUTH_TOKEN")
				}
			}

			if authToken == "" {
				logger.Warn("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
				return
			}

			logger.Info("starting ngrok tunnel")

			// Get domain from flag or environment
			domain := *ngrokDomain
			if domain == "" {
				domain = os.Getenv("NGROK_DOMAIN")
			}

			// Configure ngrok endpoint
			var tunnel ngrokConfig.Tunnel
			if domain != "" {
				tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
				logger.Info("using custom ngrok domain", zap.String("domain", domain))
			} else {
				tunnel = ngrokConfig.HTTPEndpoint()
			}

			// Start ngrok tunnel
			tun, err := ngrok.Listen(ctx,
				tunnel,
				ngrok.WithAuthtoken(authToken),
			)
			if err != nil {
				logger.Error("failed to start ngrok tunnel", zap.Error(err))
				return
			}
			defer func() {
				if err := tun.Close(); err != nil {
					logger.Error("failed to close ngrok tunnel", zap.Error(err))
				}
			}()

			ngrokURL := tun.URL()
			logger.Info("ngrok tunnel established", zap.String("url", ngrokURL))

			// Serve HTTP through ngrok tunnel
			if err := http.Serve(tun, mainRouter); err != nil && err != http.ErrServerClosed {
				logger.Error("ngrok server error", zap.Error(err))
			}
			logger.Info("ngrok tunnel closed")
		}()
	}

	// Wait for shutdown signal
	sig := <-stop
	logger.Info("shutting down", zap.String("signal", sig.String()))
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	// Disconnect every player and drop all games.
	manager.CloseAll()

	// Wait for all goroutines to finish
	wg.Wait()
	logger.Info("server stopped")
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an external API at http://localhost:8080; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(gameService service.GameService, manager *session.Manager, rules config.Rules, logger *zap.Logger) {
	var baseURL string
	var httpServer *http.Server
	var listener net.Listener

	// First, try to connect to external API server at localhost:8080
	externalURL := "http://localhost:8080"
	logger.Info("checking for external API server", zap.String("url", externalURL))

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/healthz")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		logger.Info("external API server found, using it for MCP", zap.String("url", externalURL))
		baseURL = externalURL
	} else {
		// No external server found, start internal one
		listener, err = net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			logger.Fatal("failed to get available port", zap.Error(err))
		}

		internalPort := listener.Addr().(*net.TCPAddr).Port
		internalAddr := fmt.Sprintf("127.0.0.1:%d", internalPort)

		logger.Info("starting internal HTTP server for MCP stdio", zap.String("addr", internalAddr))

		apiServer := api.NewServer(gameService, manager, rules, Version, logger)

		httpServer = &http.Server{
			Handler: apiServer,
		}

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				logger.Error("internal HTTP server error", zap.Error(err))
			}
		}()

		// Wait a moment for the server to be ready
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	// Create MCP client pointing to the selected server
	mcpClient := mcp.NewClient(baseURL)

	logger.Info("MCP stdio server ready", zap.String("api", baseURL))

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		logger.Fatal("MCP stdio server error", zap.Error(err))
	}
}
