// Command relayd serves the agent-communication envelope over HTTP,
// relaying chat messages to a hosted completion API with per-session
// history.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/agentwire/relay/agent"
	"github.com/agentwire/relay/rpc"
)

func main() {
	var (
		configFile   = flag.String("config", "", "Path to server config JSON file")
		listen       = flag.String("listen", "", "Listen address (overrides config)")
		model        = flag.String("model", "", "Completion model identifier (overrides config)")
		systemPrompt = flag.String("system-prompt", "", "System prompt (overrides config)")
		sessionPath  = flag.String("sessions", "", "SQLite session database path (overrides config; empty keeps in-memory sessions)")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := rpc.DefaultConfig()
	if *configFile != "" {
		loaded, err := rpc.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}

	if *listen != "" {
		cfg.Listen = *listen
	}
	if *model != "" {
		cfg.Relay.Completion.Model = *model
	}
	if *systemPrompt != "" {
		cfg.Relay.SystemPrompt = *systemPrompt
	}
	if *sessionPath != "" {
		cfg.Relay.Session.Backend = "sqlite"
		cfg.Relay.Session.Path = *sessionPath
	}

	registry := agent.NewRegistry()
	if err := registry.Register(cfg.DefaultAgent, cfg.Relay); err != nil {
		log.Fatalf("Failed to register default agent: %v", err)
	}
	for name, agentCfg := range cfg.Agents {
		if name == cfg.DefaultAgent {
			continue
		}
		if err := registry.Register(name, agentCfg); err != nil {
			log.Fatalf("Failed to register agent %q: %v", name, err)
		}
	}

	// Instantiate the default agent eagerly so credential problems surface
	// at startup instead of on the first request.
	defaultRelay, err := registry.Get(cfg.DefaultAgent)
	if err != nil {
		log.Fatalf("Failed to create default agent: %v", err)
	}
	defer func() {
		if closer, ok := defaultRelay.Store().(io.Closer); ok {
			closer.Close()
		}
	}()

	server := rpc.NewServer(registry, rpc.WithDefaultAgent(cfg.DefaultAgent))

	mux := http.NewServeMux()
	mux.Handle(server.Handler())

	httpServer := &http.Server{
		Addr:    cfg.Listen,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("relayd listening", "addr", cfg.Listen, "default_agent", cfg.DefaultAgent)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Fatalf("Shutdown failed: %v", err)
		}
	}
}
