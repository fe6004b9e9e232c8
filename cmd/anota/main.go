// Anota: WhatsApp notes & reminders bot.
//
// Inbound messages arrive on a Twilio webhook, a Spanish command
// grammar drives a SQLite-backed note/reminder store, and due
// reminders go back out through the Twilio REST API.
//
// Usage:
//
//	anota serve     # Start the HTTP server (webhook + dispatch)
//	anota mcp       # Expose the note store over MCP (stdio)
//	anota version   # Print the version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpgo "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/HendryAvila/anota/internal/config"
	"github.com/HendryAvila/anota/internal/mcpserver"
	"github.com/HendryAvila/anota/internal/server"
	"github.com/HendryAvila/anota/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := runMCP(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("anota v%s\n", server.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe() error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	srv, cleanup, err := server.New(cfg, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Graceful shutdown on interrupt.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

func runMCP() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	st, err := store.New(store.Config{DataDir: cfg.DataDir})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() { _ = st.Close() }()

	return mcpgo.ServeStdio(mcpserver.New(st, server.Version))
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if os.Getenv("ANOTA_DEBUG") != "" {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Anota v%s — WhatsApp notes & reminders bot

Usage:
  anota serve     Start the HTTP server (webhook, health, dispatch)
  anota mcp       Expose the note store over MCP (stdio transport)
  anota version   Print the version

Configuration (environment):
  ANOTA_ADDR               Listen address (default ":8080")
  ANOTA_DATA_DIR           SQLite directory (default ~/.anota)
  ANOTA_DISPATCH_INTERVAL  In-process reminder sweep interval (e.g. "60s")
  ANOTA_PERSONA            Persona for the AI fallback
  TWILIO_ACCOUNT_SID       Twilio credentials; absent disables
  TWILIO_AUTH_TOKEN          reminder delivery
  TWILIO_FROM              Sender address, e.g. "whatsapp:+14155238886"
  GEMINI_API_KEY           Gemini key; absent disables the AI fallback
`, server.Version)
}
