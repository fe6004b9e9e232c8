// Package server wires all components and runs the HTTP surface.
//
// This is the composition root: it opens the store, constructs the
// Twilio sender, the fallback client, the command router, and the
// reminder dispatcher, and injects them where they are needed. No
// business logic lives here, only wiring.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/HendryAvila/anota/internal/command"
	"github.com/HendryAvila/anota/internal/config"
	"github.com/HendryAvila/anota/internal/dispatch"
	"github.com/HendryAvila/anota/internal/fallback"
	"github.com/HendryAvila/anota/internal/store"
	"github.com/HendryAvila/anota/internal/twilio"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Server owns the HTTP listener and the wired components.
type Server struct {
	cfg        config.Config
	log        *zap.Logger
	router     *command.Router
	dispatcher *dispatch.Dispatcher
	http       *http.Server
}

// New resolves all dependencies and returns the server plus a cleanup
// function that closes the store. A store that fails to open or
// migrate is a fatal condition: without it neither notes nor
// reminders can work at all. Missing Twilio or Gemini credentials
// only disable their feature.
func New(cfg config.Config, log *zap.Logger) (*Server, func(), error) {
	st, err := store.New(store.Config{DataDir: cfg.DataDir})
	if err != nil {
		return nil, noop, fmt.Errorf("opening store: %w", err)
	}
	cleanup := func() { _ = st.Close() }

	var sender dispatch.Sender
	if cfg.Twilio.Enabled() {
		sender = twilio.NewSender(cfg.Twilio)
	} else {
		log.Warn("Twilio credentials absent: reminder delivery disabled")
	}

	var responder command.Responder
	if cfg.Gemini.Enabled() {
		fb, err := fallback.New(context.Background(), cfg.Gemini.APIKey, cfg.Persona)
		if err != nil {
			cleanup()
			return nil, noop, fmt.Errorf("creating fallback client: %w", err)
		}
		responder = fb
	} else {
		log.Warn("Gemini credentials absent: AI fallback disabled")
	}

	s := &Server{
		cfg:        cfg,
		log:        log,
		router:     command.New(st, responder, log),
		dispatcher: dispatch.New(st, sender, log),
	}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Recoverer)

	mux.Get("/webhook", s.handleWebhookGet)
	mux.Post("/webhook", s.handleWebhook)
	mux.Get("/healthz", s.handleHealth)
	mux.Post("/dispatch", s.handleDispatch)

	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s, cleanup, nil
}

// Handler exposes the HTTP mux, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
// When a dispatch interval is configured it also runs the in-process
// reminder ticker.
func (s *Server) Run(ctx context.Context) error {
	if s.cfg.DispatchInterval > 0 {
		go s.dispatcher.Loop(ctx, s.cfg.DispatchInterval)
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.cfg.Addr), zap.String("version", Version))
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func noop() {}
