// Package server provides the HTTP API for the JD fit-checker.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/jdfit/internal/config"
	"github.com/jonathan/jdfit/internal/logger"
	"github.com/jonathan/jdfit/internal/server/middleware"
	"github.com/jonathan/jdfit/internal/types"
)

// Routes
const (
	MatchPath      = "/api/agents/jd"
	MatchAliasPath = "/api/jd"
	HealthPath     = "/health"
)

const contentTypeJSON = "application/json; charset=utf-8"

// Assessor runs the fit-check pipeline for one request
type Assessor interface {
	Assess(ctx context.Context, req types.MatchRequest) (*types.Assessment, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	cfg          *config.Config
	assessor     Assessor
	maxBodyBytes int64
}

// New creates a new server instance. assessor may be nil when no API key is configured;
// match requests then fail with a configuration error before reading the body.
func New(cfg *config.Config, assessor Assessor) *Server {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Server{
		cfg:          cfg,
		assessor:     assessor,
		maxBodyBytes: config.MaxBodyBytes,
	}

	// Setup router. The match routes take every method so non-POST gets the JSON 405.
	mux := http.NewServeMux()
	mux.HandleFunc(MatchPath, s.handleMatch)
	mux.HandleFunc(MatchAliasPath, s.handleMatch)
	mux.HandleFunc("GET "+HealthPath, s.handleHealth)

	// Create HTTP server; writes must outlive the provider call
	writeTimeout := 5 * time.Minute
	if cfg.LLMTimeout > 0 {
		writeTimeout = cfg.LLMTimeout + 15*time.Second
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           middleware.RequestID(middleware.AccessLog(s.withCORS(mux))),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Handler returns the root handler, middleware included
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start listens until SIGINT/SIGTERM, then shuts down gracefully
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles connections on ln until ctx is done, then drains in-flight requests
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", ln.Addr().String()).Msg("Server starting")
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info().Msg("Server stopped")
	return nil
}

// withCORS adds CORS headers for the portfolio widget
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Ctx(r.Context()).Error().Err(err).Msg("Error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.jsonResponse(w, r, status, map[string]string{"error": message})
}
