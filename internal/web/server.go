// Package web exposes the matching engine over HTTP so the review UI and
// the validation tooling can run mappings without shelling out to the CLI.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kozaktomas/photo-mapper/internal/ai"
	"github.com/kozaktomas/photo-mapper/internal/config"
)

// Server represents the web server
type Server struct {
	config     *config.Config
	comparator ai.Comparator
	router     *chi.Mux
	httpServer *http.Server
}

// NewServer creates a new web server. comparator may be nil; match requests
// then run the deterministic tier only.
func NewServer(cfg *config.Config, comparator ai.Comparator, port int, host string) *Server {
	r := chi.NewRouter()

	s := &Server{
		config:     cfg,
		comparator: comparator,
		router:     r,
	}

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(5 * time.Minute))

	r.Get("/api/v1/health", s.handleHealth)
	r.Post("/api/v1/match", s.handleMatch)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // AI passes can take a while on large pools
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down web server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing
func (s *Server) Router() *chi.Mux {
	return s.router
}
