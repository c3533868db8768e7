// Package server is the browser front-end: it serves the viewer page and a small JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"graphview/internal/config"
	"graphview/internal/database/graph"
	"graphview/internal/rag"
	"graphview/internal/render"
	"graphview/internal/viewer"
)

// GraphService is the slice of the graph client the API needs.
type GraphService interface {
	graph.Author
	SampleGraph(ctx context.Context, query string) (*graph.Sample, error)
}

// Assistant is the LLM-backed part of the API.
type Assistant interface {
	Query(ctx context.Context, question string) (*rag.Answer, error)
	GenerateGraphCypher(ctx context.Context, concept string) (string, error)
	GenerateUpdateCypher(ctx context.Context, update string) (string, error)
	GraphCypherFromLink(ctx context.Context, url string) (string, error)
	UpdateCypherFromLink(ctx context.Context, url string) (string, error)
}

// Options wires a Server. Graph and Assistant may be nil; the routes that need them answer 503.
type Options struct {
	Config    config.Config
	Fetcher   viewer.Fetcher
	Graph     GraphService
	Assistant Assistant
	Logger    *slog.Logger
}

// Server hosts the viewer over HTTP.
type Server struct {
	cfg       config.Config
	fetcher   viewer.Fetcher
	graph     GraphService
	assistant Assistant
	page      *render.Page
	logger    *slog.Logger
	router    chi.Router
}

// New creates a Server and registers its routes.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:       opts.Config,
		fetcher:   opts.Fetcher,
		graph:     opts.Graph,
		assistant: opts.Assistant,
		page:      render.NewPage("graphview", opts.Config.View),
		logger:    logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.RecoveryMiddleware, s.LoggingMiddleware, s.CorsMiddleware)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/schema", s.handleSchema)
		r.Get("/style", s.handleStyle)
		r.Get("/sample", s.handleSample)
		r.Post("/query", s.handleQuery)

		r.Route("/graph", func(r chi.Router) {
			r.Post("/", s.handleCreateGraph)
			r.Post("/update", s.handleUpdateGraph)
			r.Post("/concept", s.handleConceptGraph)
			r.Post("/concept/update", s.handleConceptUpdate)
			r.Post("/link", s.handleLinkGraph)
			r.Post("/link/update", s.handleLinkUpdate)
		})
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on the configured address until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTP.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("graphview server listening", "addr", s.cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down graphview server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
