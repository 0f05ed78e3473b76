// Package server provides HTTP server management and lifecycle handling for
// the KEGG API. It includes server setup, middleware configuration, route
// management, and graceful shutdown capabilities with proper error handling
// and logging.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/giygas/kegg-api/config"
	"github.com/giygas/kegg-api/data"
	"github.com/giygas/kegg-api/handlers"
	"github.com/giygas/kegg-api/health"
	"github.com/giygas/kegg-api/interfaces"
	"github.com/giygas/kegg-api/logging"
	"github.com/giygas/kegg-api/metrics"
	"github.com/giygas/kegg-api/validation"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the HTTP server
type Server struct {
	server        *http.Server
	router        chi.Router
	dataContainer *data.Container
	fetcher       interfaces.Fetcher
	config        *config.Config
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, dataContainer *data.Container, fetcher interfaces.Fetcher) *Server {
	router := chi.NewRouter()

	server := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 90 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:        router,
		dataContainer: dataContainer,
		fetcher:       fetcher,
		config:        cfg,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.DefaultLoggingService.Logger))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(RateLimitHandler)
	s.router.Use(metrics.Metrics)
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	validator := validation.NewDataValidator()
	healthChecker := health.NewHealthChecker(s.dataContainer)

	// Dataset routes served from the in-memory container
	s.router.Get("/pathways", handlers.ServePathways(s.dataContainer))
	s.router.Get("/genes", handlers.ServeAnnotations(s.dataContainer))
	s.router.Get("/genes/pathways", handlers.ServeGeneLinks(s.dataContainer))

	// Record routes fetched on demand and parsed from flat-file text
	s.router.Get("/pathways/{pathid}", handlers.ServePathwayEntry(s.fetcher, validator))
	s.router.Get("/modules/{mdid}", handlers.ServeModuleEntry(s.fetcher, validator))
	s.router.Get("/entries/{entryID}", handlers.ServeEntry(s.fetcher, validator))

	// TSV exports
	s.router.Get("/export/pathways.tsv", handlers.ExportPathways(s.dataContainer))
	s.router.Get("/export/genes.tsv", handlers.ExportGeneLinks(s.dataContainer))
	s.router.Get("/export/annotations.tsv", handlers.ExportAnnotations(s.dataContainer))

	// Operational routes
	s.router.Get("/health", handlers.HealthCheck(healthChecker))
	s.router.Handle("/metrics", promhttp.Handler())
}

// Start starts the server
func (s *Server) Start() error {
	// Start profiling server if in development mode
	if s.config.Env == "dev" {
		s.startProfilingServer()
	}

	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		// If graceful shutdown fails, force close
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	// Wait a bit for any ongoing requests to complete
	logging.Info("Waiting for ongoing requests to complete...")
	time.Sleep(2 * time.Second)

	logging.Info("Server shutdown complete")
	return nil
}

// startProfilingServer starts the pprof profiling server in development mode
func (s *Server) startProfilingServer() {
	go func() {
		fmt.Println("Profiling server started at http://localhost:6060/debug/pprof/")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			fmt.Println("Profiling server failed: ", err)
		}
	}()
}
