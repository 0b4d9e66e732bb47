// Package httpapi exposes the search pipeline over HTTP (spec §6.5):
// text-query search, embedding-query search, single-id and batch-id
// lookup, a health probe, and a Prometheus /metrics endpoint.
package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/annvec/annvec/internal/httpapi/middleware"
	"github.com/annvec/annvec/internal/kernel"
	"github.com/annvec/annvec/internal/observability"
)

// Config configures the HTTP server.
type Config struct {
	Addr      string
	Auth      middleware.AuthConfig
	RateLimit middleware.RateLimitConfig
}

// Server is the operational HTTP surface over a Kernel.
type Server struct {
	config     Config
	handler    *Handler
	httpServer *http.Server
	mux        *http.ServeMux
}

// NewServer builds a Server over the given Kernel.
func NewServer(config Config, k *kernel.Kernel, log *observability.Logger, metrics *observability.Metrics) *Server {
	if log == nil {
		log = observability.NewDefaultLogger()
	}
	s := &Server{
		config:  config,
		handler: NewHandler(k, log, metrics),
		mux:     http.NewServeMux(),
	}
	s.setupRoutes()
	s.httpServer = &http.Server{
		Addr:         config.Addr,
		Handler:      s.withMiddleware(s.mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/v1/health", s.handler.Health)
	s.mux.HandleFunc("/v1/search", s.handler.SearchText)
	s.mux.HandleFunc("/v1/search/embedding", s.handler.SearchEmbedding)
	s.mux.HandleFunc("/v1/items/batch", s.handler.GetItemsBatch)
	s.mux.HandleFunc("/v1/items/", s.handler.GetItem)
	s.mux.Handle("/metrics", promhttp.Handler())
}

func (s *Server) withMiddleware(h http.Handler) http.Handler {
	h = middleware.RateLimitMiddleware(middleware.NewRateLimiter(s.config.RateLimit))(h)
	h = middleware.AuthMiddleware(s.config.Auth)(h)
	return h
}

// ListenAndServe starts the HTTP server; it blocks until the server
// exits or fails.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Addr returns the server's bind address, for logging.
func (s *Server) Addr() string {
	return fmt.Sprintf("http://%s", s.config.Addr)
}
