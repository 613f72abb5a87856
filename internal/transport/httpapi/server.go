// Package httpapi serves the verse API plus health and metrics endpoints.
package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chikere/verseguide/internal/metrics"
)

// VerseLookup is the consumer interface for verse generation.
type VerseLookup interface {
	Lookup(ctx context.Context, query string) (string, error)
}

// Server handles the verse API routes.
type Server struct {
	verse  VerseLookup
	logger *zap.Logger
}

// NewServer creates the HTTP API server.
func NewServer(verse VerseLookup, logger *zap.Logger) *Server {
	return &Server{verse: verse, logger: logger}
}

// Router assembles the chi router with the full middleware chain.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(recoverer(s.logger))
	r.Use(wideEvent(s.logger))
	r.Use(metrics.Middleware())

	r.Get("/api/verse", s.handleVerse)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// handleVerse serves GET /api/verse?query=...
// The body is plain text: the formatted verse reply, or empty when the
// generator found nothing.
func (s *Server) handleVerse(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		http.Error(w, "missing query parameter", http.StatusBadRequest)
		return
	}

	reply, err := s.verse.Lookup(r.Context(), query)
	if err != nil {
		s.logger.Error("Verse lookup failed",
			zap.String("query", query),
			zap.Error(err),
		)
		http.Error(w, "verse lookup failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(reply))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
