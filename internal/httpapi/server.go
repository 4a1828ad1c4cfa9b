// Package httpapi serves the latest telemetry report over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"siliconstats/internal/logger"
	"siliconstats/internal/sender"
	"siliconstats/internal/telemetry"
)

// Server is the read-only snapshot API.
type Server struct {
	latest  *sender.Latest
	enabled func() telemetry.MetricSet
	version string
	started time.Time

	httpServer *http.Server
}

// NewServer creates the API. enabled reports the metrics currently polled.
func NewServer(latest *sender.Latest, enabled func() telemetry.MetricSet, version string) *Server {
	return &Server{
		latest:  latest,
		enabled: enabled,
		version: version,
		started: time.Now(),
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": s.version,
			"uptime":  time.Since(s.started).Truncate(time.Second).String(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/snapshot", s.handleSnapshot)
		r.Get("/metrics", s.handleMetrics)
	})

	return r
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	report := s.latest.Get()
	if report == nil {
		writeError(w, http.StatusServiceUnavailable, "no snapshot collected yet")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type metricInfo struct {
	Name           string `json:"name"`
	Label          string `json:"label"`
	Enabled        bool   `json:"enabled"`
	DefaultEnabled bool   `json:"default_enabled"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	enabled := s.enabled()
	out := make([]metricInfo, 0, len(telemetry.AllMetrics()))
	for _, m := range telemetry.AllMetrics() {
		out = append(out, metricInfo{
			Name:           m.Name(),
			Label:          m.Label(),
			Enabled:        enabled.Has(m),
			DefaultEnabled: m.DefaultEnabled(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Start listens on addr and serves in the background. Listen errors are
// returned; serve errors after that are logged.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       time.Minute,
	}

	log := logger.WithComponent("httpapi")
	log.Info().Str("address", ln.Addr().String()).Msg("HTTP API listening")

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP API stopped")
		}
	}()
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
