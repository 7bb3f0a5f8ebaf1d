// Package monitor serves a read-only HTTP view of a running pipeline.
package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cwbudde/algo-sensorpipe/config"
	"github.com/cwbudde/algo-sensorpipe/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// Pipeline is the view of a controller the monitor reads from.
type Pipeline interface {
	Last() pipeline.Result
	Ticks() uint64
	Store() *config.Store
}

// Status is the body of GET /status.
type Status struct {
	Ticks    uint64          `json:"ticks"`
	Last     pipeline.Result `json:"last"`
	Filter   bool            `json:"filter"`
	Warm     bool            `json:"warm"`
	Uptime   string          `json:"uptime"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Server is the monitor HTTP server.
type Server struct {
	addr    string
	p       Pipeline
	warm    func() bool
	router  *chi.Mux
	logger  *slog.Logger
	started time.Time
}

// New builds a monitor for p listening on addr. warm reports whether the
// FIR window is full and may be nil.
func New(addr string, p Pipeline, warm func() bool, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if warm == nil {
		warm = func() bool { return false }
	}

	s := &Server{
		addr:    addr,
		p:       p,
		warm:    warm,
		router:  chi.NewRouter(),
		logger:  logger,
		started: time.Now(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Get("/config", s.handleConfig)
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("monitor listening", slog.String("addr", s.addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("monitor shutdown", slog.Any("error", err))
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	cfg := s.p.Store().Snapshot()
	s.writeJSON(w, Status{
		Ticks:    s.p.Ticks(),
		Last:     s.p.Last(),
		Filter:   cfg.Filter,
		Warm:     s.warm(),
		Uptime:   time.Since(s.started).Round(time.Millisecond).String(),
		Warnings: cfg.Warnings(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.p.Store().Snapshot())
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("monitor encode", slog.Any("error", err))
	}
}
