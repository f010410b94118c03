package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Runner triggers one ingestion run and reports the staged-article count.
type Runner interface {
	Run(ctx context.Context) (int, error)
}

// Server exposes the HTTP trigger endpoint a periodic scheduler invokes.
type Server struct {
	runner Runner
	logger *slog.Logger
}

// New wires the pipeline runner.
func New(runner Runner, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the chi router with the trigger and liveness endpoints.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/fetch", s.handleFetch)
	r.Post("/fetch", s.handleFetch)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleFetch runs the full pipeline synchronously. The caller only ever
// sees the aggregate count or a generic failure; detail stays in the logs.
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	count, err := s.runner.Run(r.Context())
	if err != nil {
		s.logger.Error("run failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "合計 %d 件の記事を保存しました。", count)
}
