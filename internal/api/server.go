package api

import (
	"log/slog"
	"net/http"

	"github.com/dnordby/reportscan/internal/analyze"
	"github.com/dnordby/reportscan/internal/config"
	"github.com/dnordby/reportscan/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for reportscan.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	claude       *analyze.ClaudeClient
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, claude *analyze.ClaudeClient, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		claude:       claude,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.ReportscanAPIKey, s.log))

		r.Post("/api/reports", s.handleSubmitReport)
		r.Post("/api/reports/batch", s.handleBatchSubmit)
		r.Get("/api/jobs/{jobID}/status", s.handleJobStatus)
		r.Get("/api/stats/llm", s.handleLLMStats)

		r.Get("/api/reports/{docHash}/overview", s.handleOverview)
		r.Get("/api/reports/{docHash}/score", s.handleScore)
		r.Delete("/api/reports/{docHash}", s.handleDeleteReport)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
