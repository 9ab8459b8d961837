// Package api exposes the session surface as a local HTTP API consumed
// by the desktop shell.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nkapre/paperforge/internal/config"
	"github.com/nkapre/paperforge/internal/pipeline"
	"github.com/nkapre/paperforge/internal/schema"
	"github.com/nkapre/paperforge/internal/session"
)

// Server is the HTTP API server for paperforge.
type Server struct {
	router       chi.Router
	sess         *session.Session
	registry     *schema.Registry
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(sess *session.Session, registry *schema.Registry, orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		sess:         sess,
		registry:     registry,
		orchestrator: orch,
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

	// The shell runs on the same machine; auth is opt-in.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Get("/api/schemas", s.handleListSchemas)

		r.Get("/api/session", s.handleGetSession)
		r.Put("/api/session/schema", s.handleSelectSchema)
		r.Put("/api/session/mode", s.handleSetMode)
		r.Get("/api/session/preview", s.handlePreview)
		r.Post("/api/session/segment", s.handleSegment)

		r.Post("/api/session/blocks", s.handleAddBlock)
		r.Patch("/api/session/blocks/{blockID}", s.handleUpdateBlock)
		r.Delete("/api/session/blocks/{blockID}", s.handleDeleteBlock)

		r.Post("/api/uploads/section/{sectionID}", s.handleSectionUpload)
		r.Post("/api/uploads/document", s.handleDocumentUpload)
		r.Get("/api/uploads/{jobID}", s.handleJobStatus)

		r.Post("/api/export", s.handleExport)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
