package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yegors/rwy-assign/internal/config"
	"github.com/yegors/rwy-assign/internal/sequencer"
	"github.com/yegors/rwy-assign/internal/storage/sqlite"
	"github.com/yegors/rwy-assign/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(seq *sequencer.Service, storage *sqlite.AssignmentStorage, cfg *config.Config, log *logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(seq, storage, cfg, log),
		middleware: NewMiddleware(log),
		config:     cfg,
		logger:     log.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	router.Route("/api/v1", func(router chi.Router) {
		// Latest classification cycle
		router.Get("/assignments", r.handler.GetAssignments)

		// Persisted history
		router.Get("/assignments/history", r.handler.GetAssignmentHistory)
		router.Get("/assignments/callsign/{callsign}", r.handler.GetAssignmentsByCallsign)
		router.Get("/assignments/runway/{id}", r.handler.GetAssignmentsByRunway)

		// Reference data and configuration
		router.Get("/runways", r.handler.GetRunways)
		router.Get("/station", r.handler.GetStation)
		router.Get("/scoring", r.handler.GetScoringParams)

		// Health check
		router.Get("/health", r.handler.GetHealth)
	})

	return router
}
