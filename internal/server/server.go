package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/tracker"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	tracker *tracker.Tracker
	log     *slog.Logger
	apiKey  string
	version string
	whois   WhoIser
	router  chi.Router
}

// New creates a new Server with all routes configured. An empty apiKey
// leaves the API unauthenticated.
func New(t *tracker.Tracker, apiKey, version string, log *slog.Logger) *Server {
	s := &Server{
		tracker: t,
		log:     log,
		apiKey:  apiKey,
		version: version,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetTailscale resolves request identities through the tailnet instead of
// the local dev user.
func (s *Server) SetTailscale(w WhoIser) {
	s.whois = w
}

// MountMCP serves an MCP transport handler under /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identity)

	s.router.Route("/api/v1", func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}

		r.Get("/me", s.handleMe)
		r.Get("/version", s.handleVersion)
		r.Get("/state", s.handleState)
		r.Get("/progress", s.handleProgress)
		r.Get("/progress/{id}", s.handleExercise)
		r.Get("/logs", s.handleLogs)
		r.Get("/history", s.handleHistory)

		r.Post("/workouts/{name}/start", s.handleStart)

		r.Route("/session", func(r chi.Router) {
			r.Put("/date", s.handleSetDate)
			r.Post("/exercises/{id}/complete", s.handleCompleteSet)
			r.Post("/exercises/{id}/fail", s.handleFailSet)
			r.Post("/complete-all", s.handleCompleteAll)
			r.Get("/incomplete", s.handleIncompleteExercises)
			r.Post("/end", s.handleEnd)
			r.Post("/abandon", s.handleAbandon)
		})

		r.Post("/incomplete/resume", s.handleResume)
		r.Delete("/incomplete", s.handleDiscard)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", s.handleCatalog)
			r.Post("/workouts", s.handleAddWorkout)
			r.Put("/workouts/{name}", s.handleRenameWorkout)
			r.Delete("/workouts/{name}", s.handleRemoveWorkout)
			r.Put("/workouts/{name}/position", s.handleMoveWorkout)
			r.Put("/workouts/{name}/active", s.handleSetWorkoutActive)
			r.Post("/workouts/{name}/exercises", s.handleAddExercise)
			r.Delete("/workouts/{name}/exercises/{id}", s.handleRemoveExercise)
			r.Put("/workouts/{name}/exercises/{id}/position", s.handleMoveExercise)
			r.Put("/exercises/{id}/name", s.handleRenameExercise)
			r.Patch("/exercises/{id}", s.handleUpdateExercise)
		})

		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
		r.Post("/reset", s.handleReset)
	})
}
