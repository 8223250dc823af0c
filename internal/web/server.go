package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/saltyorg/fitcenter/internal/config"
	"github.com/saltyorg/fitcenter/internal/web/handlers"
	"github.com/saltyorg/fitcenter/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	cfg      config.ServerConfig
	router   *chi.Mux
	handlers *handlers.Handlers
}

// NewServer creates a new web server
func NewServer(db handlers.Store, cfg config.Config) *Server {
	s := &Server{
		cfg:    cfg.Server,
		router: chi.NewRouter(),
		handlers: handlers.New(db, handlers.Options{
			StrictAffectedRows: cfg.StrictAffectedRows,
		}),
	}

	s.setupRoutes()

	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	r := s.router
	h := s.handlers

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(s.cfg.CORSOrigins))
	r.Use(chimiddleware.Timeout(s.cfg.RequestTimeout))

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Route("/members", func(r chi.Router) {
		r.Post("/", h.MemberCreate)
		r.Get("/{id:[0-9]+}", h.MemberGet)
		r.Put("/{id:[0-9]+}", h.MemberUpdate)
		r.Delete("/{id:[0-9]+}", h.MemberDelete)
		r.Get("/{id:[0-9]+}/workout_sessions", h.MemberWorkoutSessions)
	})

	r.Route("/workout_sessions", func(r chi.Router) {
		r.Post("/", h.WorkoutSessionCreate)
		r.Put("/{id:[0-9]+}", h.WorkoutSessionUpdate)
		r.Delete("/{id:[0-9]+}", h.WorkoutSessionDelete)
	})
}

// Start starts the web server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	addr := s.cfg.Addr()

	server := &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: s.cfg.ReadTimeout,
		IdleTimeout: s.cfg.IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
