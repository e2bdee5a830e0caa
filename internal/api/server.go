package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pythonix/internal/auth"
	"pythonix/internal/store"
)

// Config holds configuration for the HTTP service.
type Config struct {
	// Addr is the host:port to listen on (e.g., ":8080").
	Addr string

	// JWTSecret signs bearer tokens. Must be non-empty in production.
	JWTSecret string

	// UserTokenTTL is the lifetime of registered-user tokens.
	UserTokenTTL time.Duration

	// GuestTokenTTL is the shorter lifetime of guest tokens.
	GuestTokenTTL time.Duration
}

// DefaultConfig returns a config with the standard token lifetimes.
func DefaultConfig() Config {
	return Config{
		Addr:          ":8080",
		UserTokenTTL:  30 * 24 * time.Hour,
		GuestTokenTTL: 7 * 24 * time.Hour,
	}
}

// Server is the stateless-per-request HTTP service over the store.
type Server struct {
	config Config
	store  *store.Store
	tokens *auth.Tokens
	logger *log.Logger
	router chi.Router
}

// NewServer wires the routes over an already-open store.
func NewServer(cfg Config, st *store.Store) *Server {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pythonix-api",
	})

	s := &Server{
		config: cfg,
		store:  st,
		tokens: auth.NewTokens(cfg.JWTSecret, cfg.UserTokenTTL, cfg.GuestTokenTTL),
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/guest", s.handleGuest)
		r.With(s.requireAuth).Get("/profile", s.handleProfile)
	})

	r.Route("/leaderboard", func(r chi.Router) {
		r.With(s.optionalAuth).Get("/global", s.handleLeaderboard)
		r.With(s.requireAuth).Get("/personal", s.handlePersonal)
	})

	r.With(s.optionalAuth).Post("/scores", s.handleSubmitScore)
	r.With(s.optionalAuth).Post("/sessions", s.handleCreateSession)

	r.Route("/user", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/settings", s.handleSaveSettings)
		r.Post("/achievements", s.handleSaveAchievements)
	})

	s.router = r
	return s
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// requestLogger logs method, path, status and duration for each request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
