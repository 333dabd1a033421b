package server

import (
	"context"
	"net/http"
	"time"

	"github.com/cmulenga/internhub-be/internal/auth"
	"github.com/cmulenga/internhub-be/internal/config"
	"github.com/cmulenga/internhub-be/internal/http/handlers"
	"github.com/cmulenga/internhub-be/internal/middleware"
	"github.com/cmulenga/internhub-be/internal/service"
	"github.com/cmulenga/internhub-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	roles := auth.NewRoleResolver(cfg.StudentDomains, cfg.AdminDomains)
	authService := service.NewAuthService(store, tokens, roles, cfg.AdminKeys, cfg.BcryptCost)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now(), store).Register(mux)
	handlers.NewAuthHandler(authService, tokens).Register(mux)
	handlers.NewInternshipHandler(store, tokens).Register(mux)
	handlers.NewApplicationHandler(store, tokens).Register(mux)
	handlers.NewEmployerHandler(store, store, tokens).Register(mux)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Handler exposes the configured route tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
