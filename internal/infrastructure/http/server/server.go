// Package server provides the HTTP server and route assembly
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/net/http2"

	"github.com/pantrychef/v1/internal/application/auth"
	"github.com/pantrychef/v1/internal/application/favorites"
	"github.com/pantrychef/v1/internal/infrastructure/config"
	"github.com/pantrychef/v1/internal/infrastructure/http/handlers"
	"github.com/pantrychef/v1/internal/infrastructure/http/middleware"
	"github.com/pantrychef/v1/internal/ports/outbound"
)

// Server represents the HTTP server
type Server struct {
	config           *config.Config
	logger           *zap.Logger
	router           *chi.Mux
	server           *http.Server
	authService      *auth.Service
	favoritesService *favorites.Service
	generator        outbound.RecipeGenerator
	sessions         outbound.SessionStore
	registry         *prometheus.Registry
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authService *auth.Service,
	favoritesService *favorites.Service,
	generator outbound.RecipeGenerator,
	sessions outbound.SessionStore,
) *Server {
	s := &Server{
		config:           cfg,
		logger:           logger,
		authService:      authService,
		favoritesService: favoritesService,
		generator:        generator,
		sessions:         sessions,
		registry:         prometheus.NewRegistry(),
	}

	s.router = s.setupRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	return s
}

// Handler returns the assembled router, useful for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	metrics := middleware.NewMetrics(s.registry)

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.NoCache())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	}
	r.Use(metrics.Handler())

	cookie := handlers.CookieConfig{
		Name:   s.config.Auth.CookieName,
		Secure: s.config.Auth.CookieSecure,
	}

	authHandlers := handlers.NewAuthHandlers(s.authService, cookie, s.logger)
	favoritesHandlers := handlers.NewFavoritesHandlers(s.favoritesService, s.logger)
	generateHandlers := handlers.NewGenerateHandlers(s.generator, s.logger)
	healthHandlers := handlers.NewHealthHandlers(s.config.App.Version, s.logger)

	// Authentication
	r.Post("/signup", authHandlers.Signup)
	r.Post("/login", authHandlers.Login)
	r.Post("/logout", authHandlers.Logout)
	r.Get("/check-session", authHandlers.CheckSession)

	// Favorites require a valid session
	r.Route("/favorites", func(r chi.Router) {
		r.Use(middleware.RequireSession(s.sessions, s.config.Auth.CookieName))
		r.Get("/", favoritesHandlers.List)
		r.Post("/", favoritesHandlers.Add)
		r.Delete("/{id}", favoritesHandlers.Remove)
	})

	// Recipe generation
	r.Post("/generate-recipe", generateHandlers.Generate)

	// Operational endpoints
	r.Get("/health", healthHandlers.Health)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := http2.ConfigureServer(s.server, nil); err != nil {
		s.logger.Error("Failed to configure HTTP/2", zap.Error(err))
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
