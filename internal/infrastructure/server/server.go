package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/postkeeper/core/docs"
	"github.com/postkeeper/core/internal/adapters/filestore"
	httpHandlers "github.com/postkeeper/core/internal/adapters/http"
	"github.com/postkeeper/core/internal/adapters/repository"
	"github.com/postkeeper/core/internal/application/services"
	"github.com/postkeeper/core/internal/infrastructure/config"
	"github.com/postkeeper/core/internal/infrastructure/logger"
)

// Server represents the HTTP server
type Server struct {
	echo     *echo.Echo
	config   *config.Config
	logger   *logger.Logger
	store    *filestore.RecordStore
	posts    *repository.PostRepositoryImpl
	registry *prometheus.Registry
}

// New creates a new server instance
func New(cfg *config.Config, store *filestore.RecordStore, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.Validator = services.NewPostValidator()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	e.HTTPErrorHandler = customErrorHandler(appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		store:  store,
	}

	repoOpts := []repository.Option{repository.WithStrictReplace(cfg.Store.StrictReplace)}
	if cfg.Metrics.Enabled {
		server.registry = prometheus.NewRegistry()
		server.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		repoOpts = append(repoOpts, repository.WithMetrics(repository.NewMetrics(server.registry)))
	}

	server.posts = repository.NewPostRepository(store, repoOpts...)
	postService := services.NewPostService(server.posts, appLogger)
	postHandler := httpHandlers.NewPostHandler(postService, appLogger.WithComponent("http"))

	server.setupMiddleware()
	server.setupRoutes(postHandler)

	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(postHandler *httpHandlers.PostHandler) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	if s.config.Docs.Enabled {
		s.echo.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// API v1 routes
	v1 := s.echo.Group("/api/v1")
	postHandler.Register(v1.Group("/blogs"))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	count, err := s.posts.Count(c.Request().Context())
	if err != nil {
		s.logger.Warnw("Readiness check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "store_unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ready",
		"store":  s.store.Path(),
		"posts":  count,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}
