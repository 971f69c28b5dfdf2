// Package server provides HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"inkwell/src/app/http/handler"
	"inkwell/src/app/http/response"
	"inkwell/src/app/middleware"
	"inkwell/src/core/ports"
	"inkwell/src/core/usecase"
	"inkwell/src/infra/config"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	tokens ports.TokenIssuer
	router *gin.Engine
	http   *http.Server

	// Handlers
	healthHandler   *handler.HealthHandler
	authHandler     *handler.AuthHandler
	postHandler     *handler.PostHandler
	categoryHandler *handler.CategoryHandler
	uploadHandler   *handler.UploadHandler
}

// New creates a new Server with all dependencies wired up.
func New(cfg *config.Config, log *slog.Logger, repo ports.BlogRepository, tokens ports.TokenIssuer) *Server {
	// Set Gin mode based on log level
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router without default middleware
	router := gin.New()

	// Create services
	healthService := usecase.NewHealthService(repo, log)
	authService := usecase.NewAuthService(repo, tokens, log)
	postQuery := usecase.NewPostQueryService(repo, log)
	postMutation := usecase.NewPostMutationService(repo, log)
	categoryService := usecase.NewCategoryService(repo, log)

	s := &Server{
		cfg:             cfg,
		log:             log,
		tokens:          tokens,
		router:          router,
		healthHandler:   handler.NewHealthHandler(healthService),
		authHandler:     handler.NewAuthHandler(authService),
		postHandler:     handler.NewPostHandler(postQuery, postMutation),
		categoryHandler: handler.NewCategoryHandler(categoryService),
		uploadHandler:   handler.NewUploadHandler(cfg.Upload),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	// Order matters: Recovery should be first to catch all panics
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.Logging(s.log))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check endpoints (no auth required)
	s.router.GET("/health", s.healthHandler.Health)
	s.router.GET("/health/detailed", s.healthHandler.DetailedHealth)

	// Uploaded images are served statically.
	s.router.Static("/uploads", s.cfg.Upload.Dir)

	auth := middleware.Auth(s.tokens)

	api := s.router.Group("/api")
	{
		// Auth
		api.POST("/auth/register", s.authHandler.Register)
		api.POST("/auth/login", s.authHandler.Login)

		// Posts
		api.GET("/posts", s.postHandler.List)
		api.POST("/posts", auth, s.postHandler.Create)
		api.POST("/posts/upload", auth, s.uploadHandler.Upload)
		api.GET("/posts/:id", s.postHandler.Get)
		api.PUT("/posts/:id", auth, s.postHandler.Update)
		api.DELETE("/posts/:id", auth, s.postHandler.Delete)
		api.POST("/posts/:id/comments", auth, s.postHandler.AddComment)

		// Categories
		api.GET("/categories", s.categoryHandler.List)
		api.POST("/categories", auth, s.categoryHandler.Create)
	}

	// Handle 404
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response.Error{
			Error: response.ErrorDetail{
				Code:      "NOT_FOUND",
				Message:   "The requested resource was not found",
				RequestID: middleware.GetRequestID(c),
			},
		})
	})
}

// setupHTTPServer configures the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until shutdown.
// It handles graceful shutdown on SIGINT/SIGTERM.
func (s *Server) Run() error {
	// Channel to receive shutdown signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Channel to receive server errors
	errCh := make(chan error, 1)

	// Start server in goroutine
	go func() {
		s.log.Info("starting HTTP server",
			"addr", s.cfg.Server.Addr(),
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-quit:
		s.log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	// Graceful shutdown
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}
