// Package http provides the HTTP servers of the application: the public API server
// and the separate metrics server.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
	authHTTP "github.com/allisson/workshop-users/internal/auth/http"
	"github.com/allisson/workshop-users/internal/config"
	"github.com/allisson/workshop-users/internal/metrics"
	userHTTP "github.com/allisson/workshop-users/internal/user/http"
)

// readinessTimeout bounds the database ping of the readiness probe.
const readinessTimeout = 2 * time.Second

// Server is the public API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new Server. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db: db,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// SetupRouter builds the gin engine with the middleware chain and all routes.
//
// Every request passes through the authentication middleware, which only resolves
// the caller. Route access is decided by the RequireAuthority and RequireAnyRole
// gates attached per route.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	authHandler *authHTTP.AuthHandler,
	userHandler *userHTTP.UserHandler,
	authenticator *authHTTP.Authenticator,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	api := router.Group("/api/v1")
	api.Use(authHTTP.AuthenticationMiddleware(authenticator, s.logger))

	auth := api.Group("/auth")
	{
		loginHandlers := []gin.HandlerFunc{}
		if cfg.RateLimitLoginEnabled {
			loginHandlers = append(loginHandlers, authHTTP.LoginRateLimitMiddleware(
				ctx,
				cfg.RateLimitLoginRequestsPerSec,
				cfg.RateLimitLoginBurst,
				s.logger,
			))
		}
		loginHandlers = append(loginHandlers, authHandler.LoginHandler)

		auth.POST("/login", loginHandlers...)
		auth.GET("/validate", authHandler.ValidateHandler)
	}

	users := api.Group("/users")
	{
		adminRead := authHTTP.RequireAuthority(authDomain.Authority(authDomain.AdminRead), s.logger)
		adminWrite := authHTTP.RequireAuthority(authDomain.Authority(authDomain.AdminWrite), s.logger)

		users.POST("", adminWrite, userHandler.CreateHandler)
		users.GET("", adminRead, userHandler.ListHandler)
		users.GET("/me",
			authHTTP.RequireAnyRole(
				s.logger,
				authDomain.RoleAdmin,
				authDomain.RoleEstimator,
				authDomain.RoleEstimatorTrainee,
			),
			authHandler.MeHandler,
		)
		users.GET("/:id", adminRead, userHandler.GetHandler)
		users.DELETE("/:id", adminWrite, userHandler.DeleteHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start http server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, which requires a
// reachable database.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
