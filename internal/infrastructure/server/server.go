package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/finder/backend/internal/api/http"
	"github.com/GriffinCanCode/finder/backend/internal/api/middleware"
	"github.com/GriffinCanCode/finder/backend/internal/domain/service"
	"github.com/GriffinCanCode/finder/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/finder/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/finder/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/finder/backend/internal/providers/filesystem"
)

// ShutdownTimeout bounds graceful shutdown
const ShutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	registry   *service.Registry
	filesystem *filesystem.Provider
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
}

// NewServer wires configuration, the filesystem service and the HTTP stack.
// A missing home directory does not fail construction: the server starts
// degraded and every filesystem call reports configuration_error.
func NewServer(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.FromLevel(cfg.Logging.Level, cfg.Logging.Development)
	logger.Info("Initializing Finder Server",
		zap.String("addr", cfg.Server.Addr()),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
	)

	metrics := monitoring.NewMetrics()

	boundary := filesystem.DefaultBoundary()
	if cfg.Filesystem.Home != "" {
		boundary.Home = cfg.Filesystem.Home
	}
	boundary.ReadOnlyRoots = cfg.Filesystem.Roots()

	validator := filesystem.NewValidator(boundary)
	if home, err := validator.Home(); err != nil {
		logger.Warn("Home directory unavailable, filesystem disabled", zap.Error(err))
	} else {
		logger.Info("Filesystem boundary",
			zap.String("home", home),
			zap.Strings("readonly_roots", validator.ReadOnlyRoots()),
		)
	}

	fsProvider := filesystem.NewProvider(
		filesystem.NewOps(validator, logger.Component("filesystem"), metrics),
	)

	registry := service.NewRegistry().WithMetrics(metrics)
	if err := registry.Register(fsProvider); err != nil {
		return nil, fmt.Errorf("failed to register filesystem provider: %w", err)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger.Component("http")))
	router.Use(monitoring.Middleware(metrics))
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.CORS.Origins
	router.Use(middleware.CORS(corsCfg))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlers := apihttp.NewHandlers(registry, fsProvider, metrics, logger.Component("http"))
	handlers.Register(router)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	s := &Server{
		router:     router,
		registry:   registry,
		filesystem: fsProvider,
		logger:     logger,
		config:     cfg,
		metrics:    metrics,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server initialized successfully")
	return s, nil
}

// Handler is the root handler: the router behind gzip compression.
// Previews can reach several megabytes of base64.
func (s *Server) Handler() http.Handler {
	return gzhttp.GzipHandler(s.router)
}

// Run serves until the listener fails or Shutdown is called
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then flushes the logger
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	_ = s.logger.Sync()
	return err
}
