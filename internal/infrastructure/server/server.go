package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	handlers "github.com/GriffinCanCode/funcsys/internal/api/http"
	"github.com/GriffinCanCode/funcsys/internal/api/middleware"
	"github.com/GriffinCanCode/funcsys/internal/api/ws"
	"github.com/GriffinCanCode/funcsys/internal/config"
	"github.com/GriffinCanCode/funcsys/internal/export"
	"github.com/GriffinCanCode/funcsys/internal/infrastructure/logging"
	"github.com/GriffinCanCode/funcsys/internal/infrastructure/monitoring"
	mathprovider "github.com/GriffinCanCode/funcsys/internal/providers/math"
	"github.com/GriffinCanCode/funcsys/internal/service"
)

// shutdownTimeout bounds graceful shutdown
const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	provider *mathprovider.Provider
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	series, err := cfg.SeriesConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid series configuration: %w", err)
	}
	family, err := mathprovider.NewFamily(series)
	if err != nil {
		return nil, fmt.Errorf("failed to build function family: %w", err)
	}

	logger.Info("Initializing function server",
		zap.String("addr", cfg.Address()),
		zap.Float64("epsilon", series.Epsilon),
		zap.Int("max_iterations", series.MaxIterations),
	)

	metrics := monitoring.NewMetrics()
	provider := mathprovider.NewProvider(family, cfg.Export.Precision)
	registry := service.NewRegistry()
	if err := registry.Register(provider); err != nil {
		return nil, fmt.Errorf("failed to register math provider: %w", err)
	}
	exporter := export.New(
		export.WithSeparator(cfg.SeparatorRune()),
		export.WithWorkers(cfg.Export.Workers),
		export.WithLogger(logger.Named("export")),
		export.WithMetrics(metrics),
	)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(monitoring.Middleware(metrics))
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Server.CORSOrigins
	}
	router.Use(middleware.CORS(corsCfg))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	h := handlers.NewHandlers(registry, provider, exporter, metrics, logger.Named("http"))
	wsHandler := ws.NewHandler(provider, exporter, metrics, logger.Named("ws"))

	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	// Functions
	router.GET("/functions", h.ListFunctions)
	router.POST("/evaluate", h.Execute)
	router.GET("/evaluate/:name", h.EvaluateByName)
	router.POST("/sweep", h.Sweep)

	// WebSocket
	router.GET("/ws/sweep", wsHandler.HandleConnection)

	// Metrics
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		provider: provider,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Close flushes the logger
func (s *Server) Close() error {
	_ = s.logger.Sync()
	return nil
}
