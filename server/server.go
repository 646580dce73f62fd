package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/alextes/calabi/logger"
	"github.com/alextes/calabi/resilience"
	"github.com/alextes/calabi/server/endpoint"
	"github.com/alextes/calabi/server/middleware"
)

// Server is the status HTTP server backed by Gin, served over HTTP/1.1 and
// h2c on the same port.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     Config
	log        *logger.Logger

	mu       sync.RWMutex
	listener net.Listener
}

// New creates a Server. The Gin engine is created bare; call ApplyMiddleware
// and RegisterEndpoints to populate it. cfg is used as given.
func New(cfg Config, log *logger.Logger) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          cfg.IdleTimeout,
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      h2c.NewHandler(engine, h2s),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	if log == nil {
		log = logger.GetGlobalLogger()
	}

	return &Server{
		httpServer: httpServer,
		engine:     engine,
		config:     cfg,
		log:        log.WithComponent("server"),
	}
}

// Engine returns the underlying Gin engine for route registration.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Handler returns the root handler, h2c included.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start binds the port and begins serving. It returns once the listener is
// bound; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("Starting HTTP server", logger.Fields("addr", s.httpServer.Addr))

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Server error", logger.ErrorFields("serve", err))
		}
	}()

	s.log.Info("HTTP server started", logger.Fields("addr", listener.Addr().String()))
	return nil
}

// Stop gracefully shuts down the server within the configured shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Server shutdown error", logger.ErrorFields("shutdown", err))
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Addr returns the bound address once started, the configured one before.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Started reports whether Start has bound the listener.
func (s *Server) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listener != nil
}

// ApplyMiddleware applies the standard middleware stack: recovery, request
// id, request logging and, when configured, per-IP rate limiting.
func (s *Server) ApplyMiddleware() {
	s.engine.Use(middleware.Recovery(s.log))
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.RequestLogger(s.log))
	if rl := s.config.RateLimit; rl.RequestsPerSecond > 0 {
		s.engine.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: resilience.RateLimiterConfig{
				Name:  "status-server",
				Rate:  rl.RequestsPerSecond,
				Burst: rl.Burst,
			},
		}))
	}
}

// Endpoints are the sources behind the built-in routes.
type Endpoints struct {
	Service string
	Version string
	Health  endpoint.HealthChecker
	State   endpoint.StateProvider
}

// RegisterEndpoints registers the built-in probe, version and bot state routes.
func (s *Server) RegisterEndpoints(e Endpoints) {
	s.engine.GET("/health", endpoint.Health(e.Service, e.Version, e.Health))
	s.engine.GET("/ready", endpoint.Readiness(e.Service, e.Health))
	s.engine.GET("/alive", endpoint.Liveness(e.Service))
	s.engine.GET("/version", endpoint.Version())
	s.engine.GET("/targets", endpoint.Targets(e.State))
	s.engine.GET("/exclusions", endpoint.Exclusions(e.State))
}
