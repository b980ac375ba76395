package progress

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kbukum/halokit/logger"
	"github.com/kbukum/halokit/observability"
	"github.com/kbukum/halokit/validation"
	"github.com/kbukum/halokit/version"
)

// Server serves run progress over HTTP.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	tracker    *Tracker
	checks     []observability.HealthChecker
	log        *logger.Logger
}

// NewServer creates a progress server listening on addr (host:port).
func NewServer(addr string, tracker *Tracker, log *logger.Logger) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		engine:  gin.New(),
		tracker: tracker,
		checks:  []observability.HealthChecker{tracker},
		log:     log.WithComponent("progress"),
	}
	s.engine.Use(gin.Recovery())
	s.registerRoutes()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, for mounting or testing.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/runs", s.handleRuns)
	s.engine.GET("/runs/:id", s.handleRun)
}

func (s *Server) handleHealth(c *gin.Context) {
	health := observability.NewServiceHealth("halokit", version.Version)
	for _, check := range s.checks {
		health.AddComponent(check.CheckHealth(c.Request.Context()))
	}
	c.JSON(http.StatusOK, health)
}

func (s *Server) handleRuns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"runs": s.tracker.Runs()})
}

func (s *Server) handleRun(c *gin.Context) {
	id := c.Param("id")
	if _, err := validation.ValidateUUID("run_id", id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, ok := s.tracker.Run(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	c.JSON(http.StatusOK, run)
}

// Start binds the port and begins serving. It returns once the listener
// is bound; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("progress server failed to bind %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("progress server error", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	s.log.Info("progress server started", logger.Fields("addr", s.httpServer.Addr))
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("progress server shutdown: %w", err)
	}
	s.log.Info("progress server stopped")
	return nil
}
