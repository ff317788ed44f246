// Package mirror republishes the synchronizer's output over HTTP so other
// local consumers can read the current avatar configuration without polling
// the backend themselves.
package mirror

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bft-labs/avatarsync/pkg/log"
	"github.com/bft-labs/avatarsync/pkg/settings"
)

const shutdownTimeout = 5 * time.Second

// Source provides the state to publish.
type Source interface {
	Snapshot() settings.State
}

// Server is a gin-backed HTTP mirror of a Source.
type Server struct {
	source Source
	logger log.Logger
	engine *gin.Engine
}

// New builds the router. A nil logger discards request logs.
func New(source Source, logger log.Logger) *Server {
	if logger == nil {
		logger = log.Nop()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{source: source, logger: logger}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger(), cors())
	router.GET("/state", s.handleState)
	router.GET("/api/avatar-config", s.handleConfig)
	router.GET("/healthz", s.handleHealth)
	s.engine = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("mirror listening", log.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("mirror stopped")
	return nil
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.source.Snapshot())
}

func (s *Server) handleConfig(c *gin.Context) {
	st := s.source.Snapshot()
	if st.Config == nil {
		reason := "avatar config not loaded yet"
		if st.IsError {
			reason = "avatar config unavailable"
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": reason})
		return
	}
	c.JSON(http.StatusOK, st.Config)
}

func (s *Server) handleHealth(c *gin.Context) {
	st := s.source.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"hasConfig": st.Config != nil,
		"isLoading": st.IsLoading,
		"isError":   st.IsError,
	})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("mirror request",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(start)),
		)
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
