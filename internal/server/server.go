// Package server serves the spreadsheet filter form and its JSON API.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ukaji3/sheetfilter-go/internal/config"
	"github.com/ukaji3/sheetfilter-go/internal/metrics"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server is the HTTP front end of the filter.
type Server struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Collector
	engine  *gin.Engine
}

// New creates a server with its routes registered. collector may be nil.
func New(cfg *config.Config, logger *slog.Logger, collector *metrics.Collector) (*Server, error) {
	templates, err := template.New("").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	engine := gin.New()
	engine.SetHTMLTemplate(templates)

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: collector,
		engine:  engine,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupMiddleware() {
	s.engine.Use(requestID())
	s.engine.Use(requestLogger(s.logger))
	s.engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.logger.Error("panic recovered", "request_id", c.GetString(requestIDKey), "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": "internal_error"})
	}))
}

func (s *Server) setupRoutes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.POST("/filter", s.handleFilterPage)
	s.engine.POST("/api/filter", s.handleFilterAPI)
	s.engine.GET("/healthz", s.handleHealth)

	if s.metrics != nil && s.cfg.Metrics.Enabled {
		s.engine.GET(s.cfg.Metrics.Path, gin.WrapH(s.metrics.Handler()))
	}
}

// Handler returns the HTTP handler with every route registered.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.Server.ListenAddress,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting server",
			"address", s.cfg.Server.ListenAddress,
			"sheet_default", s.cfg.Filter.SheetName,
			"column_default", s.cfg.Filter.Column,
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("initiating graceful shutdown", "timeout", s.cfg.Server.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}
