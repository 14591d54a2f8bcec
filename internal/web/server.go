// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the company research UI: a single form that runs the
// three queries, shows the summary, and offers the PDF report for download.
// A small JSON API exposes the same report for scripts.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/company-research/internal/logging"
	"github.com/pdiddy/company-research/internal/report"
	"github.com/pdiddy/company-research/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

// Runner produces a report for one company name. *research.Researcher
// satisfies it.
type Runner interface {
	Run(ctx context.Context, company string) (types.Report, error)
}

// Server wires the handlers to a gin engine.
type Server struct {
	runner   Runner
	logger   logging.Logger
	metrics  *Metrics
	gatherer prometheus.Gatherer
	cfg      types.ServerConfig
}

// NewServer returns a Server. gatherer may be nil, in which case /metrics
// is not mounted.
func NewServer(runner Runner, cfg types.ServerConfig, logger logging.Logger, metrics *Metrics, gatherer prometheus.Gatherer) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ReportFilename == "" {
		cfg.ReportFilename = report.DefaultFilename
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{
		runner:   runner,
		logger:   logger,
		metrics:  metrics,
		gatherer: gatherer,
		cfg:      cfg,
	}
}

// Router builds the gin engine with logging and recovery middleware.
func (s *Server) Router() (*gin.Engine, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	router := gin.New()
	router.Use(loggingMiddleware(s.logger))
	router.Use(recoveryMiddleware(s.logger))
	router.SetHTMLTemplate(tmpl)

	router.GET("/", s.handleIndex)
	router.POST("/research", s.handleResearch)

	api := router.Group("/api")
	api.GET("/report", s.handleReportJSON)
	api.GET("/report.pdf", s.handleReportPDF)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "company-research"})
	})
	if s.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}
	return router, nil
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	router, err := s.Router()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:        s.cfg.Addr,
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		// Contact discovery paces its pages, so responses can take a while.
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.cfg.Addr).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.logger.Info("Server stopped")
	return nil
}
