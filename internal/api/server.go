// Package api implements the HTTP API for the analysis service.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/pagepulse/internal/analysis"
	"github.com/jonesrussell/pagepulse/internal/analyzer"
	"github.com/jonesrussell/pagepulse/internal/api/middleware"
	"github.com/jonesrussell/pagepulse/internal/config/server"
	"github.com/jonesrussell/pagepulse/internal/logger"
	"github.com/jonesrussell/pagepulse/internal/pagespeed"
	"github.com/jonesrussell/pagepulse/internal/urlutil"
)

// Analyzer runs analyses against a target URL.
type Analyzer interface {
	Analyze(ctx context.Context, pageURL string, strategy pagespeed.Strategy) (*analysis.Result, error)
	AnalyzeFull(ctx context.Context, pageURL string) *analyzer.FullResult
}

// ReportBuilder composes PDF report bytes from device results.
type ReportBuilder interface {
	Build(url string, mobile, desktop *analysis.Result) ([]byte, error)
}

// Server represents the API server.
type Server struct {
	config   *server.Config
	logger   logger.Interface
	analyzer Analyzer
	reports  ReportBuilder
	router   *gin.Engine
}

// NewServer creates a new API server instance with routes registered.
func NewServer(cfg *server.Config, an Analyzer, reports ReportBuilder, log logger.Interface) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		config:   cfg,
		logger:   log,
		analyzer: an,
		reports:  reports,
		router:   gin.New(),
	}

	s.registerRoutes()

	return s
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// registerRoutes wires the middleware and endpoints.
func (s *Server) registerRoutes() {
	s.router.Use(gin.Recovery())

	security := middleware.NewSecurityMiddleware(s.config, s.logger)
	s.router.Use(security.Middleware())

	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	v1.POST("/analyze", s.handleAnalyze)
	v1.POST("/analyze/full", s.handleAnalyzeFull)
	v1.POST("/report", s.handleReport)
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleAnalyze runs the single-device analysis. Upstream failures map
// to 502 with a discriminable error body.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !urlutil.Validate(req.URL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url must be an absolute http or https URL"})
		return
	}

	strategy := pagespeed.Strategy(req.Strategy)
	if req.Strategy == "" {
		strategy = pagespeed.StrategyMobile
	}
	if !strategy.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "strategy must be mobile or desktop"})
		return
	}

	result, err := s.analyzer.Analyze(c.Request.Context(), req.URL, strategy)
	if err != nil {
		s.logger.Error("Analysis failed", "url", req.URL, "strategy", strategy, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toAnalysisResponse(result))
}

// handleAnalyzeFull runs the aggregate analysis; the response is
// partial when sub-checks fail, never an error.
func (s *Server) handleAnalyzeFull(c *gin.Context) {
	var req FullAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !urlutil.Validate(req.URL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url must be an absolute http or https URL"})
		return
	}

	full := s.analyzer.AnalyzeFull(c.Request.Context(), req.URL)
	c.JSON(http.StatusOK, toFullResponse(full))
}

// handleReport analyzes both device profiles and streams the PDF.
func (s *Server) handleReport(c *gin.Context) {
	var req FullAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !urlutil.Validate(req.URL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url must be an absolute http or https URL"})
		return
	}

	ctx := c.Request.Context()

	mobile, err := s.analyzer.Analyze(ctx, req.URL, pagespeed.StrategyMobile)
	if err != nil {
		s.logger.Error("Mobile analysis failed", "url", req.URL, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	desktop, err := s.analyzer.Analyze(ctx, req.URL, pagespeed.StrategyDesktop)
	if err != nil {
		s.logger.Error("Desktop analysis failed", "url", req.URL, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	pdf, err := s.reports.Build(req.URL, mobile, desktop)
	if err != nil {
		s.logger.Error("Report build failed", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/pdf", pdf)
}
