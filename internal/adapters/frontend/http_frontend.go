package frontend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikey/news-credibility/internal/config"
	"github.com/mikey/news-credibility/internal/core"
	"github.com/mikey/news-credibility/internal/ports"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// AnalyzeRequest is the body of POST /api/analyze
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// AnalyzeResponse is returned for a completed analysis
type AnalyzeResponse struct {
	RequestID  string                   `json:"request_id"`
	Verdict    core.Category            `json:"verdict"`
	Confidence float64                  `json:"confidence"`
	Label      string                   `json:"label"`
	Matches    int                      `json:"matches"`
	Model      string                   `json:"model"`
	Report     string                   `json:"report"`
	Documents  []core.RetrievedDocument `json:"documents,omitempty"`
}

// ErrorResponse is returned when no verdict could be produced. Report holds
// the user facing message.
type ErrorResponse struct {
	Error  string `json:"error"`
	Report string `json:"report,omitempty"`
}

// HTTPFrontend serves the analysis engine over a JSON API
type HTTPFrontend struct {
	service    ports.Analyzer
	logger     *zap.Logger
	cfg        config.ServerConfig
	engine     *gin.Engine
	server     *http.Server
	listenAddr string
}

// NewHTTPFrontend creates a new HTTP frontend
func NewHTTPFrontend(service ports.Analyzer, cfg config.ServerConfig, logger *zap.Logger) *HTTPFrontend {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Mode {
	case gin.DebugMode, gin.TestMode, gin.ReleaseMode:
		gin.SetMode(cfg.Mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	f := &HTTPFrontend{
		service: service,
		logger:  logger,
		cfg:     cfg,
	}
	f.engine = f.routes()
	return f
}

func (f *HTTPFrontend) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), f.requestLogger())

	r.GET("/healthz", f.health)
	api := r.Group("/api")
	api.POST("/analyze", f.analyze)
	api.GET("/examples", f.examples)
	return r
}

// Handler returns the HTTP handler, used by tests
func (f *HTTPFrontend) Handler() http.Handler {
	return f.engine
}

// Addr returns the bound address once started
func (f *HTTPFrontend) Addr() string {
	return f.listenAddr
}

// Start binds the listen address and serves in the background
func (f *HTTPFrontend) Start() error {
	ln, err := net.Listen("tcp", f.cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", f.cfg.ListenAddress, err)
	}
	f.listenAddr = ln.Addr().String()

	f.server = &http.Server{
		Handler:      f.engine,
		ReadTimeout:  f.cfg.ReadTimeout,
		WriteTimeout: f.cfg.WriteTimeout,
	}

	f.logger.Info("HTTP frontend starting", zap.String("address", f.listenAddr))

	go func() {
		if err := f.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			f.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
	return nil
}

// Stop gracefully shuts the server down
func (f *HTTPFrontend) Stop() error {
	if f.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return f.server.Shutdown(ctx)
}

func (f *HTTPFrontend) analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body must be JSON with a text field"})
		return
	}

	report, err := f.service.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error(), Report: core.RenderError(err)})
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		RequestID:  report.RequestID,
		Verdict:    report.Verdict.Category,
		Confidence: report.Verdict.Confidence,
		Label:      report.Verdict.Label,
		Matches:    report.Verdict.MatchCount,
		Model:      report.Model,
		Report:     report.Text,
		Documents:  report.Documents,
	})
}

func statusFor(err error) int {
	var verr *core.ValidationError
	var cerr *core.ClassificationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &cerr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (f *HTTPFrontend) examples(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"examples": Examples()})
}

func (f *HTTPFrontend) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "classifier": f.service.ClassifierName()})
}

// requestLogger logs each request with zap
func (f *HTTPFrontend) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		f.logger.Debug("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
