// Package server exposes the query service over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/agenthands/owlgraph/internal/driver"
	"github.com/agenthands/owlgraph/internal/export"
	"github.com/agenthands/owlgraph/internal/metrics"
	"github.com/agenthands/owlgraph/internal/ontology"
	"github.com/agenthands/owlgraph/internal/query"
	"github.com/agenthands/owlgraph/internal/translate"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	Service *query.Service
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

func NewServer(svc *query.Service, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		Service: svc,
		Metrics: m,
		Logger:  logger,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.Health)
	r.GET("/schema", s.Schema)
	r.POST("/translate", s.Translate)
	r.POST("/query", s.Query)
	r.POST("/export", s.Export)
	if s.Metrics != nil {
		r.GET("/metrics", gin.WrapH(s.Metrics.Handler()))
	}

	return r
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("Starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

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
	s.Logger.Info("Shutting down server")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Logger.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}

func (s *Server) Health(c *gin.Context) {
	if err := s.Service.Driver.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"schema": s.Service.Schema(c.Request.Context())})
}

type TranslateRequest struct {
	Question string `json:"question"`
}

func (s *Server) Translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	q, err := s.Service.Translate(c.Request.Context(), req.Question)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": q})
}

type QueryRequest struct {
	Mode    string `json:"mode"`
	Input   string `json:"input"`
	Execute bool   `json:"execute"`
}

func (s *Server) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	mode, err := query.ParseMode(req.Mode)
	if err != nil {
		s.writeError(c, err)
		return
	}

	qreq := query.Request{Mode: mode, Input: req.Input, Execute: req.Execute}
	if mode == query.ModeExport {
		snap, err := ontology.Parse([]byte(req.Input))
		if err != nil {
			s.writeError(c, err)
			return
		}
		qreq.Snapshot = snap
	}

	resp, err := s.Service.Do(c.Request.Context(), qreq)
	if err != nil {
		if mode == query.ModeExport && resp != nil {
			s.writeExport(c, *resp.Summary, err)
			return
		}
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export takes a YAML or JSON snapshot document as the request body.
func (s *Server) Export(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	snap, err := ontology.Parse(body)
	if err != nil {
		s.writeError(c, err)
		return
	}

	sum, err := s.Service.Export(c.Request.Context(), snap)
	s.writeExport(c, sum, err)
}

// writeExport answers 207 when only some mutations were rejected.
func (s *Server) writeExport(c *gin.Context, sum export.Summary, err error) {
	if err != nil && driver.IsConnectivity(err) {
		s.writeError(c, err)
		return
	}

	status := http.StatusOK
	errs := []string{}
	for _, me := range export.MappingErrors(err) {
		errs = append(errs, me.Error())
	}
	if err != nil {
		status = http.StatusMultiStatus
		if len(errs) == 0 {
			errs = append(errs, err.Error())
		}
	}

	c.JSON(status, gin.H{
		"summary": sum,
		"report":  sum.String(),
		"errors":  errs,
	})
}

func (s *Server) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "path", c.FullPath(), "error", err)
	}

	body := gin.H{"error": err.Error()}
	var te *translate.TranslationError
	if errors.As(err, &te) {
		body["stage"] = te.Stage
		if te.StatusCode != 0 {
			body["upstream_status"] = te.StatusCode
			body["upstream_body"] = te.Body
		}
	}
	c.JSON(status, body)
}

func statusFor(err error) int {
	switch {
	case driver.IsConnectivity(err), errors.Is(err, query.ErrLLMNotConfigured):
		return http.StatusServiceUnavailable
	case translate.IsTranslationError(err):
		return http.StatusBadGateway
	case errors.Is(err, query.ErrEmptyInput),
		errors.Is(err, query.ErrNoSnapshot),
		errors.Is(err, query.ErrUnknownMode),
		errors.Is(err, ontology.ErrInvalidSnapshot):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
