package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"MarketPanel/internal/cache"
	"MarketPanel/internal/chart"
	"MarketPanel/internal/logger"
	"MarketPanel/internal/panel"

	"github.com/gin-gonic/gin"
)

// Panel is the subset of *panel.Panel the server needs.
type Panel interface {
	Render(ctx context.Context) panel.View
	Refresh(ctx context.Context) panel.View
	Cached() (cache.Entry, bool)
	CacheStats() cache.Stats
}

// Server exposes the panel to the presentation layer over HTTP.
type Server struct {
	panel  Panel
	engine *gin.Engine
	http   *http.Server
}

// New builds the router. debug enables gin's debug mode.
func New(addr string, p Panel, debug bool) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	s := &Server{
		panel:  p,
		engine: engine,
		http:   &http.Server{Addr: addr, Handler: engine, ReadHeaderTimeout: 10 * time.Second},
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.engine.Group("/api")
	api.GET("/panel", s.getPanel)
	api.GET("/chart", s.getChart)
	api.GET("/health", s.getHealth)
	api.POST("/refresh", s.postRefresh)
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	logger.WithComponent("server").Infof("listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) getPanel(c *gin.Context) {
	writeView(c, s.panel.Render(c.Request.Context()))
}

func (s *Server) postRefresh(c *gin.Context) {
	writeView(c, s.panel.Refresh(c.Request.Context()))
}

func (s *Server) getChart(c *gin.Context) {
	v := s.panel.Render(c.Request.Context())
	if v.Chart == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": v.Status, "message": v.Message})
		return
	}
	c.JSON(http.StatusOK, chart.ToPlotly(*v.Chart))
}

func (s *Server) getHealth(c *gin.Context) {
	body := gin.H{"status": "ok", "cache": s.panel.CacheStats()}
	if e, ok := s.panel.Cached(); ok {
		body["cached"] = gin.H{
			"label":      e.Result.Label,
			"symbol":     e.Result.Series.Symbol,
			"rows":       e.Result.Series.Len(),
			"empty":      e.Result.Empty(),
			"created_at": e.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, body)
}

// writeView answers 503 for an empty panel so the UI shows its error state.
func writeView(c *gin.Context, v panel.View) {
	code := http.StatusOK
	if v.Status == panel.StatusEmpty {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, v)
}

func requestLogger() gin.HandlerFunc {
	log := logger.WithComponent("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithField("method", c.Request.Method).
			WithField("path", c.Request.URL.Path).
			WithField("status", c.Writer.Status()).
			WithField("latency", time.Since(start)).
			Debug("request")
	}
}
