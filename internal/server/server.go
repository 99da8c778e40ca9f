// Package server exposes the invoice app over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/dr-data/bolt-generated-invoice-app/internal/config"
	invoicedomain "github.com/dr-data/bolt-generated-invoice-app/internal/invoice/domain"
	"github.com/dr-data/bolt-generated-invoice-app/internal/observability/metrics"
)

// Module wires the engine, server, routes, and listener lifecycle.
var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(RunHTTP),
)

// Server holds the handler dependencies.
type Server struct {
	cfg        config.Config
	log        *zap.Logger
	engine     *gin.Engine
	invoiceSvc invoicedomain.Service
	registry   *prometheus.Registry
}

// ServerParam collects the server dependencies.
type ServerParam struct {
	fx.In

	Cfg        config.Config
	Log        *zap.Logger
	Engine     *gin.Engine
	InvoiceSvc invoicedomain.Service
	Registry   *prometheus.Registry `optional:"true"`
}

// NewEngine builds the gin engine with request logging attached.
func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log.Named("http")))
	return engine
}

// NewServer constructs the server.
func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:        p.Cfg,
		log:        p.Log.Named("server"),
		engine:     p.Engine,
		invoiceSvc: p.InvoiceSvc,
		registry:   p.Registry,
	}
}

// RegisterRoutes mounts every endpoint.
func (s *Server) RegisterRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if s.registry != nil {
		s.engine.GET("/metrics", gin.WrapH(metrics.Handler(s.registry)))
	}

	api := s.engine.Group("/api")
	api.POST("/invoices/export", s.ExportInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoice)
	api.GET("/labels", s.GetLabels)
	api.POST("/invoices/due-date", s.DeriveDueDate)
}

// RunHTTP starts and stops the listener with the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:              s.cfg.HTTP.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.log.Info("http listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
