// Package web provides the HTTP server and web interface for go-hellopage
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/go-while/go-hellopage/internal/config"
	"github.com/go-while/go-hellopage/internal/logging"
	"github.com/go-while/go-hellopage/internal/metrics"
	"github.com/go-while/go-hellopage/internal/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// WebServer represents the web server
type WebServer struct {
	Router    *gin.Engine
	Config    *config.WebConfig
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	StartTime time.Time // Track server start time for uptime calculations

	mux  sync.Mutex
	http *http.Server
}

// NewServer creates a new web server instance
func NewServer(webconfig *config.WebConfig, logger *zap.Logger) (*WebServer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// gin's mode is process wide, the last server built decides
	if webconfig.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	if err := router.SetTrustedProxies(webconfig.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	server := &WebServer{
		Router:  router,
		Config:  webconfig,
		Logger:  logger,
		Metrics: metrics.New(),
	}

	router.Use(logging.Middleware(logger, webconfig.Debug)...)
	router.Use(otelgin.Middleware(tracing.ServiceName))
	router.Use(secure.New(server.secureConfig()))
	if len(webconfig.CORS.AllowOrigins) > 0 {
		router.Use(cors.New(server.corsConfig()))
	}
	router.Use(server.Metrics.Middleware())

	if err := server.setupRoutes(); err != nil {
		return nil, err
	}
	return server, nil
}

// secureConfig configures security headers based on SSL setup
func (s *WebServer) secureConfig() secure.Config {
	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}

	// Only add SSL-specific headers if SSL is enabled on the application itself
	// (not when running behind a reverse proxy like nginx with SSL)
	if s.Config.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
		secureConfig.SSLProxyHeaders = map[string]string{"X-Forwarded-Proto": "https"}
	}
	return secureConfig
}

func (s *WebServer) corsConfig() cors.Config {
	return cors.Config{
		AllowOrigins: s.Config.CORS.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Accept"},
		MaxAge:       s.Config.CORS.MaxAge,
	}
}

// setupRoutes configures all HTTP routes
func (s *WebServer) setupRoutes() error {
	if err := registerPages(s.Router, pages); err != nil {
		return err
	}

	s.Router.GET("/robots.txt", func(c *gin.Context) {
		c.String(http.StatusOK, "User-agent: *\nDisallow:\n")
	})
	s.Router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	if s.Config.MetricsPath != "" {
		s.Router.GET(s.Config.MetricsPath, gin.WrapH(s.Metrics.Handler()))
	}
	return nil
}

// Handler returns the router as a plain http.Handler
func (s *WebServer) Handler() http.Handler {
	return s.Router
}

// Start starts the web server with SSL support if configured.
// It blocks until the server stops; after Shutdown it returns http.ErrServerClosed.
func (s *WebServer) Start() error {
	if err := s.Config.Validate(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         s.Config.Addr(),
		Handler:      s.Router,
		ReadTimeout:  s.Config.ReadTimeout,
		WriteTimeout: s.Config.WriteTimeout,
		IdleTimeout:  s.Config.IdleTimeout,
		ErrorLog:     zap.NewStdLog(s.Logger.Named("http")),
	}

	s.mux.Lock()
	if s.http != nil {
		s.mux.Unlock()
		return errors.New("web server already started")
	}
	s.http = srv
	s.StartTime = time.Now() // Set the start time for uptime calculations
	s.mux.Unlock()

	if s.Config.SSL {
		s.Logger.Info("Starting HTTPS server", zap.String("addr", srv.Addr))
		return srv.ListenAndServeTLS(s.Config.CertFile, s.Config.KeyFile)
	}
	s.Logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
	return srv.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx expires
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.mux.Lock()
	srv := s.http
	s.mux.Unlock()

	if srv == nil {
		return nil
	}
	s.Logger.Info("Stopping web server", zap.Duration("uptime", s.Uptime()))
	return srv.Shutdown(ctx)
}
