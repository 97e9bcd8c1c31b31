// Package http assembles the public HTTP server.
package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/xiaot623/neuralthreads/internal/transport/http/stylist"
)

// Routes is anything that can mount handlers on the server.
type Routes interface {
	RegisterRoutes(e *echo.Echo)
}

// Server is the public HTTP server.
type Server struct {
	echo   *echo.Echo
	logger *zap.Logger
}

// NewServer creates the server and mounts every route group.
func NewServer(logger *zap.Logger, routes ...Routes) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	// The stylist endpoint answers its own preflight with 200.
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/ai-stylist"
		},
		AllowOrigins: []string{stylist.AllowOrigin},
		AllowHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
	}))

	for _, r := range routes {
		r.RegisterRoutes(e)
	}

	return &Server{echo: e, logger: logger}
}

// Handler exposes the underlying router.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	s.logger.Info("http server listening", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
