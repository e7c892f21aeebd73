package pubgen

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server serves a build's output directory for local previews.
type Server struct {
	Echo *echo.Echo

	cfg    BuildConfig
	logger *slog.Logger
}

// NewServer returns a Server over cfg.OutputDir. A non-nil metrics handler
// is mounted at /-/metrics.
func NewServer(cfg BuildConfig, logger *slog.Logger, metrics http.Handler) *Server {
	cfg.setDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		Echo:   echo.New(),
		cfg:    cfg,
		logger: logger,
	}
	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.setupMiddleware()
	s.setupRoutes(metrics)
	return s
}

func (s *Server) setupMiddleware() {
	e := s.Echo
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info("Request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasSuffix(c.Request().URL.Path, ".png")
		},
	}))

	e.Use(cacheControlMiddleware)
}

func (s *Server) setupRoutes(metrics http.Handler) {
	if metrics != nil {
		s.Echo.GET("/-/metrics", echo.WrapHandler(metrics))
	}
	s.Echo.Static("/", s.cfg.OutputDir)
}

// Start serves until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Serving", "addr", s.cfg.Addr, "root", s.cfg.OutputDir)
		errc <- s.Echo.Start(s.cfg.Addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Echo.Shutdown(shutdownCtx)
	}
}

// notFoundPage returns the 404 page for a request path: the one of the
// locale named by the first path segment, else the default locale's.
func (s *Server) notFoundPage(urlPath string) string {
	locale := s.cfg.DefaultLocale
	first, _, _ := strings.Cut(strings.TrimPrefix(urlPath, "/"), "/")
	if first != "" && slices.Contains(s.cfg.Locales, first) {
		locale = first
	}
	return filepath.Join(s.cfg.OutputDir, locale, "404.html")
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusNotFound {
		page, readErr := os.ReadFile(s.notFoundPage(c.Request().URL.Path))
		if readErr == nil {
			_ = c.HTMLBlob(http.StatusNotFound, page)
			return
		}
	}
	if he == nil || he.Code >= 500 {
		s.logger.Error("Server error", "error", err, "uri", c.Request().RequestURI)
	}
	s.Echo.DefaultHTTPErrorHandler(err, c)
}

// cacheControlMiddleware disables caching so previews always show the latest
// build, except for generated images.
func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/static/img/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=60")
		case path == "/-/metrics":
			c.Response().Header().Set("Cache-Control", "no-store")
		default:
			c.Response().Header().Set("Cache-Control", "no-cache")
		}
		return next(c)
	}
}
