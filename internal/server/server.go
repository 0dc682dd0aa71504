// Package server serves the dashboard directory over HTTP.
//
// The dashboard is plain static files that fetch thesis_index.json from
// the browser, so every response is marked uncacheable and readable from
// any origin. The root path redirects to the landing page.
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Aman-CERP/thesisdash/internal/errors"
)

// Config holds dashboard server settings.
type Config struct {
	Host string
	Port int
	// Root is the directory served at "/".
	Root string
	// Landing is where "/" redirects. Empty or "/" disables the redirect.
	Landing      string
	AllowOrigin  string
	CacheControl string
	// MIMETypes maps lower-case extensions to Content-Type values.
	MIMETypes map[string]string
}

// Server is the static dashboard server.
type Server struct {
	echo   *echo.Echo
	config Config
	logger *slog.Logger
}

// New creates a server for cfg. The root directory must exist.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "cannot resolve serve root", err)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "serve root is not a directory: "+root, err).
			WithSuggestion("Set paths.serve_root or pass --root")
	}
	cfg.Root = root

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, config: cfg, logger: logger}

	e.Pre(middleware.Recover())
	e.Pre(middleware.RequestID())
	e.Pre(s.logRequests)
	e.Pre(s.responseHeaders)
	e.Pre(s.redirectRoot)
	e.Pre(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper:      s.skipTrailingSlash,
	}))

	e.Use(s.contentType)
	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:  root,
		Index: "index.html",
	}))

	return s, nil
}

// Handler exposes the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// Root returns the absolute directory being served.
func (s *Server) Root() string {
	return s.config.Root
}

// Start listens until Shutdown is called. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("server_started",
		slog.String("addr", s.Addr()),
		slog.String("root", s.config.Root),
		slog.String("landing", s.config.Landing))
	s.checkLanding()

	err := s.echo.Start(s.Addr())
	if stderrors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server_stopping")
	return s.echo.Shutdown(ctx)
}

// checkLanding warns when the landing page has no index.html to serve.
func (s *Server) checkLanding() {
	if s.config.Landing == "" || s.config.Landing == "/" {
		return
	}
	page := filepath.Join(s.config.Root, filepath.FromSlash(s.config.Landing), "index.html")
	if _, err := os.Stat(page); err != nil {
		s.logger.Warn("landing_page_missing", slog.String("path", page))
	}
}
