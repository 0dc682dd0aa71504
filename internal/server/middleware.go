package server

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const allowedMethods = "GET, HEAD, OPTIONS"

// logRequests logs one line per request. Errors are rendered here so the
// logged status is the one the client sees.
func (s *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			if !c.Response().Committed {
				c.Response().Header().Del(echo.HeaderContentType)
			}
			c.Error(err)
		}

		req := c.Request()
		status := c.Response().Status
		attrs := []any{
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		}

		switch {
		case status >= http.StatusInternalServerError:
			s.logger.Error("http_request", attrs...)
		case status == http.StatusNotFound:
			s.logger.Warn("http_request", attrs...)
		default:
			s.logger.Info("http_request", attrs...)
		}
		return nil
	}
}

// responseHeaders stamps CORS and cache headers on every response and
// answers preflight requests.
func (s *Server) responseHeaders(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		if s.config.AllowOrigin != "" {
			h.Set(echo.HeaderAccessControlAllowOrigin, s.config.AllowOrigin)
		}
		h.Set(echo.HeaderAccessControlAllowMethods, allowedMethods)
		h.Set(echo.HeaderAccessControlAllowHeaders, echo.HeaderContentType)
		if s.config.CacheControl != "" {
			h.Set(echo.HeaderCacheControl, s.config.CacheControl)
		}

		switch c.Request().Method {
		case http.MethodOptions:
			return c.NoContent(http.StatusNoContent)
		case http.MethodGet, http.MethodHead:
			return next(c)
		default:
			h.Set(echo.HeaderAllow, allowedMethods)
			return echo.ErrMethodNotAllowed
		}
	}
}

func (s *Server) redirectRoot(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		landing := s.config.Landing
		if c.Request().URL.Path == "/" && landing != "" && landing != "/" {
			return c.Redirect(http.StatusFound, landing)
		}
		return next(c)
	}
}

// contentType applies configured Content-Type overrides before the file
// is served. Directory requests are typed as their index.html.
func (s *Server) contentType(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ct, ok := s.config.MIMETypes[s.servedExt(c.Request().URL.Path)]; ok {
			c.Response().Header().Set(echo.HeaderContentType, ct)
		}
		return next(c)
	}
}

func (s *Server) servedExt(urlPath string) string {
	if strings.HasSuffix(urlPath, "/") {
		return ".html"
	}
	if ext := path.Ext(urlPath); ext != "" {
		return strings.ToLower(ext)
	}
	if s.isDir(urlPath) {
		return ".html"
	}
	return ""
}

// skipTrailingSlash limits the trailing-slash redirect to GET and HEAD
// requests for directories, so relative URLs in a directory's index.html
// resolve inside that directory.
func (s *Server) skipTrailingSlash(c echo.Context) bool {
	req := c.Request()
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return true
	}
	p := req.URL.Path
	return p == "" || strings.HasSuffix(p, "/") || !s.isDir(p)
}

func (s *Server) isDir(urlPath string) bool {
	local := filepath.Join(s.config.Root, filepath.FromSlash(path.Clean("/"+urlPath)))
	info, err := os.Stat(local)
	return err == nil && info.IsDir()
}
