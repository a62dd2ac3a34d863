package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

// Timeouts for the underlying *http.Server. Zero values fall back to the defaults below.
type Timeouts struct {
	ReadHeader time.Duration
	Write      time.Duration
	Idle       time.Duration
}

// Server wraps an *http.Server to provide start/shutdown lifecycle.
type Server struct {
	httpServer *http.Server
}

const (
	maxHeaderBytes           = 1 << 20 // 1 MB
	defaultReadHeaderTimeout = 10 * time.Second
	defaultWriteTimeout      = 10 * time.Second
	defaultIdleTimeout       = 60 * time.Second
)

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// New builds the server up front, so Shutdown works from any goroutine
// whether or not Run has started.
func New(port string, handler http.Handler, t Timeouts) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              normalizeAddr(port),
			Handler:           handler,
			MaxHeaderBytes:    maxHeaderBytes,
			ReadHeaderTimeout: orDefault(t.ReadHeader, defaultReadHeaderTimeout),
			WriteTimeout:      orDefault(t.Write, defaultWriteTimeout),
			IdleTimeout:       orDefault(t.Idle, defaultIdleTimeout),
		},
	}
}

// normalizeAddr accepts "8080", ":8080" or "host:8080".
func normalizeAddr(port string) string {
	if port == "" {
		return ""
	}
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// Run listens and serves until the server is shut down.
// It returns nil after a graceful Shutdown, including one that happened before Run.
func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, allowing in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
