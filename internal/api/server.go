// Package api serves the touch page and accepts relay connections over WebSocket.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"touchrelay/internal/assets"
	"touchrelay/internal/config"
	"touchrelay/internal/relay"
)

// Server provides the HTTP surface: embedded page, health check and /ws
type Server struct {
	cfg         config.ServerConfig
	newActuator relay.ActuatorFactory
	logger      *slog.Logger

	sessions   *sessionRegistry
	httpServer *http.Server

	mu sync.Mutex
	ln net.Listener
}

// NewServer creates a server. Every accepted connection gets its own
// Actuator from newActuator.
func NewServer(cfg config.ServerConfig, newActuator relay.ActuatorFactory, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:         cfg,
		newActuator: newActuator,
		logger:      logger.With("component", "api"),
		sessions:    newSessionRegistry(),
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	for path, f := range assets.Files {
		if path == "/" {
			path = "/{$}"
		}
		mux.Handle(path, assets.Handler(f))
	}
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	return s.logMiddleware(s.recoverMiddleware(mux))
}

// Listen binds the configured address. The listener is forced to IPv4 so the
// advertised LAN address is always reachable.
func (s *Server) Listen() error {
	host := s.cfg.Host
	if host == "" {
		host = "0.0.0.0"
	}
	addr := net.JoinHostPort(host, strconv.Itoa(s.cfg.Port))

	ln, err := net.Listen("tcp4", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	s.logger.Info("listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound address, or nil before Listen
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve accepts connections until Shutdown. It returns nil after a graceful
// shutdown.
func (s *Server) Serve() error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln == nil {
		return errors.New("server is not listening")
	}

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Start binds and serves. This is blocking.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown stops accepting requests, closes every live session and waits for
// their actuators to be released or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)

	// hijacked connections are not tracked by http.Server
	n := s.sessions.closeAll()
	if n > 0 {
		s.logger.Info("closing live sessions", "count", n)
	}
	if werr := s.sessions.wait(ctx); werr != nil {
		err = errors.Join(err, werr)
	}
	return err
}

// SessionCount returns the number of live WebSocket sessions
func (s *Server) SessionCount() int {
	return s.sessions.count()
}

// recoverMiddleware prevents panics from crashing the whole server
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic in handler", "path", r.URL.Path, "panic", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

// handleHealth handles GET /health (for monitoring)
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.sessions.count(),
	})
}
