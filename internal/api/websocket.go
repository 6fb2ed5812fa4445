package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"touchrelay/internal/relay"

	"github.com/gorilla/websocket"
)

const closeWriteTimeout = time.Second

// handleWebSocket upgrades the request and runs one relay session on it.
// The session lives as long as this handler.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// Any origin: the page is served to phones on the local network
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	if s.cfg.MaxFrameBytes > 0 {
		conn.SetReadLimit(s.cfg.MaxFrameBytes)
	}

	sess := relay.NewSession(conn, r.RemoteAddr, s.newActuator, s.logger)
	if !s.sessions.add(sess.ID, conn) {
		writeClose(conn, websocket.CloseGoingAway, "server shutting down")
		return
	}
	defer s.sessions.remove(sess.ID)

	if err := sess.Run(); errors.Is(err, relay.ErrActuatorConstruction) {
		writeClose(conn, websocket.CloseInternalServerErr, "input device unavailable")
	}
}

func writeClose(conn *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWriteTimeout))
}

// sessionRegistry tracks live connections so they can be counted and
// force-closed. It never touches the sessions' actuators.
type sessionRegistry struct {
	mu     sync.Mutex
	conns  map[string]*websocket.Conn
	closed bool
	wg     sync.WaitGroup
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{conns: make(map[string]*websocket.Conn)}
}

// add registers conn; it reports false once the registry is closed
func (r *sessionRegistry) add(id string, conn *websocket.Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	r.conns[id] = conn
	r.wg.Add(1)
	return true
}

func (r *sessionRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[id]; ok {
		delete(r.conns, id)
		r.wg.Done()
	}
}

func (r *sessionRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// closeAll sends a going-away close frame to every live connection, closes
// them and refuses new ones. It returns how many were closed.
func (r *sessionRegistry) closeAll() int {
	r.mu.Lock()
	r.closed = true
	conns := make([]*websocket.Conn, 0, len(r.conns))
	for _, c := range r.conns {
		conns = append(conns, c)
	}
	r.mu.Unlock()

	for _, c := range conns {
		writeClose(c, websocket.CloseGoingAway, "server shutting down")
		c.Close()
	}
	return len(conns)
}

// wait blocks until every registered session has been removed
func (r *sessionRegistry) wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
