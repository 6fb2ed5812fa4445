package relay

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"touchrelay/internal/input"
	"touchrelay/internal/protocol"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var (
	// ErrActuatorConstruction means the session never started: no input device could be created
	ErrActuatorConstruction = errors.New("failed to create input actuator")

	// ErrTransport means the connection failed while reading frames
	ErrTransport = errors.New("transport error")
)

// State is the lifecycle state of a Session
type State int32

const (
	stateIdle State = iota
	StateOpen
	StateDraining
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateDraining:
		return "draining"
	case StateClosed:
		return "closed"
	default:
		return "idle"
	}
}

// FrameReader is the receive side of a WebSocket connection.
// *websocket.Conn satisfies it.
type FrameReader interface {
	ReadMessage() (messageType int, p []byte, err error)
}

// ActuatorFactory creates the Actuator owned by one session.
type ActuatorFactory func() (input.Actuator, error)

// Device guards an Actuator so only one dispatch uses it at a time.
type Device struct {
	mu     sync.Mutex
	act    input.Actuator
	closed bool
}

// NewDevice wraps act
func NewDevice(act input.Actuator) *Device {
	return &Device{act: act}
}

// Do runs fn with exclusive access to the Actuator. The lock is held until fn
// returns, including any sleeps inside it.
func (d *Device) Do(fn func(input.Actuator) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return input.ErrClosed
	}
	return fn(d.act)
}

// Close releases the Actuator once. It waits for an in-flight Do to finish.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return d.act.Close()
}

// Session relays frames from one connection to its own Actuator. Frames are
// handled strictly in order: the next frame is not read until the previous
// one has been fully applied.
type Session struct {
	ID     string
	Remote string

	conn        FrameReader
	newActuator ActuatorFactory
	dispatcher  *Dispatcher
	logger      *slog.Logger

	state      atomic.Int32
	dispatched atomic.Uint64
	rejected   atomic.Uint64
}

// NewSession creates a session for conn. Nothing happens until Run.
func NewSession(conn FrameReader, remote string, newActuator ActuatorFactory, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	logger = logger.With("session", id, "remote", remote)

	return &Session{
		ID:          id,
		Remote:      remote,
		conn:        conn,
		newActuator: newActuator,
		dispatcher:  NewDispatcher(logger),
		logger:      logger,
	}
}

// Dispatcher returns the session's dispatcher so callers can tune it before Run
func (s *Session) Dispatcher() *Dispatcher { return s.dispatcher }

// State returns the current lifecycle state
func (s *Session) State() State { return State(s.state.Load()) }

// Dispatched returns the number of frames applied successfully
func (s *Session) Dispatched() uint64 { return s.dispatched.Load() }

// Rejected returns the number of frames that failed to parse or dispatch
func (s *Session) Rejected() uint64 { return s.rejected.Load() }

func (s *Session) setState(st State) { s.state.Store(int32(st)) }

// Run creates the Actuator and processes frames until the peer closes the
// connection or a read fails. A clean close returns nil.
//
// Failures to parse or apply a single frame are logged and skipped; they
// never end the session. The Actuator is released on every exit path.
func (s *Session) Run() error {
	act, err := s.newActuator()
	if err != nil {
		s.setState(StateClosed)
		s.logger.Error("failed to create input actuator", "error", err)
		return fmt.Errorf("%w: %w", ErrActuatorConstruction, err)
	}

	dev := NewDevice(act)
	s.setState(StateOpen)
	s.logger.Info("session opened")

	defer func() {
		if err := dev.Close(); err != nil {
			s.logger.Warn("failed to release input actuator", "error", err)
		}
		s.setState(StateClosed)
		s.logger.Info("session closed",
			"dispatched", s.dispatched.Load(),
			"rejected", s.rejected.Load())
	}()

	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			if isCloseFrame(err) {
				s.setState(StateDraining)
				s.logger.Info("connection closed by peer", "reason", err)
				return nil
			}
			s.logger.Error("websocket read failed", "error", err)
			return fmt.Errorf("%w: %w", ErrTransport, err)
		}

		if messageType != websocket.TextMessage {
			s.logger.Debug("ignoring non-text frame", "type", messageType, "bytes", len(data))
			continue
		}

		if err := s.handleFrame(dev, data); err != nil {
			s.rejected.Add(1)
			s.logger.Warn("failed to handle message", "frame", string(data), "error", err)
			continue
		}
		s.dispatched.Add(1)
	}
}

func (s *Session) handleFrame(dev *Device, data []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while dispatching: %v", r)
		}
	}()

	cmd, err := protocol.Parse(data)
	if err != nil {
		return err
	}
	return dev.Do(func(act input.Actuator) error {
		return s.dispatcher.Dispatch(cmd, act)
	})
}

// isCloseFrame reports whether err came from a close frame sent by the peer.
// gorilla reports a dropped TCP connection as CloseAbnormalClosure, which is
// never sent on the wire.
func isCloseFrame(err error) bool {
	var ce *websocket.CloseError
	return errors.As(err, &ce) && ce.Code != websocket.CloseAbnormalClosure
}
