package relay

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"touchrelay/internal/input"

	"github.com/gorilla/websocket"
)

// --- Mocks ---

type call struct {
	Op  string
	Arg string
	At  time.Time
}

// recordingActuator records every call and flags overlapping calls.
type recordingActuator struct {
	mu       sync.Mutex
	calls    []call
	inFlight atomic.Int32
	overlaps atomic.Int32
	closed   atomic.Int32

	hold    time.Duration
	failOps map[string]error
}

func (r *recordingActuator) record(op, arg string) error {
	if r.inFlight.Add(1) > 1 {
		r.overlaps.Add(1)
	}
	defer r.inFlight.Add(-1)

	if r.hold > 0 {
		time.Sleep(r.hold)
	}

	r.mu.Lock()
	r.calls = append(r.calls, call{Op: op, Arg: arg, At: time.Now()})
	r.mu.Unlock()

	if err, ok := r.failOps[op]; ok {
		return err
	}
	return nil
}

func (r *recordingActuator) InjectMouseMove(dx, dy int32) error {
	return r.record("move", fmt.Sprintf("%d,%d", dx, dy))
}

func (r *recordingActuator) InjectClick(b input.Button) error {
	return r.record("click", b.String())
}

func (r *recordingActuator) InjectWheel(amount int32) error {
	return r.record("wheel", fmt.Sprint(amount))
}

func (r *recordingActuator) InjectText(text string) error {
	return r.record("text", text)
}

func (r *recordingActuator) InjectKeyTap(k input.Key) error {
	return r.record("key", k.String())
}

func (r *recordingActuator) Close() error {
	r.closed.Add(1)
	return nil
}

func (r *recordingActuator) Calls() []call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]call, len(r.calls))
	copy(out, r.calls)
	return out
}

func (r *recordingActuator) Ops() []string {
	var ops []string
	for _, c := range r.Calls() {
		ops = append(ops, c.Op+":"+c.Arg)
	}
	return ops
}

type frame struct {
	messageType int
	data        []byte
	err         error
}

// scriptedConn replays frames, then reports the final error.
type scriptedConn struct {
	mu     sync.Mutex
	frames []frame
	reads  int
	end    error
}

func newScriptedConn(end error, texts ...string) *scriptedConn {
	c := &scriptedConn{end: end}
	for _, t := range texts {
		c.frames = append(c.frames, frame{messageType: websocket.TextMessage, data: []byte(t)})
	}
	return c
}

func (c *scriptedConn) ReadMessage() (int, []byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads++
	if len(c.frames) == 0 {
		return 0, nil, c.end
	}
	f := c.frames[0]
	c.frames = c.frames[1:]
	return f.messageType, f.data, f.err
}

func (c *scriptedConn) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

var (
	normalClose = &websocket.CloseError{Code: websocket.CloseNormalClosure}
	goingAway   = &websocket.CloseError{Code: websocket.CloseGoingAway}
	droppedConn = &websocket.CloseError{Code: websocket.CloseAbnormalClosure, Text: io.ErrUnexpectedEOF.Error()}
	errBroken   = errors.New("connection reset by peer")
)

func factoryFor(act input.Actuator) ActuatorFactory {
	return func() (input.Actuator, error) { return act, nil }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
