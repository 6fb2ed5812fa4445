// Package relay applies touch-surface commands to an input Actuator, one
// WebSocket connection at a time.
package relay

import (
	"fmt"
	"log/slog"
	"time"

	"touchrelay/internal/input"
	"touchrelay/internal/protocol"
)

// DefaultClickInterval separates consecutive clicks of a multi-click so the
// OS registers them as distinct clicks.
const DefaultClickInterval = 50 * time.Millisecond

// ActuatorError reports a failed injection.
type ActuatorError struct {
	Op  string
	Err error
}

func (e *ActuatorError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ActuatorError) Unwrap() error { return e.Err }

// Dispatcher maps commands to Actuator calls.
type Dispatcher struct {
	// ClickInterval is slept between clicks when a click count is above one
	ClickInterval time.Duration

	logger *slog.Logger
}

// NewDispatcher creates a dispatcher using DefaultClickInterval
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		ClickInterval: DefaultClickInterval,
		logger:        logger,
	}
}

// Dispatch performs the actuator calls for cmd. The caller must hold
// exclusive access to act for the whole call, including click delays.
func (d *Dispatcher) Dispatch(cmd protocol.Command, act input.Actuator) error {
	switch c := cmd.(type) {
	case protocol.MouseMove:
		return actuatorErr("mouse move", act.InjectMouseMove(c.DX, c.DY))

	case protocol.ButtonClick:
		button, err := resolveButton(c.Button)
		if err != nil {
			return err
		}
		for i := uint32(0); i < c.Count; i++ {
			if i > 0 {
				time.Sleep(d.ClickInterval)
			}
			if err := act.InjectClick(button); err != nil {
				return actuatorErr("button click", err)
			}
		}
		return nil

	case protocol.Wheel:
		return actuatorErr("wheel scroll", act.InjectWheel(c.DY))

	case protocol.TextInput:
		return actuatorErr("text input", act.InjectText(c.Text))

	case protocol.KeyPress:
		key, err := resolveKey(c.Key)
		if err != nil {
			return err
		}
		if err := act.InjectKeyTap(key); err != nil {
			return actuatorErr("key press", err)
		}
		d.logger.Debug("key pressed", "key", c.Key, "mapped", key)
		return nil

	case protocol.Ping:
		d.logger.Debug("ping received")
		return nil
	}

	return fmt.Errorf("%w: %T", protocol.ErrUnknownCommand, cmd)
}

func actuatorErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ActuatorError{Op: op, Err: err}
}

func resolveButton(b protocol.Button) (input.Button, error) {
	switch b {
	case protocol.ButtonLeft:
		return input.ButtonLeft, nil
	case protocol.ButtonRight:
		return input.ButtonRight, nil
	}
	return 0, fmt.Errorf("%w: %q", protocol.ErrUnknownButton, b)
}

// resolveKey maps wire key names to actuator keys.
// Delete taps Backspace: the touch surface's Del button erases backwards.
func resolveKey(k protocol.Key) (input.Key, error) {
	switch k {
	case protocol.KeyEscape:
		return input.KeyEscape, nil
	case protocol.KeyPageUp:
		return input.KeyPageUp, nil
	case protocol.KeyPageDown:
		return input.KeyPageDown, nil
	case protocol.KeyDelete:
		return input.KeyBackspace, nil
	case protocol.KeyReturn:
		return input.KeyReturn, nil
	}
	return 0, fmt.Errorf("%w: %q", protocol.ErrUnknownKey, k)
}
