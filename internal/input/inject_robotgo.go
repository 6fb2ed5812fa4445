//go:build cgo

package input

import (
	"fmt"
	"os"
	"runtime"
	"sync/atomic"

	"github.com/go-vgo/robotgo"
)

// Injector injects input through robotgo
type Injector struct {
	closed atomic.Bool
}

// NewInjector creates an injector for the current desktop session.
// It fails with ErrNoBackend when no display can be reached.
func NewInjector() (*Injector, error) {
	if runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" {
		return nil, fmt.Errorf("%w: DISPLAY is not set", ErrNoBackend)
	}

	w, h := robotgo.GetScreenSize()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: no screen detected", ErrNoBackend)
	}

	return &Injector{}, nil
}

// InjectMouseMove moves the pointer relative to its current position
func (i *Injector) InjectMouseMove(dx, dy int32) error {
	if i.closed.Load() {
		return ErrClosed
	}
	robotgo.MoveRelative(int(dx), int(dy))
	return nil
}

// InjectClick clicks a mouse button once
func (i *Injector) InjectClick(button Button) error {
	if i.closed.Load() {
		return ErrClosed
	}
	if button != ButtonLeft && button != ButtonRight {
		return fmt.Errorf("unsupported button %d", button)
	}
	robotgo.Click(button.String(), false)
	return nil
}

// InjectWheel scrolls vertically, positive is up
func (i *Injector) InjectWheel(amount int32) error {
	if i.closed.Load() {
		return ErrClosed
	}
	robotgo.Scroll(0, int(amount))
	return nil
}

// InjectText types text as unicode characters
func (i *Injector) InjectText(text string) error {
	if i.closed.Load() {
		return ErrClosed
	}
	robotgo.TypeStr(text)
	return nil
}

// InjectKeyTap presses and releases a key
func (i *Injector) InjectKeyTap(key Key) error {
	if i.closed.Load() {
		return ErrClosed
	}
	name := key.String()
	if name == "unknown" {
		return fmt.Errorf("unsupported key %d", key)
	}
	if err := robotgo.KeyTap(name); err != nil {
		return fmt.Errorf("key tap %s: %w", name, err)
	}
	return nil
}

// Close marks the injector as released. Further injections fail with ErrClosed.
func (i *Injector) Close() error {
	i.closed.Store(true)
	return nil
}
