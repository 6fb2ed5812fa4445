//go:build !cgo

package input

import (
	"fmt"
)

// Stub implementation for builds without cgo

// Injector represents a stub input injector
type Injector struct{}

// NewInjector always fails: robotgo requires cgo
func NewInjector() (*Injector, error) {
	return nil, fmt.Errorf("%w: built without cgo", ErrNoBackend)
}

// InjectMouseMove injects a mouse movement event (stub)
func (i *Injector) InjectMouseMove(dx, dy int32) error { return ErrNoBackend }

// InjectClick injects a mouse click (stub)
func (i *Injector) InjectClick(button Button) error { return ErrNoBackend }

// InjectWheel injects a scroll event (stub)
func (i *Injector) InjectWheel(amount int32) error { return ErrNoBackend }

// InjectText types text (stub)
func (i *Injector) InjectText(text string) error { return ErrNoBackend }

// InjectKeyTap taps a key (stub)
func (i *Injector) InjectKeyTap(key Key) error { return ErrNoBackend }

// Close is a no-op (stub)
func (i *Injector) Close() error { return nil }
