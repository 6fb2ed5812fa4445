// Package input provides OS level pointer and keyboard injection.
package input

import "errors"

// Button identifies a mouse button
type Button int

const (
	ButtonLeft Button = iota + 1
	ButtonRight
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	default:
		return "unknown"
	}
}

// Key identifies one of the keys an Actuator can tap.
type Key int

const (
	KeyEscape Key = iota + 1
	KeyPageUp
	KeyPageDown
	KeyBackspace
	KeyReturn
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeyPageUp:
		return "pageup"
	case KeyPageDown:
		return "pagedown"
	case KeyBackspace:
		return "backspace"
	case KeyReturn:
		return "enter"
	default:
		return "unknown"
	}
}

var (
	// ErrNoBackend is returned by NewInjector when the platform cannot inject input
	ErrNoBackend = errors.New("no input backend available")

	// ErrClosed is returned by injections on a closed Injector
	ErrClosed = errors.New("injector closed")
)

// Actuator injects input events into the desktop session.
// Implementations are not safe for concurrent use; callers serialize access.
type Actuator interface {
	// InjectMouseMove moves the pointer by a relative delta
	InjectMouseMove(dx, dy int32) error

	// InjectClick presses and releases a button once
	InjectClick(button Button) error

	// InjectWheel scrolls vertically; positive amounts scroll up
	InjectWheel(amount int32) error

	// InjectText types text as literal characters
	InjectText(text string) error

	// InjectKeyTap presses and releases a key
	InjectKeyTap(key Key) error

	// Close releases the device
	Close() error
}

var _ Actuator = (*Injector)(nil)

// New creates the platform Actuator.
func New() (Actuator, error) {
	inj, err := NewInjector()
	if err != nil {
		return nil, err
	}
	return inj, nil
}
