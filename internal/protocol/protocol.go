// Package protocol defines the touch-surface wire format: one JSON array per
// WebSocket text frame, tagged by its first element.
package protocol

import "fmt"

// Command tags
const (
	// TagMove is ["m", dx, dy]: relative pointer move
	TagMove = "m"

	// TagButton is ["b", "l"|"r", count]: click a button count times
	TagButton = "b"

	// TagWheel is ["w", dy]: vertical scroll, positive = up
	TagWheel = "w"

	// TagText is ["t", text]: insert literal text
	TagText = "t"

	// TagKey is ["k", name]: press a named key
	TagKey = "k"

	// TagPing is ["ping"]: client heartbeat
	TagPing = "ping"
)

// Button is the wire name of a mouse button.
type Button string

const (
	ButtonLeft  Button = "l"
	ButtonRight Button = "r"
)

// Key is the wire name of one of the supported special keys.
type Key string

const (
	KeyEscape   Key = "Escape"
	KeyPageUp   Key = "PageUp"
	KeyPageDown Key = "PageDown"
	KeyDelete   Key = "Delete"
	KeyReturn   Key = "Return"
)

var buttons = map[string]Button{
	string(ButtonLeft):  ButtonLeft,
	string(ButtonRight): ButtonRight,
}

var keys = map[string]Key{
	string(KeyEscape):   KeyEscape,
	string(KeyPageUp):   KeyPageUp,
	string(KeyPageDown): KeyPageDown,
	string(KeyDelete):   KeyDelete,
	string(KeyReturn):   KeyReturn,
}

// Command is a decoded input message. The set of implementations is closed:
// MouseMove, ButtonClick, Wheel, TextInput, KeyPress and Ping.
type Command interface {
	// Tag returns the wire tag of the command
	Tag() string
	command()
}

// MouseMove moves the pointer by a relative delta.
type MouseMove struct {
	DX int32
	DY int32
}

// ButtonClick clicks Button Count times.
type ButtonClick struct {
	Button Button
	Count  uint32
}

// Wheel scrolls vertically. Positive DY scrolls up.
type Wheel struct {
	DY int32
}

// TextInput inserts Text as literal characters.
type TextInput struct {
	Text string
}

// KeyPress activates a single named key.
type KeyPress struct {
	Key Key
}

// Ping is a heartbeat with no input effect.
type Ping struct{}

func (MouseMove) Tag() string   { return TagMove }
func (ButtonClick) Tag() string { return TagButton }
func (Wheel) Tag() string       { return TagWheel }
func (TextInput) Tag() string   { return TagText }
func (KeyPress) Tag() string    { return TagKey }
func (Ping) Tag() string        { return TagPing }

func (MouseMove) command()   {}
func (ButtonClick) command() {}
func (Wheel) command()       {}
func (TextInput) command()   {}
func (KeyPress) command()    {}
func (Ping) command()        {}

func (c MouseMove) String() string   { return fmt.Sprintf("move(%d, %d)", c.DX, c.DY) }
func (c ButtonClick) String() string { return fmt.Sprintf("click(%s x%d)", c.Button, c.Count) }
func (c Wheel) String() string       { return fmt.Sprintf("wheel(%d)", c.DY) }
func (c TextInput) String() string   { return fmt.Sprintf("text(%d bytes)", len(c.Text)) }
func (c KeyPress) String() string    { return fmt.Sprintf("key(%s)", c.Key) }
func (Ping) String() string          { return "ping" }
