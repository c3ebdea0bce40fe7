package input

import (
	"fmt"
	"time"

	"github.com/lixenwraith/termvis/geom"
)

// EventKind is the platform-level event category delivered by a Source
type EventKind uint8

const (
	EventFocusGained EventKind = iota
	EventFocusLost
	EventKeyPress
	EventKeyRelease
	EventMouseDown
	EventMouseUp
	EventMouseMove
	EventMouseWheel
	EventPaste
	EventResize
)

var eventKindNames = [...]string{
	EventFocusGained: "focus-gained",
	EventFocusLost:   "focus-lost",
	EventKeyPress:    "key-press",
	EventKeyRelease:  "key-release",
	EventMouseDown:   "mouse-down",
	EventMouseUp:     "mouse-up",
	EventMouseMove:   "mouse-move",
	EventMouseWheel:  "mouse-wheel",
	EventPaste:       "paste",
	EventResize:      "resize",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("event(%d)", k)
}

// Event is one decoded platform event. Fields not relevant to Kind are zero.
type Event struct {
	Kind      EventKind
	Key       Key
	Rune      rune
	Modifiers Modifier

	// Mouse events, column and row
	Position geom.Position
	Button   MouseButton
	Delta    int16
	Vertical bool

	// EventPaste
	Text string

	// EventResize, new terminal extent
	Size geom.Size
}

func (e Event) KeyArgs() KeyArgs {
	st := KeyPressed
	if e.Kind == EventKeyRelease {
		st = KeyReleased
	}
	return KeyArgs{Key: e.Key, Rune: e.Rune, Modifiers: e.Modifiers, State: st}
}

func (e Event) MouseArgs() MouseArgs {
	return MouseArgs{Position: e.Position, Modifiers: e.Modifiers}
}

func (e Event) WheelArgs() WheelArgs {
	return WheelArgs{Position: e.Position, Modifiers: e.Modifiers, Delta: e.Delta, Vertical: e.Vertical}
}

func (e Event) ButtonArgs() ButtonArgs {
	return ButtonArgs{Position: e.Position, Modifiers: e.Modifiers, Button: e.Button}
}

func (e Event) PasteArgs() PasteArgs {
	return PasteArgs{Text: e.Text}
}

func (e Event) String() string {
	switch e.Kind {
	case EventKeyPress, EventKeyRelease:
		if e.Key == KeyRune {
			return fmt.Sprintf("%s %q mod=%s", e.Kind, e.Rune, e.Modifiers)
		}
		return fmt.Sprintf("%s %s mod=%s", e.Kind, e.Key, e.Modifiers)
	case EventMouseDown, EventMouseUp:
		return fmt.Sprintf("%s %s at %v", e.Kind, e.Button, e.Position)
	case EventMouseMove:
		return fmt.Sprintf("%s %v", e.Kind, e.Position)
	case EventMouseWheel:
		return fmt.Sprintf("%s %+d vertical=%t at %v", e.Kind, e.Delta, e.Vertical, e.Position)
	case EventPaste:
		return fmt.Sprintf("%s %d bytes", e.Kind, len(e.Text))
	case EventResize:
		return fmt.Sprintf("%s %v", e.Kind, e.Size)
	}
	return e.Kind.String()
}

// Source delivers platform events to the driver
type Source interface {
	// Poll blocks up to timeout and reports whether Read will return without blocking
	Poll(timeout time.Duration) (bool, error)
	// Read returns the next event
	Read() (Event, error)
}
