// Package input defines backend-neutral input events and a dispatcher that
// routes them to registered handlers.
package input

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

func (t EventType) String() string {
	switch t {
	case EventQuit:
		return "quit"
	case EventResize:
		return "resize"
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventMouseMove:
		return "mousemove"
	case EventMouseDown:
		return "mousedown"
	case EventMouseUp:
		return "mouseup"
	default:
		return "none"
	}
}

// Key is a keyboard key the application reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeySpace
	KeyEnter
	KeyEscape
	KeyF12
	KeyP
	KeyM
)

// Event represents a processed input event.
type Event struct {
	Type EventType
	Key  Key

	// Resize: drawable size in pixels.
	Width  int
	Height int

	// Mouse: window coordinates and the same point normalised to [-1, 1]
	// with +Y up.
	X, Y   int
	NX, NY float32
	Button uint8

	// Interactive is set by the dispatcher's hit test when the pointer is
	// over an element that handles its own clicks.
	Interactive bool
}

// IsMouse reports whether e carries a pointer position.
func (e Event) IsMouse() bool {
	return e.Type == EventMouseMove || e.Type == EventMouseDown || e.Type == EventMouseUp
}

// Normalize maps window coordinates to [-1, 1] with +Y up.
func Normalize(x, y, width, height int) (float32, float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	nx := float32(x)/float32(width)*2 - 1
	ny := -(float32(y)/float32(height)*2 - 1)
	return nx, ny
}
