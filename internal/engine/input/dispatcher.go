package input

// Handler receives dispatched events.
type Handler func(Event)

// ListenerID identifies a registration for Off.
type ListenerID uint64

// HitTest reports whether the window point (x, y) is over an interactive
// element.
type HitTest func(x, y int) bool

type listener struct {
	id      ListenerID
	typ     EventType
	handler Handler
}

// Dispatcher fans events out to handlers by type. It is used from the frame
// thread only.
type Dispatcher struct {
	listeners []listener
	nextID    ListenerID
	hitTest   HitTest
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// SetHitTest installs the test used to flag interactive pointer events.
func (d *Dispatcher) SetHitTest(fn HitTest) {
	d.hitTest = fn
}

// On registers h for events of type t.
func (d *Dispatcher) On(t EventType, h Handler) ListenerID {
	d.nextID++
	d.listeners = append(d.listeners, listener{id: d.nextID, typ: t, handler: h})
	return d.nextID
}

// Off removes a registration. Returns false if id is unknown.
func (d *Dispatcher) Off(id ListenerID) bool {
	for i, l := range d.listeners {
		if l.id == id {
			d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered handlers.
func (d *Dispatcher) Len() int {
	return len(d.listeners)
}

// Dispatch delivers e to every handler registered for its type, in
// registration order. Handlers removed during dispatch are not called.
func (d *Dispatcher) Dispatch(e Event) {
	if e.IsMouse() && d.hitTest != nil {
		e.Interactive = d.hitTest(e.X, e.Y)
	}

	snapshot := d.listeners
	for _, l := range snapshot {
		if l.typ != e.Type || !d.registered(l.id) {
			continue
		}
		l.handler(e)
	}
}

func (d *Dispatcher) registered(id ListenerID) bool {
	for _, l := range d.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}
