package state

import (
	"go.uber.org/zap"

	"github.com/Faultbox/launchpad/internal/logger"
)

// Listener is told about a completed transition.
type Listener func(from, to State)

// ListenerID identifies a registration for Off.
type ListenerID uint64

type subscription struct {
	id  ListenerID
	any bool
	on  State
	fn  Listener
}

// Machine holds the current state and notifies listeners on change. It is
// used from the frame thread only.
type Machine struct {
	current State
	subs    []subscription
	nextID  ListenerID
	log     *zap.Logger
}

// NewMachine creates a machine in Idle. A nil logger uses the global one.
func NewMachine(log *zap.Logger) *Machine {
	return &Machine{
		current: Idle,
		log:     logger.Or(log, "state"),
	}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.current
}

// CanInteract reports whether pointer interaction is allowed.
func (m *Machine) CanInteract() bool {
	return m.current == Idle
}

// CanShoot reports whether a launch may start.
func (m *Machine) CanShoot() bool {
	return m.current == Idle
}

// Transition moves to the requested state if the edge is allowed, then
// synchronously notifies listeners registered for that state followed by
// change listeners. A rejected request logs a warning, leaves the state
// unchanged and returns false.
func (m *Machine) Transition(to State) bool {
	from := m.current
	next, err := Next(from, to)
	if err != nil {
		m.log.Warn("transition rejected",
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)
		return false
	}
	m.current = next
	m.log.Debug("transition",
		zap.Stringer("from", from),
		zap.Stringer("to", next),
	)
	m.notify(from, next)
	return true
}

func (m *Machine) notify(from, to State) {
	snapshot := m.subs
	for _, s := range snapshot {
		if s.any || s.on != to {
			continue
		}
		if m.subscribed(s.id) {
			s.fn(from, to)
		}
	}
	for _, s := range snapshot {
		if !s.any {
			continue
		}
		if m.subscribed(s.id) {
			s.fn(from, to)
		}
	}
}

func (m *Machine) subscribed(id ListenerID) bool {
	for _, s := range m.subs {
		if s.id == id {
			return true
		}
	}
	return false
}

// On registers fn for transitions into s.
func (m *Machine) On(s State, fn Listener) ListenerID {
	return m.add(subscription{on: s, fn: fn})
}

// OnChange registers fn for every transition.
func (m *Machine) OnChange(fn Listener) ListenerID {
	return m.add(subscription{any: true, fn: fn})
}

func (m *Machine) add(s subscription) ListenerID {
	m.nextID++
	s.id = m.nextID
	m.subs = append(m.subs, s)
	return s.id
}

// Off removes a registration. Safe to call from inside a listener.
func (m *Machine) Off(id ListenerID) bool {
	for i, s := range m.subs {
		if s.id == id {
			m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Listeners returns the number of registrations.
func (m *Machine) Listeners() int {
	return len(m.subs)
}
