package clock

import "time"

// TimerID identifies a scheduled timer. The zero value is never issued.
type TimerID uint64

type timer struct {
	id  TimerID
	due time.Duration
	fn  func()
}

// Timers is a set of one-shot callbacks fired from the frame loop.
// It is not safe for concurrent use; everything runs on the frame thread.
type Timers struct {
	clock   Clock
	pending []timer
	nextID  TimerID
}

// NewTimers creates a timer set reading time from c.
func NewTimers(c Clock) *Timers {
	return &Timers{clock: c}
}

// After schedules fn to run on the first Advance at or after now+d.
func (t *Timers) After(d time.Duration, fn func()) TimerID {
	t.nextID++
	t.pending = append(t.pending, timer{id: t.nextID, due: t.clock.Now() + d, fn: fn})
	return t.nextID
}

// Cancel removes a pending timer. It reports whether the timer was still pending.
func (t *Timers) Cancel(id TimerID) bool {
	for i, tm := range t.pending {
		if tm.id == id {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending timer.
func (t *Timers) CancelAll() {
	t.pending = t.pending[:0]
}

// Pending returns the number of timers that have not fired yet.
func (t *Timers) Pending() int {
	return len(t.pending)
}

// Advance fires every timer due at the current clock time, earliest first.
// A timer cancelled by an earlier callback does not fire. Timers scheduled by
// a callback wait for the next Advance even when already due.
func (t *Timers) Advance() {
	now := t.clock.Now()
	limit := t.nextID
	for {
		idx := -1
		for i, tm := range t.pending {
			if tm.id > limit || tm.due > now {
				continue
			}
			if idx < 0 || tm.due < t.pending[idx].due {
				idx = i
			}
		}
		if idx < 0 {
			return
		}
		tm := t.pending[idx]
		t.pending = append(t.pending[:idx], t.pending[idx+1:]...)
		tm.fn()
	}
}
