package clock

import (
	"testing"
	"time"
)

func TestTimersFireInDueOrder(t *testing.T) {
	c := NewManual()
	timers := NewTimers(c)

	var fired []string
	timers.After(300*time.Millisecond, func() { fired = append(fired, "late") })
	timers.After(100*time.Millisecond, func() { fired = append(fired, "early") })

	c.Advance(50 * time.Millisecond)
	timers.Advance()
	if len(fired) != 0 {
		t.Fatalf("fired too early: %v", fired)
	}

	c.Advance(500 * time.Millisecond)
	timers.Advance()
	if len(fired) != 2 || fired[0] != "early" || fired[1] != "late" {
		t.Errorf("fired = %v, want [early late]", fired)
	}
	if timers.Pending() != 0 {
		t.Errorf("pending = %d, want 0", timers.Pending())
	}
}

func TestTimersFireOnce(t *testing.T) {
	c := NewManual()
	timers := NewTimers(c)

	count := 0
	timers.After(10*time.Millisecond, func() { count++ })
	for i := 0; i < 5; i++ {
		c.Advance(16 * time.Millisecond)
		timers.Advance()
	}
	if count != 1 {
		t.Errorf("callback ran %d times, want 1", count)
	}
}

func TestTimersCancel(t *testing.T) {
	c := NewManual()
	timers := NewTimers(c)

	ran := false
	id := timers.After(time.Second, func() { ran = true })
	if !timers.Cancel(id) {
		t.Fatal("Cancel returned false for a pending timer")
	}
	if timers.Cancel(id) {
		t.Error("second Cancel returned true")
	}

	c.Advance(2 * time.Second)
	timers.Advance()
	if ran {
		t.Error("cancelled timer fired")
	}
}

func TestTimersCancelAll(t *testing.T) {
	c := NewManual()
	timers := NewTimers(c)

	ran := 0
	timers.After(time.Millisecond, func() { ran++ })
	timers.After(time.Second, func() { ran++ })
	timers.CancelAll()

	c.Advance(time.Minute)
	timers.Advance()
	if ran != 0 {
		t.Errorf("%d timers fired after CancelAll", ran)
	}
}

func TestTimersRescheduleFromCallback(t *testing.T) {
	c := NewManual()
	timers := NewTimers(c)

	second := false
	timers.After(0, func() {
		timers.After(0, func() { second = true })
	})

	timers.Advance()
	if second {
		t.Fatal("timer scheduled during Advance fired in the same Advance")
	}
	timers.Advance()
	if !second {
		t.Error("rescheduled timer never fired")
	}
}

func TestSeconds(t *testing.T) {
	if got := Seconds(1500 * time.Millisecond); got != 1.5 {
		t.Errorf("Seconds(1.5s) = %v", got)
	}
}

func TestTimersCancelFromCallback(t *testing.T) {
	c := NewManual()
	timers := NewTimers(c)

	ran := false
	var victim TimerID
	timers.After(time.Millisecond, func() { timers.Cancel(victim) })
	victim = timers.After(2*time.Millisecond, func() { ran = true })

	c.Advance(time.Second)
	timers.Advance()
	if ran {
		t.Error("timer cancelled by an earlier callback still fired")
	}
}
