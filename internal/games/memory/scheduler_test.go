package memory

import (
	"testing"
	"time"
)

func TestSchedulerFiresInDueOrder(t *testing.T) {
	s := NewScheduler()
	var got []string

	s.After(30*time.Millisecond, func() { got = append(got, "c") })
	s.After(10*time.Millisecond, func() { got = append(got, "a") })
	s.After(10*time.Millisecond, func() { got = append(got, "b") })
	s.After(50*time.Millisecond, func() { got = append(got, "late") })

	if n := s.Advance(30 * time.Millisecond); n != 3 {
		t.Fatalf("fired %d timers, want 3", n)
	}
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", s.Pending())
	}
	if s.Now() != 30*time.Millisecond {
		t.Errorf("Now() = %v, want 30ms", s.Now())
	}
}

func TestSchedulerReentrantTimers(t *testing.T) {
	s := NewScheduler()
	var at []time.Duration

	s.After(100*time.Millisecond, func() {
		at = append(at, s.Now())
		s.After(50*time.Millisecond, func() {
			at = append(at, s.Now())
			s.After(0, func() { at = append(at, s.Now()) })
		})
		s.After(500*time.Millisecond, func() { at = append(at, s.Now()) })
	})

	s.Advance(200 * time.Millisecond)

	want := []time.Duration{100 * time.Millisecond, 150 * time.Millisecond, 150 * time.Millisecond}
	if len(at) != len(want) {
		t.Fatalf("fired at %v, want %v", at, want)
	}
	for i := range want {
		if at[i] != want[i] {
			t.Errorf("timer %d fired at %v, want %v", i, at[i], want[i])
		}
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", s.Pending())
	}

	s.Advance(400 * time.Millisecond)
	if len(at) != 4 || at[3] != 600*time.Millisecond {
		t.Errorf("last timer fired at %v, want 600ms", at)
	}
}

func TestSchedulerNegativeDurations(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After(-time.Second, func() { fired = true })

	s.Advance(-time.Second)
	if !fired {
		t.Error("timer with negative delay should fire on the next Advance")
	}
	if s.Now() != 0 {
		t.Errorf("Now() = %v, clock must not move backwards", s.Now())
	}
}
