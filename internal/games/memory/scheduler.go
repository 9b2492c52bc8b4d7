package memory

import (
	"container/heap"
	"time"
)

// Scheduler is a virtual clock with a timer queue. Time only moves when
// Advance is called, which keeps timed transitions deterministic.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers timerQueue
}

type timer struct {
	due time.Duration
	seq uint64
	fn  func()
}

// NewScheduler returns a scheduler with its clock at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once d has elapsed on the virtual clock.
// Negative durations are treated as zero.
func (s *Scheduler) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	s.seq++
	heap.Push(&s.timers, &timer{due: s.now + d, seq: s.seq, fn: fn})
}

// Advance moves the clock forward by d and fires every timer that is due,
// ordered by due time and then by scheduling order. While a timer runs,
// Now reports its due time, so timers it schedules are relative to it and
// fire within the same Advance if they fall inside the window.
// Returns the number of timers fired.
func (s *Scheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := s.now + d
	fired := 0
	for len(s.timers) > 0 && s.timers[0].due <= target {
		t := heap.Pop(&s.timers).(*timer)
		if t.due > s.now {
			s.now = t.due
		}
		t.fn()
		fired++
	}
	s.now = target
	return fired
}

// Pending returns the number of timers waiting to fire.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// timerQueue implements heap.Interface ordered by (due, seq).
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) { *q = append(*q, x.(*timer)) }

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
