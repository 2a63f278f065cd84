package modal

import (
	"sync"
	"time"
)

// Timer is a pending animation step.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// ClockScheduler schedules steps on the runtime timer.
type ClockScheduler struct{}

// AfterFunc wraps time.AfterFunc.
func (ClockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualScheduler queues steps until the caller advances it. Used by tests and
// by surfaces that drive the animation from their own loop.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	owner   *ManualScheduler
	fn      func()
	stopped bool
}

// AfterFunc queues f. The delay is ignored.
func (s *ManualScheduler) AfterFunc(_ time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{owner: s, fn: f}
	s.pending = append(s.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

// Pending returns the number of queued, unstopped steps.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Step runs the oldest queued step, reporting whether one ran.
func (s *ManualScheduler) Step() bool {
	s.mu.Lock()
	var next *manualTimer
	for len(s.pending) > 0 {
		t := s.pending[0]
		s.pending = s.pending[1:]
		if !t.stopped {
			t.stopped = true
			next = t
			break
		}
	}
	s.mu.Unlock()

	if next == nil {
		return false
	}
	next.fn()
	return true
}

// RunAll steps until the queue drains and returns the number of steps run.
func (s *ManualScheduler) RunAll() int {
	n := 0
	for s.Step() {
		n++
	}
	return n
}
