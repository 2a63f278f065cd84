// Package modal implements the single detail inspector and its score-counting animation.
package modal

import (
	"math"
	"sync"
	"time"
)

// Animation timing.
const (
	FramePeriod       = 16 * time.Millisecond
	AnimationDuration = 800 * time.Millisecond
	frameCount        = float64(AnimationDuration / FramePeriod)
)

// Reason records why the modal closed.
type Reason string

// Dismiss reasons
const (
	ReasonCloseButton Reason = "close"
	ReasonOutside     Reason = "outside"
	ReasonCancelKey   Reason = "escape"
)

// ParseReason resolves a dismiss reason name.
func ParseReason(s string) (Reason, bool) {
	switch r := Reason(s); r {
	case ReasonCloseButton, ReasonOutside, ReasonCancelKey:
		return r, true
	default:
		return "", false
	}
}

// Frame is one animation update. Frames from a stale generation are never emitted.
type Frame struct {
	Generation uint64 `json:"generation"`
	Value      int    `json:"value"`
	Done       bool   `json:"done"`
}

// Snapshot is the observable modal state.
type Snapshot struct {
	Open       bool    `json:"open"`
	Detail     *Detail `json:"detail,omitempty"`
	Value      int     `json:"value"`
	Animating  bool    `json:"animating"`
	Generation uint64  `json:"generation"`
}

// Controller is the Closed/Open state machine. Content and the animation that
// counts up to it change together under one lock.
type Controller struct {
	scheduler Scheduler

	mu         sync.Mutex
	open       bool
	detail     Detail
	generation uint64
	current    float64
	value      int
	animating  bool
	timer      Timer

	observersMu sync.Mutex
	observers   map[int]func(Frame)
	nextID      int
}

// NewController creates a closed controller. A nil scheduler uses the runtime clock.
func NewController(scheduler Scheduler) *Controller {
	if scheduler == nil {
		scheduler = ClockScheduler{}
	}
	return &Controller{
		scheduler: scheduler,
		observers: make(map[int]func(Frame)),
	}
}

// Open shows d, replacing any open content in place, and restarts the animation from 0.
func (c *Controller) Open(d Detail) uint64 {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	if c.timer != nil {
		c.timer.Stop()
	}
	c.open = true
	c.detail = d
	c.current = 0
	c.value = 0
	c.animating = true
	c.timer = c.scheduler.AfterFunc(FramePeriod, func() { c.step(gen) })
	c.emit(Frame{Generation: gen, Value: 0})
	c.mu.Unlock()
	return gen
}

// Dismiss closes the modal. It reports false when the modal was already closed.
func (c *Controller) Dismiss(_ Reason) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return false
	}
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.open = false
	c.detail = Detail{}
	c.current = 0
	c.value = 0
	c.animating = false
	return true
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Open:       c.open,
		Value:      c.value,
		Animating:  c.animating,
		Generation: c.generation,
	}
	if c.open {
		d := c.detail
		s.Detail = &d
	}
	return s
}

// Subscribe registers fn for every emitted frame and returns a function that removes it.
// fn runs with the controller locked and must not call back into it.
func (c *Controller) Subscribe(fn func(Frame)) func() {
	c.observersMu.Lock()
	defer c.observersMu.Unlock()

	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	return func() {
		c.observersMu.Lock()
		defer c.observersMu.Unlock()
		delete(c.observers, id)
	}
}

func (c *Controller) step(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || !c.open {
		return
	}

	target := float64(c.detail.Score)
	c.current += target / frameCount
	frame := Frame{Generation: gen}
	if c.current >= target {
		c.current = target
		c.value = c.detail.Score
		c.animating = false
		c.timer = nil
		frame.Done = true
	} else {
		c.value = int(math.Floor(c.current))
		c.timer = c.scheduler.AfterFunc(FramePeriod, func() { c.step(gen) })
	}
	frame.Value = c.value
	c.emit(frame)
}

// emit is called with c.mu held so frames reach observers in generation order.
func (c *Controller) emit(f Frame) {
	c.observersMu.Lock()
	fns := make([]func(Frame), 0, len(c.observers))
	for _, fn := range c.observers {
		fns = append(fns, fn)
	}
	c.observersMu.Unlock()

	for _, fn := range fns {
		fn(f)
	}
}
