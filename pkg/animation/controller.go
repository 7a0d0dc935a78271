package animation

import (
	"fmt"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/go-drift/keel/pkg/sched"
)

// Status is the controller's state machine position.
//
//	                Forward()
//	Dismissed ──────────────────► Completed
//	    ▲                              │
//	    │         Reverse()            │
//	    └──────────────────────────────┘
//
// While animating the status is StatusForward or StatusReverse; at rest
// it is StatusDismissed (at the lower bound) or StatusCompleted (at the
// upper bound).
type Status int

const (
	// StatusDismissed means stopped at the lower bound.
	StatusDismissed Status = iota
	// StatusForward means playing toward the upper bound.
	StatusForward
	// StatusReverse means playing toward the lower bound.
	StatusReverse
	// StatusCompleted means stopped at the upper bound.
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusDismissed:
		return "dismissed"
	case StatusForward:
		return "forward"
	case StatusReverse:
		return "reverse"
	case StatusCompleted:
		return "completed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Controller progresses Value between LowerBound and UpperBound over
// Duration, shaped by Ease. It ticks on its own scheduler task; value
// and status listeners fire from that task.
type Controller struct {
	// Value is the current animation value.
	Value float64

	// Duration is the full lower-to-upper travel time.
	Duration time.Duration

	// Ease shapes progress. Defaults to ease.Linear.
	Ease ease.TweenFunc

	// LowerBound is the resting minimum (default 0).
	LowerBound float64

	// UpperBound is the resting maximum (default 1).
	UpperBound float64

	// Interval overrides the tick spacing (default DefaultInterval).
	Interval time.Duration

	loop            *sched.Loop
	status          Status
	ticker          *Ticker
	target          float64
	startValue      float64
	listeners       map[int]func()
	statusListeners map[int]func(Status)
	nextListenerID  int
}

// NewController creates a controller at the lower bound.
func NewController(loop *sched.Loop, duration time.Duration) *Controller {
	return &Controller{
		Duration:        duration,
		Ease:            ease.Linear,
		UpperBound:      1,
		loop:            loop,
		status:          StatusDismissed,
		listeners:       make(map[int]func()),
		statusListeners: make(map[int]func(Status)),
	}
}

// Forward animates from the current value to the upper bound.
func (c *Controller) Forward() {
	c.animateTo(c.UpperBound, StatusForward)
}

// Reverse animates from the current value to the lower bound.
func (c *Controller) Reverse() {
	c.animateTo(c.LowerBound, StatusReverse)
}

// AnimateTo animates to an arbitrary target value.
func (c *Controller) AnimateTo(target float64) {
	if target > c.Value {
		c.animateTo(target, StatusForward)
	} else {
		c.animateTo(target, StatusReverse)
	}
}

func (c *Controller) animateTo(target float64, direction Status) {
	if c.ticker != nil {
		c.ticker.Stop()
	}
	c.target = target
	c.startValue = c.Value
	c.setStatus(direction)
	c.ticker = NewTicker(c.loop, c.Interval, c.tick)
	c.ticker.Start()
}

func (c *Controller) tick(elapsed time.Duration) {
	if c.Duration <= 0 {
		c.Value = c.target
		c.notify()
		c.finish()
		return
	}
	progress := float64(elapsed) / float64(c.Duration)
	done := progress >= 1
	if done {
		progress = 1
	}
	curve := c.Ease
	if curve == nil {
		curve = ease.Linear
	}
	eased := float64(curve(float32(progress), 0, 1, 1))
	c.Value = c.startValue + (c.target-c.startValue)*eased
	c.notify()
	if done {
		c.finish()
	}
}

// finish stops the ticker and settles the status from the final value.
func (c *Controller) finish() {
	c.Stop()
	if c.Value <= c.LowerBound {
		c.setStatus(StatusDismissed)
	} else if c.Value >= c.UpperBound {
		c.setStatus(StatusCompleted)
	}
}

// Stop halts the animation at the current value. The status keeps its
// direction; use Reset to return to rest.
func (c *Controller) Stop() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

// Reset stops and snaps the value back to the lower bound.
func (c *Controller) Reset() {
	c.Stop()
	c.Value = c.LowerBound
	c.setStatus(StatusDismissed)
	c.notify()
}

// Status returns the state machine position.
func (c *Controller) Status() Status {
	return c.status
}

// IsAnimating reports whether a tick task is driving the value.
func (c *Controller) IsAnimating() bool {
	return c.status == StatusForward || c.status == StatusReverse
}

// IsCompleted reports a rest at the upper bound.
func (c *Controller) IsCompleted() bool {
	return c.status == StatusCompleted
}

// IsDismissed reports a rest at the lower bound.
func (c *Controller) IsDismissed() bool {
	return c.status == StatusDismissed
}

// AddListener registers a callback fired after every value change.
// Returns an unsubscribe function.
func (c *Controller) AddListener(fn func()) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = fn
	return func() {
		delete(c.listeners, id)
	}
}

// AddStatusListener registers a callback fired on status transitions.
// Returns an unsubscribe function.
func (c *Controller) AddStatusListener(fn func(Status)) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.statusListeners[id] = fn
	return func() {
		delete(c.statusListeners, id)
	}
}

func (c *Controller) setStatus(status Status) {
	if c.status == status {
		return
	}
	c.status = status
	for _, listener := range c.statusListeners {
		listener(status)
	}
}

func (c *Controller) notify() {
	for _, listener := range c.listeners {
		listener()
	}
}

// Dispose stops the animation and drops all listeners.
func (c *Controller) Dispose() {
	c.Stop()
	c.listeners = nil
	c.statusListeners = nil
}
