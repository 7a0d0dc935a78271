// Package animation provides the timing primitives for animated node
// trees: a scheduler-driven [Ticker], a [Controller] that progresses a
// value from 0 to 1 over a duration through a gween easing function,
// and a generic [Tween] that maps that value onto concrete types.
//
// Everything here runs in loop context. A controller's listeners fire
// on the ticker task; they typically mark nodes dirty, which schedules
// the next frame through the owning window.
package animation

import (
	"time"

	"github.com/go-drift/keel/pkg/sched"
)

// DefaultInterval is the tick spacing used when none is given, roughly
// one tick per frame at 60Hz.
const DefaultInterval = 16 * time.Millisecond

// Ticker calls a callback at a fixed interval on its own task, passing
// the time elapsed since Start. Ticks are scheduled by absolute
// deadline, so a slow callback does not accumulate drift.
type Ticker struct {
	loop     *sched.Loop
	interval time.Duration
	callback func(elapsed time.Duration)

	handle *sched.Handle
	start  time.Time
	active bool
}

// NewTicker creates an inactive ticker. interval <= 0 means
// [DefaultInterval].
func NewTicker(loop *sched.Loop, interval time.Duration, callback func(elapsed time.Duration)) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{loop: loop, interval: interval, callback: callback}
}

// Start spawns the tick task. Starting an active ticker is a no-op.
func (t *Ticker) Start() {
	if t.active {
		return
	}
	t.active = true
	t.start = t.loop.Clock().Now()
	t.handle = t.loop.Spawn("ticker", t.run)
}

func (t *Ticker) run(task *sched.Task) {
	next := t.start
	for {
		next = next.Add(t.interval)
		task.SleepUntil(next)
		if t.callback != nil {
			t.callback(t.loop.Clock().Now().Sub(t.start))
		}
	}
}

// Stop aborts the tick task. The callback may be stopping its own
// ticker; the abort then lands at the next sleep. Stopping an inactive
// ticker is a no-op.
func (t *Ticker) Stop() {
	if !t.active {
		return
	}
	t.active = false
	if t.handle != nil {
		t.handle.Abort()
		t.handle = nil
	}
}

// IsActive reports whether the ticker is running.
func (t *Ticker) IsActive() bool {
	return t.active
}

// Elapsed returns the time since Start, or zero when inactive.
func (t *Ticker) Elapsed() time.Duration {
	if !t.active {
		return 0
	}
	return t.loop.Clock().Now().Sub(t.start)
}
