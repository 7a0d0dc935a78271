// Package sched implements the cooperative single-threaded executor at
// the heart of keel: a task pool, a timer heap, and the per-window
// event routing table.
//
// # Execution model
//
// Every task is a goroutine, but a baton protocol guarantees that at
// most one of them (or the loop itself) runs at any instant. Control
// transfers over unbuffered channels, so the Go memory model orders all
// loop-side state access without locks; "concurrency" here is the
// interleaving of suspended tasks, never parallelism.
//
// A platform driver drives the loop from the outside: for each OS
// wakeup it calls [Loop.PumpEvent] (or [Loop.PumpIdle] for a pure timer
// wakeup), which fires due timers, delivers the event to the addressed
// window's sink, and drains tasks until no further progress is
// possible. [Loop.NextDeadline] then tells the driver how long it may
// sleep without missing a timer.
//
// Foreign goroutines (the platform thread, an inspector) never touch
// the loop directly; they inject work with [Loop.Post].
package sched

import (
	"sync"

	"github.com/go-drift/keel/pkg/input"
)

// Loop is the cooperative executor. All methods except Post must be
// called on the loop's thread: from task code, posted functions, or the
// driver callback that is currently pumping the loop.
type Loop struct {
	clock Clock

	runq  []*Task
	tasks map[*Task]struct{}

	timers   timerHeap
	timerSeq uint64

	windows map[input.WindowID]*WindowEvents

	postMu sync.Mutex
	posted []func()
	wake   func()
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock substitutes the clock used for timers.
func WithClock(c Clock) Option {
	return func(l *Loop) { l.clock = c }
}

// NewLoop returns an empty loop ready to spawn tasks.
func NewLoop(opts ...Option) *Loop {
	l := &Loop{
		clock:   systemClock{},
		tasks:   make(map[*Task]struct{}),
		windows: make(map[input.WindowID]*WindowEvents),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Clock returns the loop's clock.
func (l *Loop) Clock() Clock {
	return l.clock
}

// SetWake registers a function called after Post from a foreign
// goroutine, so the platform loop can interrupt its wait. Call before
// the loop starts pumping.
func (l *Loop) SetWake(fn func()) {
	l.postMu.Lock()
	l.wake = fn
	l.postMu.Unlock()
}

// Spawn starts fn as a new task and schedules it for the next drain.
// The returned handle can abort it.
//
// A panic in fn is not isolated: it unwinds the task goroutine and
// aborts the process. This is the accepted trade-off of the
// single-threaded design; there is no supervisor to hand a broken tree
// to.
func (l *Loop) Spawn(name string, fn func(t *Task)) *Handle {
	t := &Task{
		loop:   l,
		name:   name,
		resume: make(chan resumeMode),
		yield:  make(chan struct{}),
	}
	l.tasks[t] = struct{}{}
	go t.run(fn)
	l.ready(t)
	return &Handle{task: t}
}

// ready queues a task for the next drain. No-op for finished or
// already-queued tasks.
func (l *Loop) ready(t *Task) {
	if t.state == stateDone || t.queued {
		return
	}
	t.queued = true
	l.runq = append(l.runq, t)
}

// turn hands the baton to t until it parks or finishes.
func (l *Loop) turn(t *Task) {
	t.queued = false
	if t.state == stateDone {
		delete(l.tasks, t)
		return
	}
	mode := resumeRun
	if t.aborted {
		mode = resumeAbort
	}
	t.resume <- mode
	<-t.yield
	if t.state == stateDone {
		delete(l.tasks, t)
	}
}

// RunUntilStalled drains posted functions and the run queue until no
// task can make progress without new external input.
func (l *Loop) RunUntilStalled() {
	for {
		l.drainPosted()
		if len(l.runq) == 0 {
			return
		}
		t := l.runq[0]
		l.runq = l.runq[1:]
		l.turn(t)
	}
}

// drainPosted runs functions injected via Post, in order.
func (l *Loop) drainPosted() {
	for {
		l.postMu.Lock()
		fns := l.posted
		l.posted = nil
		l.postMu.Unlock()
		if len(fns) == 0 {
			return
		}
		for _, fn := range fns {
			fn()
		}
	}
}

// Post schedules fn to run on the loop's thread during the next drain.
// Safe to call from any goroutine. Posted functions run in loop
// context, not task context: they cannot park, but they can spawn
// tasks and invoke wakers.
func (l *Loop) Post(fn func()) {
	l.postMu.Lock()
	l.posted = append(l.posted, fn)
	wake := l.wake
	l.postMu.Unlock()
	if wake != nil {
		wake()
	}
}

// PumpEvent performs one full OS-wakeup cycle: fire due timers, deliver
// ev to the window's sink, then drain until stalled.
func (l *Loop) PumpEvent(id input.WindowID, ev input.WindowEvent) {
	l.FireDueTimers()
	l.DeliverWindowEvent(id, ev)
	l.RunUntilStalled()
}

// PumpIdle performs a wakeup cycle with no event, as when the platform
// loop wakes for a timer deadline or a posted function.
func (l *Loop) PumpIdle() {
	l.FireDueTimers()
	l.RunUntilStalled()
}

// TaskCount returns the number of live tasks.
func (l *Loop) TaskCount() int {
	return len(l.tasks)
}

// TaskNames returns the debug names of live tasks, unordered.
func (l *Loop) TaskNames() []string {
	names := make([]string, 0, len(l.tasks))
	for t := range l.tasks {
		names = append(names, t.name)
	}
	return names
}
