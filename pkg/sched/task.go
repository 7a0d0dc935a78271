package sched

// taskState tracks where a task is in its lifecycle. It is only read and
// written while the owner holds the baton (see Loop), so no locking is
// needed.
type taskState int

const (
	stateCreated taskState = iota
	stateRunning
	stateParked
	stateDone
)

// resumeMode tells a resuming task whether to keep running or unwind.
type resumeMode int

const (
	resumeRun resumeMode = iota
	resumeAbort
)

// taskAborted is the sentinel panic value used to unwind an aborted
// task through its deferred cleanup. It never escapes the trampoline.
type taskAborted struct{}

// Task is a unit of cooperative execution. Task functions receive their
// Task and may suspend through it (Park, Sleep, or any primitive built
// on them); between suspension points task code runs without
// interruption, so state touched only from the loop's thread needs no
// synchronization.
type Task struct {
	loop *Loop
	name string

	// resume carries the baton from loop to task, yield carries it
	// back. Both are unbuffered so exactly one side runs at a time.
	resume chan resumeMode
	yield  chan struct{}

	state   taskState
	queued  bool
	aborted bool
}

// Name returns the debug name given at Spawn.
func (t *Task) Name() string {
	return t.name
}

// Loop returns the loop this task runs on.
func (t *Task) Loop() *Loop {
	return t.loop
}

// Waker returns a handle that re-queues the task when woken. Wakers are
// cheap values and may be stored by any primitive a task parks on; they
// must be invoked from the loop's thread (use [Loop.Post] from foreign
// goroutines).
func (t *Task) Waker() Waker {
	return Waker{task: t}
}

// Park suspends the task until some waker re-queues it. Primitives call
// Park in a loop re-checking their own condition, since a task parked
// on several wakers at once can be woken by any of them.
//
// If the task has been aborted, Park does not return: it unwinds the
// task's stack, running deferred cleanup on the way.
func (t *Task) Park() {
	t.state = stateParked
	t.yield <- struct{}{}
	mode := <-t.resume
	t.state = stateRunning
	if mode == resumeAbort {
		panic(taskAborted{})
	}
}

// run is the task goroutine trampoline.
func (t *Task) run(fn func(t *Task)) {
	mode := <-t.resume
	if mode == resumeRun {
		t.state = stateRunning
		func() {
			defer func() {
				if r := recover(); r != nil {
					if _, ok := r.(taskAborted); !ok {
						// A real panic is not isolated: it takes the
						// process down, matching the cooperative
						// single-threaded contract.
						panic(r)
					}
				}
			}()
			fn(t)
		}()
	}
	t.state = stateDone
	t.yield <- struct{}{}
}

// Waker re-queues a parked task. The zero Waker is inert.
type Waker struct {
	task *Task
}

// Wake schedules the task to resume on the next drain. Waking a
// finished or already-queued task is a no-op. Must be called on the
// loop's thread.
func (w Waker) Wake() {
	if w.task == nil {
		return
	}
	w.task.loop.ready(w.task)
}

// IsZero reports whether the waker is the inert zero value.
func (w Waker) IsZero() bool {
	return w.task == nil
}

// Handle controls a spawned task.
type Handle struct {
	task *Task
}

// Abort stops the task. A parked task is resumed in abort mode, which
// unwinds its stack (running defers) without executing further task
// code; a task that was never run is dropped outright. Abort takes
// effect at the task's next suspension point if it is currently the
// running task. Aborting a finished task is a no-op.
//
// No cancellation signal precedes the unwind; cleanup that must run on
// abort belongs in defers.
func (h *Handle) Abort() {
	t := h.task
	if t.state == stateDone || t.aborted {
		return
	}
	t.aborted = true
	t.loop.ready(t)
}

// Done reports whether the task has finished or been aborted to
// completion.
func (h *Handle) Done() bool {
	return h.task.state == stateDone
}

// Name returns the task's debug name.
func (h *Handle) Name() string {
	return h.task.name
}
