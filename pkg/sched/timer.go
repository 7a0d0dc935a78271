package sched

import (
	"container/heap"
	"time"
)

// timer is a pending deadline with the waker to invoke when it fires.
type timer struct {
	when  time.Time
	seq   uint64
	waker Waker
	fired bool
	index int
}

// timerHeap is a min-heap ordered by deadline, sequence-numbered so
// equal deadlines fire in registration order.
type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].when.Equal(h[j].when) {
		return h[i].seq < h[j].seq
	}
	return h[i].when.Before(h[j].when)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	tm := x.(*timer)
	tm.index = len(*h)
	*h = append(*h, tm)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	tm := old[n-1]
	old[n-1] = nil
	tm.index = -1
	*h = old[:n-1]
	return tm
}

// addTimer registers a deadline and returns the entry so the waiter can
// deregister it on early exit.
func (l *Loop) addTimer(when time.Time, w Waker) *timer {
	l.timerSeq++
	tm := &timer{when: when, seq: l.timerSeq, waker: w}
	heap.Push(&l.timers, tm)
	return tm
}

// removeTimer deregisters a pending timer. Safe to call after it fired.
func (l *Loop) removeTimer(tm *timer) {
	if tm.index >= 0 {
		heap.Remove(&l.timers, tm.index)
	}
}

// FireDueTimers wakes and removes timers whose deadline has passed, in
// ascending order, stopping at the first still-future deadline. Returns
// the number fired.
func (l *Loop) FireDueTimers() int {
	now := l.clock.Now()
	fired := 0
	for len(l.timers) > 0 {
		tm := l.timers[0]
		if tm.when.After(now) {
			break
		}
		heap.Pop(&l.timers)
		tm.fired = true
		tm.waker.Wake()
		fired++
	}
	return fired
}

// NextDeadline returns the earliest pending timer deadline. ok is false
// when no timer is pending and the platform loop may wait indefinitely.
func (l *Loop) NextDeadline() (deadline time.Time, ok bool) {
	if len(l.timers) == 0 {
		return time.Time{}, false
	}
	return l.timers[0].when, true
}

// TimerCount returns the number of pending timers.
func (l *Loop) TimerCount() int {
	return len(l.timers)
}

// Timer is a pending deadline handle for primitives that compose a
// timeout with another wait (see broadcast.WaitTimeout). The waker
// passed to StartTimer is invoked when the deadline passes; the owner
// re-checks Fired after each wake.
type Timer struct {
	loop *Loop
	tm   *timer
}

// StartTimer registers a deadline firing w at or after when.
func (l *Loop) StartTimer(when time.Time, w Waker) *Timer {
	return &Timer{loop: l, tm: l.addTimer(when, w)}
}

// Fired reports whether the deadline has passed and the waker was
// invoked.
func (tmr *Timer) Fired() bool {
	return tmr.tm.fired
}

// Stop deregisters the timer. Safe to call after it fired, and safe to
// call more than once.
func (tmr *Timer) Stop() {
	tmr.loop.removeTimer(tmr.tm)
}

// Sleep parks the task for at least d. A non-positive duration returns
// immediately.
func (t *Task) Sleep(d time.Duration) {
	t.SleepUntil(t.loop.clock.Now().Add(d))
}

// SleepUntil parks the task until the loop's clock reaches when. The
// task resumes on the first wakeup at or after the deadline, never
// before.
func (t *Task) SleepUntil(when time.Time) {
	l := t.loop
	if !when.After(l.clock.Now()) {
		return
	}
	tmr := l.StartTimer(when, t.Waker())
	defer tmr.Stop()
	for !tmr.Fired() {
		t.Park()
	}
}
