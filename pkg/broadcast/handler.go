// Package broadcast implements the multi-listener notification
// primitive node logic is built from: many independent tasks observe
// the same emission, and the emitter does not proceed until every
// listener it woke has seen the value.
//
// # Barrier semantics
//
// [Handler.Emit] wakes every listener that is parked in a wait at that
// moment and then parks the emitter until each of them has observed the
// value. Emission is therefore synchronous from the emitter's point of
// view even though listeners resume as independently scheduled tasks.
// Emitting with no listeners is a cheap no-op.
//
// A listener registered with [Handler.Listen] but not yet armed by a
// wait holds no waker; an emission during that gap does not count it
// toward the barrier and its later wait resolves only on the next
// emission. Slow listeners can miss values; this accounting is
// deliberate, since counting a listener that may never wake again would
// park the emitter forever.
//
// All methods must run on the loop's thread. Listener cleanup is
// defer-driven so that task abort (which unwinds through defers)
// releases the barrier instead of leaving an emitter parked.
package broadcast

import (
	"time"

	"github.com/go-drift/keel/pkg/sched"
)

// slot is one listener registration.
type slot[T any] struct {
	waker    sched.Waker
	hasWaker bool
	notified bool
	observed bool
}

// Handler is a broadcast channel carrying values of type T. The zero
// value is ready to use; New is provided for symmetry with the rest of
// the tree API.
type Handler[T any] struct {
	slots    []*slot[T]
	value    T
	ackLeft  int
	emitters []sched.Waker
}

// New returns an empty handler.
func New[T any]() *Handler[T] {
	return &Handler[T]{}
}

// ListenerCount returns the number of registered listeners.
func (h *Handler[T]) ListenerCount() int {
	return len(h.slots)
}

// Emitting reports whether an emission is still waiting on
// acknowledgements.
func (h *Handler[T]) Emitting() bool {
	return h.ackLeft > 0
}

// Emit broadcasts v. It parks until any previous emission has been
// fully acknowledged, wakes every currently armed listener, and parks
// again until each of them has observed v. Returns immediately when no
// listener is registered.
func (h *Handler[T]) Emit(t *sched.Task, v T) {
	h.awaitReady(t)
	if len(h.slots) == 0 {
		return
	}
	h.value = v
	notified := 0
	for _, s := range h.slots {
		if !s.hasWaker {
			continue
		}
		s.notified = true
		s.hasWaker = false
		s.waker.Wake()
		notified++
	}
	h.ackLeft = notified
	h.awaitReady(t)
}

// awaitReady parks t until the acknowledgement balance is zero.
func (h *Handler[T]) awaitReady(t *sched.Task) {
	for h.ackLeft > 0 {
		h.emitters = append(h.emitters, t.Waker())
		t.Park()
	}
}

// ackOne decrements the balance and, at zero, releases parked emitters.
func (h *Handler[T]) ackOne() {
	h.ackLeft--
	if h.ackLeft > 0 {
		return
	}
	h.ackLeft = 0
	emitters := h.emitters
	h.emitters = nil
	for _, w := range emitters {
		w.Wake()
	}
}

// Wait blocks until the next emission and returns its value. Each call
// is an independent one-shot registration; code that must not miss
// emissions between waits should hold a Listener instead.
func (h *Handler[T]) Wait(t *sched.Task) T {
	l := h.Listen()
	defer l.Cancel()
	return l.Recv(t)
}

// WaitTimeout is Wait racing a timer. ok is false when the deadline
// passed first; the abandoned registration is cleaned up either way.
func (h *Handler[T]) WaitTimeout(t *sched.Task, d time.Duration) (v T, ok bool) {
	l := h.Listen()
	defer l.Cancel()
	loop := t.Loop()
	tmr := loop.StartTimer(loop.Clock().Now().Add(d), t.Waker())
	defer tmr.Stop()
	for {
		if v, ok := l.Take(); ok {
			return v, true
		}
		if tmr.Fired() {
			var zero T
			return zero, false
		}
		l.Arm(t)
		t.Park()
	}
}

// Listener is a registered listening slot. It observes at most one
// emission; after a successful Take or Recv it is spent.
type Listener[T any] struct {
	h    *Handler[T]
	s    *slot[T]
	done bool
}

// Listen registers a listener slot. The slot holds no waker until Arm,
// so it does not participate in emissions that happen before the first
// wait.
func (h *Handler[T]) Listen() *Listener[T] {
	s := &slot[T]{}
	h.slots = append(h.slots, s)
	return &Listener[T]{h: h, s: s}
}

// Ready reports whether an emission is waiting to be taken.
func (l *Listener[T]) Ready() bool {
	return !l.done && l.s.notified && !l.s.observed
}

// Arm stores t's waker so the next emission wakes it. Called once per
// park by composite waits.
func (l *Listener[T]) Arm(t *sched.Task) {
	if l.done {
		return
	}
	l.s.waker = t.Waker()
	l.s.hasWaker = true
}

// Take observes a pending emission without parking. ok is false when
// nothing is pending. A successful Take acknowledges the emission and
// spends the listener.
func (l *Listener[T]) Take() (v T, ok bool) {
	if !l.Ready() {
		var zero T
		return zero, false
	}
	l.s.observed = true
	v = l.h.value
	l.remove()
	return v, true
}

// Recv parks until an emission arrives, then observes it. The listener
// is spent afterwards.
func (l *Listener[T]) Recv(t *sched.Task) T {
	for {
		if v, ok := l.Take(); ok {
			return v
		}
		l.Arm(t)
		t.Park()
	}
}

// Cancel deregisters the listener. If it had been notified but never
// observed the value, the acknowledgement still fires so the emitter is
// not left parked; this is the cleanup path task abort unwinds through.
func (l *Listener[T]) Cancel() {
	if l.done {
		return
	}
	l.remove()
}

// remove splices the slot out and settles the acknowledgement balance.
func (l *Listener[T]) remove() {
	l.done = true
	h, s := l.h, l.s
	for i, other := range h.slots {
		if other == s {
			h.slots = append(h.slots[:i], h.slots[i+1:]...)
			break
		}
	}
	if s.notified {
		h.ackOne()
	}
}

// Either waits for the first emission from a or b. The returned index
// is 0 when a won and 1 when b won; only the winner's value is set. The
// loser's registration is cancelled through the same acknowledgement
// fixup as an aborted wait.
func Either[A, B any](t *sched.Task, a *Handler[A], b *Handler[B]) (int, A, B) {
	la := a.Listen()
	defer la.Cancel()
	lb := b.Listen()
	defer lb.Cancel()
	var zeroA A
	var zeroB B
	for {
		if v, ok := la.Take(); ok {
			return 0, v, zeroB
		}
		if v, ok := lb.Take(); ok {
			return 1, zeroA, v
		}
		la.Arm(t)
		lb.Arm(t)
		t.Park()
	}
}
