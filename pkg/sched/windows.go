package sched

import "github.com/go-drift/keel/pkg/input"

// WindowEvents is the event sink for one platform window: a FIFO of raw
// events with a single parked consumer (the window's event task).
type WindowEvents struct {
	loop      *Loop
	id        input.WindowID
	events    []input.WindowEvent
	waiter    Waker
	hasWaiter bool
	closed    bool
}

// ID returns the window identifier this sink is registered under.
func (w *WindowEvents) ID() input.WindowID {
	return w.id
}

// Closed reports whether the sink has been closed.
func (w *WindowEvents) Closed() bool {
	return w.closed
}

// Pending returns the number of buffered events.
func (w *WindowEvents) Pending() int {
	return len(w.events)
}

// Next returns the next raw event, parking the task until one arrives.
// ok is false once the sink is closed and drained. Single consumer: at
// most one task may block in Next at a time.
func (w *WindowEvents) Next(t *Task) (ev input.WindowEvent, ok bool) {
	for len(w.events) == 0 && !w.closed {
		w.waiter = t.Waker()
		w.hasWaiter = true
		t.Park()
	}
	if len(w.events) == 0 {
		return input.WindowEvent{}, false
	}
	ev = w.events[0]
	w.events = w.events[1:]
	return ev, true
}

// push appends an event and wakes the consumer.
func (w *WindowEvents) push(ev input.WindowEvent) {
	w.events = append(w.events, ev)
	if w.hasWaiter {
		w.hasWaiter = false
		w.waiter.Wake()
	}
}

// RegisterWindow creates the event sink for a window identifier. The
// identifier must not already have a live sink.
func (l *Loop) RegisterWindow(id input.WindowID) *WindowEvents {
	if existing, ok := l.windows[id]; ok && !existing.closed {
		panic("sched: window already registered")
	}
	w := &WindowEvents{loop: l, id: id}
	l.windows[id] = w
	return w
}

// DeliverWindowEvent routes a raw event to the window's sink. Events
// for unknown windows are dropped; a closed sink found by the lookup is
// pruned from the table and the event dropped, so a window closed
// mid-flight loses its trailing events silently.
func (l *Loop) DeliverWindowEvent(id input.WindowID, ev input.WindowEvent) {
	w, ok := l.windows[id]
	if !ok {
		return
	}
	if w.closed {
		delete(l.windows, id)
		return
	}
	w.push(ev)
}

// CloseWindow closes the window's sink: the consumer is woken to
// observe the close after draining buffered events. The table entry is
// pruned lazily by the next lookup.
func (l *Loop) CloseWindow(id input.WindowID) {
	w, ok := l.windows[id]
	if !ok {
		return
	}
	w.closed = true
	if w.hasWaiter {
		w.hasWaiter = false
		w.waiter.Wake()
	}
}

// WindowCount returns the number of table entries, including closed
// ones not yet pruned.
func (l *Loop) WindowCount() int {
	return len(l.windows)
}

// WindowIDs returns the identifiers of live (unclosed) sinks.
func (l *Loop) WindowIDs() []input.WindowID {
	ids := make([]input.WindowID, 0, len(l.windows))
	for id, w := range l.windows {
		if !w.closed {
			ids = append(ids, id)
		}
	}
	return ids
}
