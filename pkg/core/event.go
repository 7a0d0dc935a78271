package core

import "github.com/go-drift/keel/pkg/sched"

// Dispatcher is the per-window input state machine as seen from event
// handlers: pointer capture and keyboard focus. It is implemented by the
// window owning the tree.
type Dispatcher interface {
	// CapturePointer routes all pointer events to n, bypassing hit
	// testing, until the next event is dispatched (capture is taken per
	// event; re-assert it to keep holding the pointer).
	CapturePointer(n *Node)

	// ReleasePointer drops any pending capture.
	ReleasePointer()

	// RequestFocus moves keyboard focus to n, delivering FocusOut to the
	// previous holder and FocusIn to n.
	RequestFocus(n *Node)

	// FocusedNode returns the current focus holder, or nil.
	FocusedNode() *Node
}

// EventContext accompanies one event delivery. Target is the node whose
// handler is running; it changes as the dispatcher walks the ancestor
// chain of a bubbled event.
type EventContext struct {
	// Task is the dispatch task; handlers park on it to await broadcasts
	// or timers.
	Task *sched.Task

	// Target is the node currently receiving the event.
	Target *Node

	dispatcher Dispatcher
	stopped    bool
}

// NewEventContext builds a context for one delivery chain. The dispatcher
// may be nil in tests that deliver events directly.
func NewEventContext(task *sched.Task, dispatcher Dispatcher) *EventContext {
	return &EventContext{Task: task, dispatcher: dispatcher}
}

// Dispatcher returns the window's input state machine, or nil outside a
// window.
func (c *EventContext) Dispatcher() Dispatcher {
	return c.dispatcher
}

// CapturePointer captures the pointer for the current target.
func (c *EventContext) CapturePointer() {
	if c.dispatcher != nil && c.Target != nil {
		c.dispatcher.CapturePointer(c.Target)
	}
}

// ReleasePointer drops any pending pointer capture.
func (c *EventContext) ReleasePointer() {
	if c.dispatcher != nil {
		c.dispatcher.ReleasePointer()
	}
}

// RequestFocus moves keyboard focus to the current target.
func (c *EventContext) RequestFocus() {
	if c.dispatcher != nil && c.Target != nil {
		c.dispatcher.RequestFocus(c.Target)
	}
}

// Focused returns the node holding keyboard focus, or nil.
func (c *EventContext) Focused() *Node {
	if c.dispatcher == nil {
		return nil
	}
	return c.dispatcher.FocusedNode()
}

// StopPropagation ends the bubbling walk after the current handler
// returns; outer ancestors do not see the event. Derived enter/leave
// bookkeeping is unaffected.
func (c *EventContext) StopPropagation() {
	c.stopped = true
}

// Stopped reports whether a handler stopped propagation.
func (c *EventContext) Stopped() bool {
	return c.stopped
}
