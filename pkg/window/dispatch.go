package window

import (
	"slices"
	"time"

	"github.com/go-drift/keel/pkg/core"
	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/input"
	"github.com/go-drift/keel/pkg/sched"
)

// clickRecord tracks the last press per device for repeat counting.
type clickRecord struct {
	button   input.Button
	position geometry.Offset
	time     time.Time
	count    int
}

// handleRaw routes one raw window event on the event task.
func (w *Window) handleRaw(t *sched.Task, raw input.WindowEvent) {
	if w.closed {
		return
	}
	switch raw.Kind {
	case input.RawPointerMoved:
		w.pointer = raw.Position
		w.dispatchPointer(t, w.routedPointer(input.KindPointerMove, raw))
	case input.RawPointerPressed:
		w.pointer = raw.Position
		w.buttons = w.buttons.With(raw.Button)
		ev := w.routedPointer(input.KindPointerDown, raw)
		ev.RepeatCount = w.pressRepeat(raw.Device, raw.Button, ev.Position, ev.Time)
		w.dispatchPointer(t, ev)
	case input.RawPointerReleased:
		w.pointer = raw.Position
		w.buttons = w.buttons.Without(raw.Button)
		ev := w.routedPointer(input.KindPointerUp, raw)
		ev.RepeatCount = w.releaseRepeat(raw.Device, raw.Button)
		w.dispatchPointer(t, ev)
	case input.RawScroll:
		w.pointer = raw.Position
		ev := w.routedPointer(input.KindScroll, raw)
		ev.Scroll = raw.Scroll
		w.dispatchPointer(t, ev)
	case input.RawKeyPressed:
		w.dispatchKey(t, input.KindKeyDown, raw)
	case input.RawKeyReleased:
		w.dispatchKey(t, input.KindKeyUp, raw)
	case input.RawResized:
		w.handleResize(t, raw)
	case input.RawCloseRequested:
		w.closeRequested.Emit(t, struct{}{})
	case input.RawRedrawRequested:
		w.redraw(t)
	}
}

// routedPointer builds a routed pointer event from a raw one. Buttons
// reflects window state after the raw event has been applied.
func (w *Window) routedPointer(kind input.Kind, raw input.WindowEvent) input.Event {
	return input.Event{
		Kind:      kind,
		Position:  raw.Position,
		Button:    raw.Button,
		Buttons:   w.buttons,
		Modifiers: raw.Modifiers,
		Device:    raw.Device,
		Time:      w.eventTime(raw),
	}
}

func (w *Window) eventTime(raw input.WindowEvent) time.Time {
	if !raw.Time.IsZero() {
		return raw.Time
	}
	return w.loop.Clock().Now()
}

// dispatchPointer runs the primary delivery and then the hover
// bookkeeping for one pointer event.
func (w *Window) dispatchPointer(t *sched.Task, ev input.Event) {
	var result core.HitTestResult
	if w.root != nil {
		w.root.HitTest(ev.Position, &result)
	}
	path := result.Path
	innermost := result.Innermost()

	// Capture claims exactly one delivery; the holder re-captures from
	// its handler to keep the pointer. A captured node that has left
	// the tree swallows the delivery.
	target := innermost
	if w.capture != nil {
		target = w.capture
		w.capture = nil
	}
	w.bubble(t, target, ev, nil)
	w.updateHover(t, path, innermost, ev)
}

// bubble delivers ev to target and then each ancestor up to the root.
// The walk ends early when a handler stops propagation, when it reaches
// a node in barrier, or immediately if target is no longer in the tree.
func (w *Window) bubble(t *sched.Task, target *core.Node, ev input.Event, barrier []*core.Node) {
	if !w.live(target) {
		return
	}
	local := ev.Position
	if inv, ok := target.WindowTransform().Invert(); ok {
		local = inv.Apply(ev.Position)
	}
	ctx := core.NewEventContext(t, w)
	for n := target; n != nil; n = n.Parent() {
		if w.closed || slices.Contains(barrier, n) {
			return
		}
		ctx.Target = n
		hop := ev
		hop.Local = local
		n.Visual().HandleEvent(ctx, &hop)
		if ctx.Stopped() {
			return
		}
		local = n.Transform().Apply(local)
	}
}

// deliverDirect delivers ev to n alone, without bubbling.
func (w *Window) deliverDirect(t *sched.Task, n *core.Node, ev input.Event) {
	if !w.live(n) {
		return
	}
	if inv, ok := n.WindowTransform().Invert(); ok {
		ev.Local = inv.Apply(ev.Position)
	} else {
		ev.Local = ev.Position
	}
	ctx := core.NewEventContext(t, w)
	ctx.Target = n
	n.Visual().HandleEvent(ctx, &ev)
}

// updateHover reconciles the stored hit path against the new one.
//
// Out bubbles from the old innermost and Over from the new one, but
// each walk stops at the first ancestor present in the other path, so a
// node hit both before and after the move sees none of the transition
// events. Leave and Enter go directly to the nodes that actually left
// or joined the path, outermost first.
func (w *Window) updateHover(t *sched.Task, path []*core.Node, innermost *core.Node, cause input.Event) {
	oldPath := w.hitPath
	oldInner := w.innermost

	if oldInner != innermost && oldInner != nil {
		w.bubble(t, oldInner, derived(cause, input.KindPointerOut), path)
	}
	for _, n := range oldPath {
		if !slices.Contains(path, n) {
			w.deliverDirect(t, n, derived(cause, input.KindPointerLeave))
		}
	}
	if oldInner != innermost && innermost != nil {
		w.bubble(t, innermost, derived(cause, input.KindPointerOver), oldPath)
	}
	for _, n := range path {
		if !slices.Contains(oldPath, n) {
			w.deliverDirect(t, n, derived(cause, input.KindPointerEnter))
		}
	}

	w.hitPath = path
	w.innermost = innermost
}

// derived builds an enter/leave family event from the pointer event
// that caused the transition.
func derived(cause input.Event, kind input.Kind) input.Event {
	ev := cause
	ev.Kind = kind
	ev.Button = input.ButtonNone
	ev.RepeatCount = 0
	ev.Scroll = geometry.Offset{}
	return ev
}

// pressRepeat computes the click repeat count for a press and updates
// the per-device record. A press extends the chain when it lands on the
// same button within the platform's double-click interval and radius.
func (w *Window) pressRepeat(device input.DeviceID, button input.Button, pos geometry.Offset, now time.Time) int {
	rec := w.lastClick[device]
	if rec != nil && rec.button == button &&
		now.Sub(rec.time) <= w.clickInterval &&
		pos.Distance(rec.position) <= w.clickRadius {
		rec.count++
	} else {
		rec = &clickRecord{count: 1}
		w.lastClick[device] = rec
	}
	rec.button = button
	rec.position = pos
	rec.time = now
	return rec.count
}

// releaseRepeat reads the count recorded by the matching press. The
// record itself only changes on presses.
func (w *Window) releaseRepeat(device input.DeviceID, button input.Button) int {
	if rec := w.lastClick[device]; rec != nil && rec.button == button {
		return rec.count
	}
	return 1
}

// dispatchKey bubbles a key event from the focus node. Without focus
// the event is dropped.
func (w *Window) dispatchKey(t *sched.Task, kind input.Kind, raw input.WindowEvent) {
	if !w.live(w.focus) {
		w.focus = nil
	}
	if w.focus == nil {
		return
	}
	ev := input.Event{
		Kind:      kind,
		Position:  w.pointer,
		Buttons:   w.buttons,
		Modifiers: raw.Modifiers,
		Device:    raw.Device,
		Key:       raw.Key,
		Rune:      raw.Rune,
		Time:      w.eventTime(raw),
	}
	w.bubble(t, w.focus, ev, nil)
}

// CapturePointer implements [core.Dispatcher]. Capture holds for the
// next primary pointer delivery only.
func (w *Window) CapturePointer(n *core.Node) {
	if w.live(n) {
		w.capture = n
	}
}

// ReleasePointer implements [core.Dispatcher].
func (w *Window) ReleasePointer() {
	w.capture = nil
}

// RequestFocus implements [core.Dispatcher]. Passing nil blurs. The
// focus-out and focus-in deliveries run on short spawned tasks, in that
// order, so a handler can move focus without reentering itself.
func (w *Window) RequestFocus(n *core.Node) {
	if n != nil && !w.live(n) {
		return
	}
	if w.focus == n {
		return
	}
	old := w.focus
	w.focus = n
	w.deliverFocus(old, input.KindFocusOut)
	w.deliverFocus(n, input.KindFocusIn)
}

// FocusedNode implements [core.Dispatcher]. A focus node that has left
// the tree is forgotten.
func (w *Window) FocusedNode() *core.Node {
	if !w.live(w.focus) {
		w.focus = nil
	}
	return w.focus
}

func (w *Window) deliverFocus(n *core.Node, kind input.Kind) {
	if n == nil {
		return
	}
	w.loop.Spawn("focus", func(t *sched.Task) {
		if w.closed {
			return
		}
		w.deliverDirect(t, n, input.Event{
			Kind:     kind,
			Position: w.pointer,
			Buttons:  w.buttons,
			Time:     w.loop.Clock().Now(),
		})
	})
}

// live reports whether n is attached under this window's current root.
// Nothing is live after Close.
func (w *Window) live(n *core.Node) bool {
	return n != nil && !w.closed && w.root != nil && n.Root() == w.root
}
