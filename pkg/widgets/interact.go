package widgets

import (
	"github.com/go-drift/keel/pkg/broadcast"
	"github.com/go-drift/keel/pkg/core"
	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/input"
)

// InteractState is the interaction snapshot an [Interact] node carries
// between events.
type InteractState struct {
	// Pressed is true between a pointer press on the node and the
	// matching release.
	Pressed bool
	// Hovered is true while the pointer is over the node.
	Hovered bool
	// Focused is true while the node holds keyboard focus.
	Focused bool
}

// Click describes one completed click on an [Interact] node.
type Click struct {
	// Position is the click location in node-local coordinates.
	Position geometry.Offset
	// RepeatCount is 1 for a single click, 2 for a double click, and so
	// on, as computed by the window's per-device click record.
	RepeatCount int
}

// Interact is a transparent event-handling visual: it draws nothing,
// hit-tests its laid-out bounds, and turns raw pointer and focus events
// into broadcast emissions. While pressed it re-asserts pointer capture
// every event, so drags that leave its bounds still finish on it; a
// release inside its bounds counts as a click and requests keyboard
// focus.
//
// Each emission parks the dispatching task until every listener has
// observed it, so application tasks waiting on Clicked or Hovered run
// strictly inside the event's delivery window.
type Interact struct {
	core.VisualBase

	node    *core.Node
	state   InteractState
	clicked *broadcast.Handler[Click]
	hovered *broadcast.Handler[bool]
	pressed *broadcast.Handler[bool]
	focused *broadcast.Handler[bool]
	changed *broadcast.Handler[InteractState]
}

// NewInteract builds an interact node with the given debug name.
func NewInteract(name string) *Interact {
	i := &Interact{
		clicked: broadcast.New[Click](),
		hovered: broadcast.New[bool](),
		pressed: broadcast.New[bool](),
		focused: broadcast.New[bool](),
		changed: broadcast.New[InteractState](),
	}
	i.node = core.NewNode(name, i)
	return i
}

// Node returns the tree node this interact is attached to.
func (i *Interact) Node() *core.Node {
	return i.node
}

// State returns the current interaction snapshot.
func (i *Interact) State() InteractState {
	return i.state
}

// Clicked notifies on each completed click (press and release on the
// node), carrying the local position and the repeat count.
func (i *Interact) Clicked() *broadcast.Handler[Click] {
	return i.clicked
}

// Hovered notifies with true when the pointer enters the node and false
// when it leaves.
func (i *Interact) Hovered() *broadcast.Handler[bool] {
	return i.hovered
}

// Pressed notifies with true on pointer press and false on release.
func (i *Interact) Pressed() *broadcast.Handler[bool] {
	return i.pressed
}

// Focused notifies with true on focus gain and false on focus loss.
func (i *Interact) Focused() *broadcast.Handler[bool] {
	return i.focused
}

// StateChanged notifies with the full snapshot after every transition.
func (i *Interact) StateChanged() *broadcast.Handler[InteractState] {
	return i.changed
}

// HandleEvent runs the interaction state machine for one routed event.
func (i *Interact) HandleEvent(ctx *core.EventContext, ev *input.Event) {
	t := ctx.Task
	switch ev.Kind {
	case input.KindPointerDown:
		i.state.Pressed = true
		ctx.CapturePointer()
		i.changed.Emit(t, i.state)
		i.pressed.Emit(t, true)

	case input.KindPointerMove:
		if i.state.Pressed {
			// Capture is taken per event; keep holding the pointer.
			ctx.CapturePointer()
		}

	case input.KindPointerUp:
		if !i.state.Pressed {
			return
		}
		i.state.Pressed = false
		i.changed.Emit(t, i.state)
		i.pressed.Emit(t, false)
		if i.node.Size().Rect().Contains(ev.Local) {
			ctx.RequestFocus()
			i.clicked.Emit(t, Click{Position: ev.Local, RepeatCount: ev.RepeatCount})
		}

	case input.KindPointerEnter:
		if i.state.Hovered {
			return
		}
		i.state.Hovered = true
		i.changed.Emit(t, i.state)
		i.hovered.Emit(t, true)

	case input.KindPointerLeave:
		if !i.state.Hovered {
			return
		}
		i.state.Hovered = false
		i.changed.Emit(t, i.state)
		i.hovered.Emit(t, false)

	case input.KindFocusIn:
		i.state.Focused = true
		i.changed.Emit(t, i.state)
		i.focused.Emit(t, true)

	case input.KindFocusOut:
		i.state.Focused = false
		i.changed.Emit(t, i.state)
		i.focused.Emit(t, false)
	}
}
