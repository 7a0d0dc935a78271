package widgets

import (
	"github.com/go-drift/keel/pkg/broadcast"
	"github.com/go-drift/keel/pkg/core"
	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/graphics"
	"github.com/go-drift/keel/pkg/sched"
)

// ButtonOptions configures a button's geometry and palette. Zero-value
// fields fall back to the package defaults.
type ButtonOptions struct {
	Size         geometry.Size
	CornerRadius float64
	Idle         graphics.Color
	Hover        graphics.Color
	Active       graphics.Color
}

// Default button palette and geometry.
var (
	defaultButtonSize   = geometry.Size{Width: 120, Height: 36}
	defaultButtonIdle   = graphics.RGB(0x38, 0x6c, 0xc4)
	defaultButtonHover  = graphics.RGB(0x4a, 0x7e, 0xd6)
	defaultButtonActive = graphics.RGB(0x2a, 0x54, 0x9c)
)

// Button composes an [Interact] wrapping a [Frame]: the interact turns
// pointer events into state transitions, and a spawned handler task
// listens to those transitions, retints the frame, and forwards
// completed clicks to the public Clicked handler.
type Button struct {
	interact *Interact
	frame    *Frame
	clicked  *broadcast.Handler[Click]
	opts     ButtonOptions
	task     *sched.Handle
}

// NewButton builds a button and spawns its handler task on loop.
func NewButton(loop *sched.Loop, name string, opts ButtonOptions) *Button {
	if opts.Size.IsEmpty() {
		opts.Size = defaultButtonSize
	}
	if opts.Idle == graphics.ColorTransparent {
		opts.Idle = defaultButtonIdle
	}
	if opts.Hover == graphics.ColorTransparent {
		opts.Hover = defaultButtonHover
	}
	if opts.Active == graphics.ColorTransparent {
		opts.Active = defaultButtonActive
	}

	b := &Button{
		interact: NewInteract(name),
		frame: NewFrame(name+"/frame", Frame{
			Background:   opts.Idle,
			CornerRadius: opts.CornerRadius,
			FixedSize:    opts.Size,
		}),
		clicked: broadcast.New[Click](),
		opts:    opts,
	}
	b.interact.Node().AttachChild(b.frame.Node())
	b.task = loop.Spawn("button/"+name, b.run)
	return b
}

// Node returns the button's root node (the interact).
func (b *Button) Node() *core.Node {
	return b.interact.Node()
}

// Frame returns the painted frame, for callers that restyle it.
func (b *Button) Frame() *Frame {
	return b.frame
}

// Interact returns the underlying interaction node.
func (b *Button) Interact() *Interact {
	return b.interact
}

// Clicked notifies on each completed click.
func (b *Button) Clicked() *broadcast.Handler[Click] {
	return b.clicked
}

// Close aborts the handler task. The nodes stay in the tree; the button
// just stops reacting.
func (b *Button) Close() {
	if b.task != nil {
		b.task.Abort()
		b.task = nil
	}
}

// run is the handler task: a rendezvous on either a state transition or
// a click, forever. The losing listener of each round is cancelled
// through the broadcast acknowledgement fixup, so the emitting dispatch
// task is never left parked.
func (b *Button) run(t *sched.Task) {
	for {
		which, state, click := broadcast.Either(t, b.interact.StateChanged(), b.interact.Clicked())
		switch which {
		case 0:
			b.frame.SetBackground(b.tint(state))
		case 1:
			b.clicked.Emit(t, click)
		}
	}
}

// tint maps an interaction snapshot to the frame color. Pressed wins
// over hover.
func (b *Button) tint(state InteractState) graphics.Color {
	switch {
	case state.Pressed:
		return b.opts.Active
	case state.Hovered:
		return b.opts.Hover
	default:
		return b.opts.Idle
	}
}
