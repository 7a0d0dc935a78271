// Package window ties one platform window to a node tree: it owns the
// tree root, runs the event task that consumes the window's raw event
// queue, routes pointer and keyboard input to nodes (capture, focus,
// enter/leave bookkeeping, click repeat counts), and drives the redraw
// pipeline that turns a dirty tree into a presented display list.
//
// All window state is owned by the scheduler thread. The only safe way
// to touch a Window from a foreign goroutine is [sched.Loop.Post].
package window

import (
	"fmt"
	"time"

	"github.com/go-drift/keel/pkg/broadcast"
	"github.com/go-drift/keel/pkg/core"
	"github.com/go-drift/keel/pkg/errors"
	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/graphics"
	"github.com/go-drift/keel/pkg/input"
	"github.com/go-drift/keel/pkg/platform"
	"github.com/go-drift/keel/pkg/sched"
)

// Options configures a new window.
type Options struct {
	Title      string
	Size       geometry.Size
	Background graphics.Color
}

// Window owns the node tree shown in one platform window. It implements
// [core.Owner] (redraw scheduling) and [core.Dispatcher] (capture and
// focus) for its tree.
type Window struct {
	loop   *sched.Loop
	handle platform.WindowHandle
	id     input.WindowID
	events *sched.WindowEvents
	task   *sched.Handle

	root       *core.Node
	background graphics.Color
	size       geometry.Size
	scale      float64

	// Dispatcher state, per the routing state machine: capture is
	// one-shot (taken per event), focus is sticky until moved.
	capture   *core.Node
	focus     *core.Node
	hitPath   []*core.Node
	innermost *core.Node
	pointer   geometry.Offset
	buttons   input.Buttons
	lastClick map[input.DeviceID]*clickRecord

	clickInterval time.Duration
	clickRadius   float64

	closeRequested *broadcast.Handler[struct{}]
	resized        *broadcast.Handler[geometry.Size]
	redrawDone     *broadcast.Handler[struct{}]

	frame       *graphics.DisplayList
	frameCount  int
	needsRedraw bool
	closed      bool
}

// New wires a platform window handle into the loop: registers the raw
// event sink and spawns the event task that consumes it. The driver
// supplies the platform's multi-click thresholds.
func New(loop *sched.Loop, driver platform.Driver, handle platform.WindowHandle, opts Options) *Window {
	size := opts.Size
	if size.IsEmpty() {
		size = handle.InnerSize()
	}
	scale := handle.Scale()
	if scale <= 0 {
		scale = 1
	}
	w := &Window{
		loop:           loop,
		handle:         handle,
		id:             handle.ID(),
		background:     opts.Background,
		size:           size,
		scale:          scale,
		lastClick:      make(map[input.DeviceID]*clickRecord),
		clickInterval:  driver.DoubleClickInterval(),
		clickRadius:    driver.DoubleClickRadius(),
		closeRequested: broadcast.New[struct{}](),
		resized:        broadcast.New[geometry.Size](),
		redrawDone:     broadcast.New[struct{}](),
	}
	if opts.Title != "" {
		handle.SetTitle(opts.Title)
	}
	w.events = loop.RegisterWindow(w.id)
	w.task = loop.Spawn(fmt.Sprintf("window/%d", uint64(w.id)), w.eventLoop)
	return w
}

// eventLoop is the window's event task: it consumes the raw event queue
// until the sink closes.
func (w *Window) eventLoop(t *sched.Task) {
	for {
		ev, ok := w.events.Next(t)
		if !ok {
			return
		}
		w.handleRaw(t, ev)
	}
}

// ID returns the platform window identifier.
func (w *Window) ID() input.WindowID {
	return w.id
}

// Size returns the window's inner size in logical pixels.
func (w *Window) Size() geometry.Size {
	return w.size
}

// Scale returns the device pixel ratio.
func (w *Window) Scale() float64 {
	return w.scale
}

// Root returns the tree root, or nil before SetRoot.
func (w *Window) Root() *core.Node {
	return w.root
}

// SetRoot installs the node tree shown in this window. The previous
// root, if any, is orphaned (its owner cleared) but not destroyed.
func (w *Window) SetRoot(root *core.Node) {
	if w.root == root {
		return
	}
	if w.root != nil {
		w.root.SetOwner(nil)
	}
	w.root = root
	if root != nil {
		root.SetOwner(w)
		root.MarkNeedsLayout()
		root.MarkNeedsPaint()
	}
	// A fresh root is born dirty, so the marks above may not reach us
	// through the owner path. Ask for the first frame directly.
	w.RequestVisualUpdate()
}

// SetTitle forwards to the platform handle.
func (w *Window) SetTitle(title string) {
	w.handle.SetTitle(title)
}

// RequestVisualUpdate implements [core.Owner]: some node under this
// window's root was marked dirty and a new frame is owed.
func (w *Window) RequestVisualUpdate() {
	if w.closed {
		return
	}
	w.needsRedraw = true
	w.handle.RequestRedraw()
}

// NeedsRedraw reports whether a frame has been requested and not yet
// drawn.
func (w *Window) NeedsRedraw() bool {
	return w.needsRedraw
}

// CloseRequested notifies when the user asks the window to close. The
// window does not close itself; a listener decides.
func (w *Window) CloseRequested() *broadcast.Handler[struct{}] {
	return w.closeRequested
}

// Resized notifies with the new inner size after the surface has been
// resized and the tree marked for relayout.
func (w *Window) Resized() *broadcast.Handler[geometry.Size] {
	return w.resized
}

// RedrawDone notifies after each completed frame cycle, whether or not
// presentation succeeded. Tests and animation use it as a frame
// barrier.
func (w *Window) RedrawDone() *broadcast.Handler[struct{}] {
	return w.redrawDone
}

// LastFrame returns the most recently recorded display list, or nil
// before the first frame.
func (w *Window) LastFrame() *graphics.DisplayList {
	return w.frame
}

// FrameCount returns the number of completed frame cycles.
func (w *Window) FrameCount() int {
	return w.frameCount
}

// Closed reports whether Close has run.
func (w *Window) Closed() bool {
	return w.closed
}

// Close tears the window down: the event sink closes, the event task is
// aborted at its next suspension point, the tree is orphaned, and the
// platform window is released. No broadcast emits after Close. Safe to
// call from one of this window's own handlers.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.loop.CloseWindow(w.id)
	if w.task != nil {
		w.task.Abort()
	}
	if w.root != nil {
		w.root.SetOwner(nil)
	}
	w.handle.Close()
}

// handleResize adopts the new size, resizes the surface, and marks the
// tree for relayout before notifying listeners.
func (w *Window) handleResize(t *sched.Task, raw input.WindowEvent) {
	w.size = raw.Size
	if raw.Scale > 0 {
		w.scale = raw.Scale
	}
	if surf := w.handle.Surface(); surf != nil {
		if err := surf.Resize(w.size, w.scale); err != nil {
			errors.Report(errors.New("window.Resize", errors.KindBackend, err))
		}
	}
	if w.root != nil {
		w.root.MarkNeedsLayout()
	}
	w.RequestVisualUpdate()
	w.resized.Emit(t, w.size)
}

// redraw runs one frame cycle: layout tight to the window size, record
// the paint walk into a display list, present it. A failed present
// loses that frame only; the error goes to the global handler and the
// cycle still completes.
func (w *Window) redraw(t *sched.Task) {
	if w.closed {
		return
	}
	frame := w.record()
	w.frame = frame
	w.frameCount++
	w.needsRedraw = false
	if surf := w.handle.Surface(); surf != nil {
		if err := surf.Present(frame); err != nil {
			errors.Report(errors.New("window.Present", errors.KindBackend, err))
		}
	}
	w.redrawDone.Emit(t, struct{}{})
}

// record replays the tree into a fresh display list. Layout runs first
// so the paint walk sees settled geometry; both passes are cheap when
// the tree is clean.
func (w *Window) record() *graphics.DisplayList {
	var rec graphics.PictureRecorder
	canvas := rec.BeginRecording(w.size)
	canvas.Clear(w.background)
	if w.root != nil {
		w.root.DoLayout(geometry.Tight(w.size))
		pc := &core.PaintContext{Canvas: canvas}
		pc.PaintChild(w.root)
	}
	return rec.EndRecording()
}
