package testing

import (
	"errors"
	"time"

	stdtesting "testing"

	"github.com/go-drift/keel/pkg/core"
	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/graphics"
	"github.com/go-drift/keel/pkg/input"
	"github.com/go-drift/keel/pkg/platform"
	"github.com/go-drift/keel/pkg/sched"
	"github.com/go-drift/keel/pkg/testing/internal/testbed"
	"github.com/go-drift/keel/pkg/window"
)

// ErrSettleTimeout is returned by [Tester.Settle] when the tree keeps
// requesting frames past the deadline.
var ErrSettleTimeout = errors.New("testing: tree did not settle before timeout")

// FrameInterval is the fake frame spacing Settle advances by.
const FrameInterval = 16 * time.Millisecond

// Tester drives a real loop, driver, and window from a test. All
// methods run on the calling goroutine; after each synthetic event the
// loop has been drained and pending frames drawn.
type Tester struct {
	T      *stdtesting.T
	Loop   *sched.Loop
	Clock  *FakeClock
	Window *window.Window

	driver *testbed.Driver
	handle *testbed.Handle
	device input.DeviceID
}

// NewTesterWithT builds a harness with one open 800x600 window. The
// window is closed automatically when the test finishes.
func NewTesterWithT(t *stdtesting.T) *Tester {
	t.Helper()
	clock := NewFakeClock()
	loop := sched.NewLoop(sched.WithClock(clock))
	loop.SetWake(func() {})
	platform.RegisterDispatch(loop.Post)

	driver := testbed.New()
	handle, err := driver.CreateWindow(platform.Options{})
	if err != nil {
		t.Fatalf("testbed window: %v", err)
	}

	tt := &Tester{
		T:      t,
		Loop:   loop,
		Clock:  clock,
		driver: driver,
		handle: handle.(*testbed.Handle),
	}
	tt.Window = window.New(loop, driver, handle, window.Options{Background: graphics.ColorWhite})
	t.Cleanup(func() {
		if !tt.Window.Closed() {
			tt.Window.Close()
			tt.Loop.RunUntilStalled()
		}
	})
	tt.Pump()
	return tt
}

// Surface returns the in-memory surface frames are presented to.
func (tt *Tester) Surface() *testbed.Surface {
	return tt.handle.Surface().(*testbed.Surface)
}

// Mount installs root as the window's tree and draws the first frame.
func (tt *Tester) Mount(root *core.Node) {
	tt.Window.SetRoot(root)
	tt.Pump()
}

// SetSize resizes the window, delivering the resize event through the
// normal raw path.
func (tt *Tester) SetSize(size geometry.Size) {
	tt.handle.SetInnerSize(size)
	tt.Loop.PumpEvent(tt.Window.ID(), input.WindowEvent{
		Kind: input.RawResized,
		Size: size,
		Time: tt.Clock.Now(),
	})
	tt.Pump()
}

// Pump drains the loop and draws any requested frames. It loops because
// drawing a frame can itself mark nodes dirty (an animation listener,
// for instance).
func (tt *Tester) Pump() {
	for i := 0; ; i++ {
		if i > 100 {
			tt.T.Fatalf("Pump: window kept requesting frames")
		}
		tt.Loop.PumpIdle()
		if !tt.handle.RedrawPending {
			return
		}
		tt.handle.RedrawPending = false
		tt.Loop.PumpEvent(tt.Window.ID(), input.WindowEvent{Kind: input.RawRedrawRequested})
	}
}

// Advance moves the fake clock and pumps, firing any timers that came
// due.
func (tt *Tester) Advance(d time.Duration) {
	tt.Clock.Advance(d)
	tt.Pump()
}

// Settle advances frame by frame until the loop is quiescent: no frame
// requested and no timer pending. Running animations keep a timer
// pending, so an animation that never ends reports ErrSettleTimeout
// after timeout of fake time. Unrelated long sleeps also count as
// unsettled; fire those with [Tester.Advance] instead.
func (tt *Tester) Settle(timeout time.Duration) error {
	deadline := tt.Clock.Now().Add(timeout)
	for {
		tt.Pump()
		_, pendingTimer := tt.Loop.NextDeadline()
		if !pendingTimer && !tt.Window.NeedsRedraw() && !tt.handle.RedrawPending {
			return nil
		}
		if !tt.Clock.Now().Before(deadline) {
			return ErrSettleTimeout
		}
		tt.Advance(FrameInterval)
	}
}

// LastFrame returns the most recently drawn display list, or nil.
func (tt *Tester) LastFrame() *graphics.DisplayList {
	return tt.Window.LastFrame()
}

// FrameCount returns the number of completed frame cycles.
func (tt *Tester) FrameCount() int {
	return tt.Window.FrameCount()
}

// event sends one raw event through the scheduler and settles pending
// frames.
func (tt *Tester) event(ev input.WindowEvent) {
	ev.Time = tt.Clock.Now()
	ev.Device = tt.device
	tt.Loop.PumpEvent(tt.Window.ID(), ev)
	tt.Pump()
}

// PointerMove synthesizes a pointer motion to p in window coordinates.
func (tt *Tester) PointerMove(p geometry.Offset) {
	tt.event(input.WindowEvent{Kind: input.RawPointerMoved, Position: p})
}

// PointerDown synthesizes a primary-button press at p.
func (tt *Tester) PointerDown(p geometry.Offset) {
	tt.event(input.WindowEvent{Kind: input.RawPointerPressed, Position: p, Button: input.ButtonLeft})
}

// PointerUp synthesizes a primary-button release at p.
func (tt *Tester) PointerUp(p geometry.Offset) {
	tt.event(input.WindowEvent{Kind: input.RawPointerReleased, Position: p, Button: input.ButtonLeft})
}

// TapAt is a move, press, release sequence at p.
func (tt *Tester) TapAt(p geometry.Offset) {
	tt.PointerMove(p)
	tt.PointerDown(p)
	tt.PointerUp(p)
}

// Scroll synthesizes a scroll of delta at p.
func (tt *Tester) Scroll(p, delta geometry.Offset) {
	tt.event(input.WindowEvent{Kind: input.RawScroll, Position: p, Scroll: delta})
}

// KeyDown synthesizes a key press.
func (tt *Tester) KeyDown(key input.Key) {
	tt.event(input.WindowEvent{Kind: input.RawKeyPressed, Key: key})
}

// KeyUp synthesizes a key release.
func (tt *Tester) KeyUp(key input.Key) {
	tt.event(input.WindowEvent{Kind: input.RawKeyReleased, Key: key})
}

// TypeRune synthesizes a character key press.
func (tt *Tester) TypeRune(r rune) {
	tt.event(input.WindowEvent{Kind: input.RawKeyPressed, Rune: r})
}
