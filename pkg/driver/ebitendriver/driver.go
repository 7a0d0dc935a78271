// Package ebitendriver backs the platform boundary with Ebitengine.
// The game loop owns one OS window; raw input is polled each tick,
// diffed against the previous tick, and handed to the host as window
// events. Presented display lists are replayed onto the screen image
// in Draw.
package ebitendriver

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/graphics"
	"github.com/go-drift/keel/pkg/input"
	"github.com/go-drift/keel/pkg/platform"
)

// windowID is the identifier of the single Ebitengine window.
const windowID input.WindowID = 1

// DefaultSize is the window size used when Options.Size is empty.
var DefaultSize = geometry.Size{Width: 800, Height: 600}

// Driver implements [platform.Driver] on the Ebitengine game loop.
// Ebitengine owns exactly one OS window, so the second CreateWindow
// fails with [platform.ErrWindowLimit].
type Driver struct {
	mu     sync.Mutex
	window *Window
	host   platform.Host
}

// New returns an unstarted driver.
func New() *Driver {
	return &Driver{}
}

// Run enters the Ebitengine game loop and pumps the host from its
// update ticks until the host reports done or the window closes. Must
// run on the process main thread.
func (d *Driver) Run(host platform.Host) error {
	d.mu.Lock()
	d.host = host
	d.mu.Unlock()

	ebiten.SetWindowClosingHandled(true)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(&game{driver: d})
}

// CreateWindow claims the Ebitengine window. Size and title apply
// whether the game loop has started or not.
func (d *Driver) CreateWindow(opts platform.Options) (platform.WindowHandle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.window != nil {
		return nil, platform.ErrWindowLimit
	}
	size := opts.Size
	if size.IsEmpty() {
		size = DefaultSize
	}
	w := &Window{size: size, title: opts.Title}
	w.surface = &Surface{window: w}
	ebiten.SetWindowSize(int(size.Width), int(size.Height))
	if opts.Title != "" {
		ebiten.SetWindowTitle(opts.Title)
	}
	d.window = w
	return w, nil
}

// Wake is a no-op: the game loop ticks at a fixed cadence and pumps the
// host every tick, so posted work runs on the next tick regardless.
func (d *Driver) Wake() {}

// DoubleClickInterval returns a conventional desktop threshold;
// Ebitengine exposes no platform value.
func (d *Driver) DoubleClickInterval() time.Duration {
	return 500 * time.Millisecond
}

// DoubleClickRadius returns the movement tolerance for multi-clicks.
func (d *Driver) DoubleClickRadius() float64 {
	return 4
}

func (d *Driver) current() *Window {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.window
}

// Window is the single Ebitengine window handle.
type Window struct {
	surface *Surface

	mu     sync.Mutex
	size   geometry.Size
	title  string
	redraw bool
	closed bool
}

// ID implements [platform.WindowHandle].
func (w *Window) ID() input.WindowID {
	return windowID
}

// Surface returns the replay surface frames are presented to.
func (w *Window) Surface() graphics.Surface {
	return w.surface
}

// RequestRedraw marks a frame owed; the game loop delivers the matching
// RawRedrawRequested on its next tick. Requests coalesce.
func (w *Window) RequestRedraw() {
	w.mu.Lock()
	w.redraw = true
	w.mu.Unlock()
}

// SetTitle forwards to the OS window.
func (w *Window) SetTitle(title string) {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
	ebiten.SetWindowTitle(title)
}

// InnerSize is the drawable size in logical pixels, as last reported by
// the game layout.
func (w *Window) InnerSize() geometry.Size {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Scale reports 1: the driver works in Ebitengine's logical pixels.
func (w *Window) Scale() float64 {
	return 1
}

// Close marks the window released; the game loop terminates on its next
// tick.
func (w *Window) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
}

func (w *Window) isClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

func (w *Window) takeRedraw() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	r := w.redraw
	w.redraw = false
	return r
}

func (w *Window) setSize(size geometry.Size) {
	w.mu.Lock()
	w.size = size
	w.mu.Unlock()
}

// Surface stores the last presented frame for the game's Draw to
// replay. Ebitengine manages the backbuffer, so Resize has nothing to
// allocate.
type Surface struct {
	window *Window

	mu    sync.Mutex
	frame *graphics.DisplayList
}

// Resize implements [graphics.Surface].
func (s *Surface) Resize(size geometry.Size, scale float64) error {
	return nil
}

// Present adopts the frame; it is drawn on every subsequent Draw until
// replaced.
func (s *Surface) Present(frame *graphics.DisplayList) error {
	if s.window.isClosed() {
		return platform.ErrWindowClosed
	}
	s.mu.Lock()
	s.frame = frame
	s.mu.Unlock()
	return nil
}

func (s *Surface) lastFrame() *graphics.DisplayList {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// game adapts the host pump to the ebiten.Game interface.
type game struct {
	driver   *Driver
	poller   poller
	lastSize geometry.Size
}

// Update runs one host pump cycle: resize and close bookkeeping, input
// deltas, an idle pump for timers and posted work, then any owed frame.
func (g *game) Update() error {
	host := g.driver.host
	if host.Done() {
		return ebiten.Termination
	}
	w := g.driver.current()
	if w == nil {
		// The root task has not opened the window yet; pumping idle is
		// what lets it run.
		host.Idle()
		return nil
	}
	if w.isClosed() {
		return ebiten.Termination
	}

	now := time.Now()
	if size := w.InnerSize(); size != g.lastSize {
		g.lastSize = size
		host.HandleEvent(windowID, input.WindowEvent{
			Kind:  input.RawResized,
			Size:  size,
			Scale: 1,
			Time:  now,
		})
	}
	if ebiten.IsWindowBeingClosed() {
		host.HandleEvent(windowID, input.WindowEvent{Kind: input.RawCloseRequested, Time: now})
	}
	for _, ev := range g.poller.poll(now) {
		host.HandleEvent(windowID, ev)
	}
	host.Idle()
	if w.takeRedraw() {
		host.HandleEvent(windowID, input.WindowEvent{Kind: input.RawRedrawRequested, Time: now})
	}
	return nil
}

// Draw replays the last presented display list onto the screen.
func (g *game) Draw(screen *ebiten.Image) {
	w := g.driver.current()
	if w == nil {
		return
	}
	frame := w.surface.lastFrame()
	if frame == nil {
		return
	}
	frame.Paint(newCanvas(screen))
}

// Layout adopts the outside size as the logical size, one logical pixel
// per screen pixel.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w := g.driver.current(); w != nil {
		w.setSize(geometry.Size{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	}
	return outsideWidth, outsideHeight
}
