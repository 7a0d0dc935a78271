// Package testbed provides the headless platform backend the test
// harness runs against: an in-process Driver whose windows present
// frames into memory instead of onto a screen.
package testbed

import (
	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/graphics"
	"github.com/go-drift/keel/pkg/input"
	"github.com/go-drift/keel/pkg/platform"

	"time"
)

// DefaultSize is the inner size of new testbed windows.
var DefaultSize = geometry.Size{Width: 800, Height: 600}

// Driver is a headless platform.Driver. It never enters an event loop
// of its own; the harness pumps the scheduler directly.
type Driver struct {
	nextID  input.WindowID
	Handles []*Handle
	Wakes   int
}

// New returns an empty headless driver.
func New() *Driver {
	return &Driver{}
}

// Run is unused by the harness; it exists to satisfy platform.Driver.
// It drains idle cycles until the host is done.
func (d *Driver) Run(host platform.Host) error {
	for !host.Done() {
		host.Idle()
	}
	return nil
}

// CreateWindow opens an in-memory window.
func (d *Driver) CreateWindow(opts platform.Options) (platform.WindowHandle, error) {
	d.nextID++
	size := opts.Size
	if size.IsEmpty() {
		size = DefaultSize
	}
	h := &Handle{id: d.nextID, size: size, scale: 1, surface: &Surface{}}
	d.Handles = append(d.Handles, h)
	return h, nil
}

// Wake counts wakeups; there is no waiting loop to interrupt.
func (d *Driver) Wake() {
	d.Wakes++
}

// DoubleClickInterval returns a generous fixed threshold so fake-clock
// tests can place clicks inside or outside it deterministically.
func (d *Driver) DoubleClickInterval() time.Duration {
	return 500 * time.Millisecond
}

// DoubleClickRadius returns the movement tolerance for multi-clicks.
func (d *Driver) DoubleClickRadius() float64 {
	return 4
}

// Handle is one headless window.
type Handle struct {
	id      input.WindowID
	size    geometry.Size
	scale   float64
	title   string
	surface *Surface
	closed  bool

	// RedrawPending is set by RequestRedraw and cleared by the harness
	// when it delivers the corresponding RawRedrawRequested event.
	RedrawPending bool
}

func (h *Handle) ID() input.WindowID        { return h.id }
func (h *Handle) Surface() graphics.Surface { return h.surface }
func (h *Handle) RequestRedraw()            { h.RedrawPending = true }
func (h *Handle) SetTitle(title string)     { h.title = title }
func (h *Handle) InnerSize() geometry.Size  { return h.size }
func (h *Handle) Scale() float64            { return h.scale }
func (h *Handle) Close()                    { h.closed = true }

// Title returns the last title set on the window.
func (h *Handle) Title() string { return h.title }

// Closed reports whether the handle has been released.
func (h *Handle) Closed() bool { return h.closed }

// SetInnerSize records a new size, as a platform resize would. The
// harness delivers the matching RawResized event itself.
func (h *Handle) SetInnerSize(size geometry.Size) { h.size = size }

// Surface collects presented frames in memory.
type Surface struct {
	// Frames are the presented display lists, oldest first.
	Frames []*graphics.DisplayList

	// Size and SizeScale record the last Resize call.
	Size      geometry.Size
	SizeScale float64

	// PresentErr, when set, fails every Present with this error.
	PresentErr error
}

// Resize records the new layer size.
func (s *Surface) Resize(size geometry.Size, scale float64) error {
	s.Size = size
	s.SizeScale = scale
	return nil
}

// Present stores the frame.
func (s *Surface) Present(frame *graphics.DisplayList) error {
	if s.PresentErr != nil {
		return s.PresentErr
	}
	s.Frames = append(s.Frames, frame)
	return nil
}

// Last returns the most recently presented frame, or nil.
func (s *Surface) Last() *graphics.DisplayList {
	if len(s.Frames) == 0 {
		return nil
	}
	return s.Frames[len(s.Frames)-1]
}
