// Package platform defines the boundary between the keel core and the
// platform layer that owns real windows: the Driver interface a backend
// implements, the WindowHandle it hands out per window, and the Host
// callbacks through which raw input flows back into the scheduler.
//
// The core never creates OS resources itself. It asks a Driver for
// windows, paints into the Surface exposed by each WindowHandle, and
// receives raw events through the Host it passed to Run.
package platform

import (
	"time"

	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/graphics"
	"github.com/go-drift/keel/pkg/input"
)

// Options configures a platform window at creation.
type Options struct {
	Title string
	Size  geometry.Size
}

// Host is the scheduler side of the boundary. A Driver calls these on
// its UI thread, one call at a time, events for a window in arrival
// order.
type Host interface {
	// HandleEvent delivers one raw window event and pumps the scheduler
	// until it stalls.
	HandleEvent(id input.WindowID, ev input.WindowEvent)

	// Idle pumps the scheduler with no event, for timer deadlines and
	// work injected from foreign goroutines.
	Idle()

	// NextDeadline reports the earliest pending timer, so the driver
	// can sleep exactly long enough. ok is false when no timer is
	// pending and the driver may wait indefinitely.
	NextDeadline() (deadline time.Time, ok bool)

	// Done reports whether the application has finished and the driver
	// should leave its event loop.
	Done() bool
}

// Driver is the platform window boundary.
type Driver interface {
	// Run enters the platform event loop, reporting into host until the
	// loop ends. It must be called on the process main thread on
	// platforms that require it.
	Run(host Host) error

	// CreateWindow opens a window. On single-window backends a second
	// call fails.
	CreateWindow(opts Options) (WindowHandle, error)

	// Wake interrupts a waiting Run loop so it calls host.Idle. Safe
	// from any goroutine.
	Wake()

	// DoubleClickInterval is the platform's multi-click time threshold.
	DoubleClickInterval() time.Duration

	// DoubleClickRadius is the movement tolerance, in logical pixels,
	// within which consecutive clicks still count as a multi-click.
	DoubleClickRadius() float64
}

// WindowHandle is one platform window as seen by the core.
type WindowHandle interface {
	// ID is the identifier raw events for this window carry.
	ID() input.WindowID

	// Surface returns the rasterizer surface frames are presented to.
	// May be nil on a headless backend.
	Surface() graphics.Surface

	// RequestRedraw asks the platform to deliver a RawRedrawRequested
	// event for this window. Drivers may coalesce requests.
	RequestRedraw()

	SetTitle(title string)

	// InnerSize is the current drawable size in logical pixels.
	InnerSize() geometry.Size

	// Scale is the device pixel ratio.
	Scale() float64

	// Close releases the platform window. Further calls are no-ops.
	Close()
}
