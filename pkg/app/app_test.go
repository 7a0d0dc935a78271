package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-drift/keel/pkg/errors"
	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/graphics"
	"github.com/go-drift/keel/pkg/input"
	"github.com/go-drift/keel/pkg/platform"
	"github.com/go-drift/keel/pkg/sched"
	"github.com/go-drift/keel/pkg/window"
)

// stubDriver pumps idle cycles until the host reports done, like a
// platform loop receiving no input. maxIdles > 0 makes the driver leave
// its loop early, as when the platform shuts the app down.
type stubDriver struct {
	maxIdles   int
	runErr     error
	failCreate error
	nextID     input.WindowID
	handles    []*stubHandle
	wakes      int
	cycles     int
}

func (d *stubDriver) Run(h platform.Host) error {
	for !h.Done() {
		if d.maxIdles > 0 && d.cycles >= d.maxIdles {
			break
		}
		if d.cycles > 1000 {
			return fmt.Errorf("driver runaway: host never done")
		}
		d.cycles++
		h.Idle()
	}
	return d.runErr
}

func (d *stubDriver) CreateWindow(opts platform.Options) (platform.WindowHandle, error) {
	if d.failCreate != nil {
		return nil, d.failCreate
	}
	d.nextID++
	h := &stubHandle{id: d.nextID, size: opts.Size}
	d.handles = append(d.handles, h)
	return h, nil
}

func (d *stubDriver) Wake() { d.wakes++ }

func (d *stubDriver) DoubleClickInterval() time.Duration { return 500 * time.Millisecond }

func (d *stubDriver) DoubleClickRadius() float64 { return 4 }

type stubHandle struct {
	id     input.WindowID
	size   geometry.Size
	title  string
	closed bool
}

func (h *stubHandle) ID() input.WindowID        { return h.id }
func (h *stubHandle) Surface() graphics.Surface { return nil }
func (h *stubHandle) RequestRedraw()            {}
func (h *stubHandle) SetTitle(title string)     { h.title = title }

func (h *stubHandle) InnerSize() geometry.Size {
	if h.size.IsEmpty() {
		return geometry.Size{Width: 200, Height: 200}
	}
	return h.size
}

func (h *stubHandle) Scale() float64 { return 1 }
func (h *stubHandle) Close()         { h.closed = true }

func TestRunReturnsMainError(t *testing.T) {
	driver := &stubDriver{}
	want := fmt.Errorf("main failed")

	err := Run(driver, func(task *sched.Task, a *App) error {
		return want
	})

	if err != want {
		t.Fatalf("Run = %v, want %v", err, want)
	}
	if driver.cycles == 0 {
		t.Errorf("driver loop never pumped")
	}
}

func TestRunReturnsDriverErrorWhenMainParked(t *testing.T) {
	want := fmt.Errorf("display gone")
	driver := &stubDriver{maxIdles: 3, runErr: want}

	err := Run(driver, func(task *sched.Task, a *App) error {
		task.Park()
		return nil
	})

	if err != want {
		t.Fatalf("Run = %v, want driver error", err)
	}
}

func TestMainErrorWinsOverDriverError(t *testing.T) {
	driver := &stubDriver{runErr: fmt.Errorf("driver error")}
	want := fmt.Errorf("main error")

	err := Run(driver, func(task *sched.Task, a *App) error {
		return want
	})

	if err != want {
		t.Fatalf("Run = %v, want main error", err)
	}
}

func TestQuitStopsRun(t *testing.T) {
	driver := &stubDriver{}

	err := Run(driver, func(task *sched.Task, a *App) error {
		a.Quit()
		task.Park()
		return nil
	})

	if err != nil {
		t.Fatalf("Run = %v, want nil", err)
	}
}

func TestNewWindowTracksOpenWindows(t *testing.T) {
	driver := &stubDriver{}

	err := Run(driver, func(task *sched.Task, a *App) error {
		w, err := a.NewWindow(window.Options{Title: "main", Size: geometry.Size{Width: 320, Height: 240}})
		if err != nil {
			return err
		}
		if got := a.Windows(); len(got) != 1 || got[0] != w {
			t.Errorf("Windows() = %v", got)
		}
		if w.Size() != (geometry.Size{Width: 320, Height: 240}) {
			t.Errorf("window size = %v", w.Size())
		}

		w.Close()
		if got := a.Windows(); len(got) != 0 {
			t.Errorf("Windows() = %v after close", got)
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Run = %v", err)
	}
	if len(driver.handles) != 1 {
		t.Fatalf("driver created %d windows", len(driver.handles))
	}
	h := driver.handles[0]
	if h.title != "main" {
		t.Errorf("handle title = %q", h.title)
	}
	if !h.closed {
		t.Errorf("handle not closed")
	}
}

func TestNewWindowFailureWrapped(t *testing.T) {
	driver := &stubDriver{failCreate: fmt.Errorf("no display")}

	err := Run(driver, func(task *sched.Task, a *App) error {
		_, err := a.NewWindow(window.Options{})
		return err
	})

	ke, ok := err.(*errors.KeelError)
	if !ok {
		t.Fatalf("Run = %T %v, want *errors.KeelError", err, err)
	}
	if ke.Kind != errors.KindBackend || ke.Op != "app.NewWindow" {
		t.Errorf("error = %v/%v", ke.Op, ke.Kind)
	}
}

func TestDispatchBridgeRunsOnLoop(t *testing.T) {
	driver := &stubDriver{}
	var ran bool

	err := Run(driver, func(task *sched.Task, a *App) error {
		platform.Dispatch(func() { ran = true })
		return nil
	})

	if err != nil {
		t.Fatalf("Run = %v", err)
	}
	if !ran {
		t.Errorf("dispatched function never ran")
	}
	if driver.wakes == 0 {
		t.Errorf("Post did not wake the driver")
	}
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func TestWithClockSubstitutesTimers(t *testing.T) {
	driver := &stubDriver{}
	clock := &fixedClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	err := Run(driver, func(task *sched.Task, a *App) error {
		if a.Loop().Clock() != sched.Clock(clock) {
			t.Errorf("loop clock not substituted")
		}
		return nil
	}, WithClock(clock))

	if err != nil {
		t.Fatalf("Run = %v", err)
	}
}
