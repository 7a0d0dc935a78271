// Package app is the application shell. Run builds the scheduler loop,
// bridges the platform driver into it, spawns the caller's root task,
// and blocks in the driver's event loop until the application finishes.
package app

import (
	"time"

	"github.com/go-drift/keel/pkg/errors"
	"github.com/go-drift/keel/pkg/inspect"
	"github.com/go-drift/keel/pkg/input"
	"github.com/go-drift/keel/pkg/platform"
	"github.com/go-drift/keel/pkg/sched"
	"github.com/go-drift/keel/pkg/window"
)

// Option tunes the shell.
type Option func(*config)

type config struct {
	clock       sched.Clock
	inspectAddr string
}

// WithClock substitutes the scheduler clock. Tests use this to drive
// timers deterministically.
func WithClock(c sched.Clock) Option {
	return func(cfg *config) { cfg.clock = c }
}

// WithInspectAddr starts the HTTP inspector on addr (for example
// "localhost:7473") for the lifetime of Run.
func WithInspectAddr(addr string) Option {
	return func(cfg *config) { cfg.inspectAddr = addr }
}

// App is handed to the root task. It opens windows and reaches the
// loop; all methods must be called from loop context.
type App struct {
	loop    *sched.Loop
	driver  platform.Driver
	windows []*window.Window
	err     error
	done    bool
}

// Run spawns main as the root task on a fresh loop and enters the
// driver's event loop. It returns when main has finished or the driver
// leaves its loop; an error from main wins over one from the driver.
//
// Run must be called on the process main thread on platforms that
// require it, and does not return until the application is done.
func Run(driver platform.Driver, main func(t *sched.Task, a *App) error, opts ...Option) error {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	var loopOpts []sched.Option
	if cfg.clock != nil {
		loopOpts = append(loopOpts, sched.WithClock(cfg.clock))
	}
	loop := sched.NewLoop(loopOpts...)
	loop.SetWake(driver.Wake)
	platform.RegisterDispatch(loop.Post)

	a := &App{loop: loop, driver: driver}
	loop.Spawn("main", func(t *sched.Task) {
		a.err = main(t, a)
		a.done = true
	})

	if cfg.inspectAddr != "" {
		insp := inspect.New(loop, a)
		if err := insp.Start(cfg.inspectAddr); err != nil {
			return errors.New("app.Run", errors.KindConfig, err)
		}
		defer insp.Close()
	}

	err := driver.Run(host{app: a})
	if a.err != nil {
		return a.err
	}
	return err
}

// Loop returns the scheduler loop.
func (a *App) Loop() *sched.Loop {
	return a.loop
}

// Driver returns the platform driver.
func (a *App) Driver() platform.Driver {
	return a.driver
}

// NewWindow opens a platform window and wires a Window around it.
func (a *App) NewWindow(opts window.Options) (*window.Window, error) {
	handle, err := a.driver.CreateWindow(platform.Options{Title: opts.Title, Size: opts.Size})
	if err != nil {
		return nil, errors.New("app.NewWindow", errors.KindBackend, err)
	}
	w := window.New(a.loop, a.driver, handle, opts)
	a.windows = append(a.windows, w)
	return w, nil
}

// Windows returns the windows that are still open.
func (a *App) Windows() []*window.Window {
	var open []*window.Window
	for _, w := range a.windows {
		if !w.Closed() {
			open = append(open, w)
		}
	}
	return open
}

// Quit makes Run return after the current pump, whether or not the
// root task has finished.
func (a *App) Quit() {
	a.done = true
}

// host adapts the loop to the driver's callbacks. The driver calls
// these on its UI thread, which is the only thread pumping the loop.
type host struct {
	app *App
}

func (h host) HandleEvent(id input.WindowID, ev input.WindowEvent) {
	h.app.loop.PumpEvent(id, ev)
}

func (h host) Idle() {
	h.app.loop.PumpIdle()
}

func (h host) NextDeadline() (time.Time, bool) {
	return h.app.loop.NextDeadline()
}

func (h host) Done() bool {
	return h.app.done
}
