// Package main provides the Keel demo application: a window with a few
// buttons, a flex layout, and a controller-driven animation, built
// directly on the node tree.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/go-drift/keel/pkg/app"
	"github.com/go-drift/keel/pkg/core"
	"github.com/go-drift/keel/pkg/driver/ebitendriver"
	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/graphics"
	"github.com/go-drift/keel/pkg/sched"
	"github.com/go-drift/keel/pkg/widgets"
	"github.com/go-drift/keel/pkg/window"
)

var inspectAddr = flag.String("inspect", "", "serve the HTTP inspector on this address (e.g. localhost:7473)")

func main() {
	flag.Parse()

	var opts []app.Option
	if *inspectAddr != "" {
		opts = append(opts, app.WithInspectAddr(*inspectAddr))
	}
	if err := app.Run(ebitendriver.New(), run, opts...); err != nil {
		log.Fatal(err)
	}
}

func run(t *sched.Task, a *app.App) error {
	win, err := a.NewWindow(window.Options{
		Title:      "keel showcase",
		Size:       geometry.Size{Width: 640, Height: 480},
		Background: graphics.RGB(0x1e, 0x22, 0x28),
	})
	if err != nil {
		return err
	}

	win.SetRoot(buildShowcase(t, a, win))

	win.CloseRequested().Wait(t)
	win.Close()
	return nil
}

// buildShowcase assembles the demo tree: a padded column holding a
// click counter, a pulse animation, and a quit button.
func buildShowcase(t *sched.Task, a *app.App, win *window.Window) *core.Node {
	column := widgets.NewFlex("column", widgets.Flex{
		Direction: widgets.Vertical,
		Gap:       16,
	})

	counter := widgets.NewButton(a.Loop(), "counter", widgets.ButtonOptions{
		Size:         geometry.Size{Width: 200, Height: 44},
		CornerRadius: 8,
	})
	clicks := 0
	t.Loop().Spawn("showcase/counter", func(t *sched.Task) {
		for {
			counter.Clicked().Wait(t)
			clicks++
			win.SetTitle(fmt.Sprintf("keel showcase - %d clicks", clicks))
		}
	})

	pulse := newPulse(a.Loop(), geometry.Size{Width: 200, Height: 120})

	quit := widgets.NewButton(a.Loop(), "quit", widgets.ButtonOptions{
		Size:         geometry.Size{Width: 200, Height: 44},
		CornerRadius: 8,
		Idle:         graphics.RGB(0xa8, 0x3a, 0x3a),
		Hover:        graphics.RGB(0xbc, 0x4c, 0x4c),
		Active:       graphics.RGB(0x86, 0x2c, 0x2c),
	})
	t.Loop().Spawn("showcase/quit", func(t *sched.Task) {
		quit.Clicked().Wait(t)
		win.Close()
		a.Quit()
	})

	root := widgets.NewFrame("root", widgets.Frame{
		Insets: geometry.UniformInsets(24),
	})
	column.Node().AttachChild(counter.Node())
	column.Node().AttachChild(pulse.Node())
	column.Node().AttachChild(quit.Node())
	root.Node().AttachChild(column.Node())
	return root.Node()
}
