// Package widgets provides the concrete node kinds shipped with keel:
// [Frame] (a decorated container), [Flex] (a row/column container driven
// by the [FlexFactor] attached property), [Interact] (a transparent
// event-handling node exposing broadcast handlers for clicks, hover,
// press, and focus), and [Button] (a Frame/Interact composition with a
// handler task that retints the frame from its interaction state).
//
// Every widget is a [core.Visual] attached to a node; the tree
// algorithms in core never special-case these types. Widgets that react
// to input do so through their node's event handler and communicate
// outward through [broadcast.Handler] values, so application tasks wait
// on "the next click" instead of installing callbacks:
//
//	btn := widgets.NewButton(loop, "ok", widgets.ButtonOptions{})
//	root.AttachChild(btn.Node())
//	for {
//	    click := btn.Clicked().Wait(t)
//	    _ = click
//	}
package widgets
