package testbed

import (
	"github.com/go-drift/keel/pkg/core"
	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/graphics"
	"github.com/go-drift/keel/pkg/input"
)

// Box is a fixed-size solid-color visual that records the events it
// receives. Tests compose trees from boxes to observe routing order.
type Box struct {
	core.VisualBase
	Size  geometry.Size
	Color graphics.Color

	// Events are the routed event kinds delivered to this box, in
	// order.
	Events []input.Kind

	// LayoutCalls counts Layout invocations, for dirty-protocol tests.
	LayoutCalls int
}

// NewBox builds a box node of the given size and color.
func NewBox(name string, size geometry.Size, color graphics.Color) (*core.Node, *Box) {
	b := &Box{Size: size, Color: color}
	return core.NewNode(name, b), b
}

// Layout sizes the box to its configured size within constraints;
// children share the box's own constraints, as in the default layout.
func (b *Box) Layout(n *core.Node, constraints geometry.Constraints) core.Geometry {
	b.LayoutCalls++
	for c := range n.Children() {
		c.DoLayout(constraints.Loosen())
		c.SetOffset(geometry.Offset{})
	}
	return core.GeometryOf(constraints.Constrain(b.Size))
}

// Paint fills the box bounds.
func (b *Box) Paint(n *core.Node, ctx *core.PaintContext) {
	if b.Color != graphics.ColorTransparent {
		ctx.Canvas.DrawRect(n.Size().Rect(), graphics.Fill(b.Color))
	}
	for c := range n.Children() {
		ctx.PaintChild(c)
	}
}

// HandleEvent appends the event kind to the record.
func (b *Box) HandleEvent(ctx *core.EventContext, ev *input.Event) {
	b.Events = append(b.Events, ev.Kind)
}
