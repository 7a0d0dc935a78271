package core

import (
	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/input"
)

// Visual supplies the behavior of one node kind. The tree's recursive
// layout, paint, and hit-test drivers are written once against this
// interface; new node kinds extend the toolkit without touching them.
type Visual interface {
	// Layout computes the node's geometry under the given constraints,
	// laying out children through child.DoLayout and positioning them
	// with SetTransform/SetOffset. Every child whose layout it requests
	// comes back clean with stored geometry.
	Layout(n *Node, constraints geometry.Constraints) Geometry

	// HitTest reports whether the point, in node-local coordinates, is
	// inside this node's own interactive region. Children are tested by
	// the tree walk, not here.
	HitTest(n *Node, position geometry.Offset) bool

	// Paint draws the node onto ctx.Canvas in local coordinates and
	// recurses through ctx.PaintChild.
	Paint(n *Node, ctx *PaintContext)

	// HandleEvent processes one routed input event. It runs on the
	// node's dispatch task and may suspend (broadcast waits, timers);
	// the dispatcher awaits it before visiting the next ancestor.
	HandleEvent(ctx *EventContext, ev *input.Event)
}

// VisualBase provides the default Visual behavior: children are laid out
// against the parent's own constraints at offset zero, hit testing checks
// the laid-out bounds, painting recurses in child order, and events are
// ignored. Embed it and override selectively.
type VisualBase struct{}

// Layout lays out every child against the same constraints with a zero
// offset and sizes the node to the constrained union of child bounds.
func (VisualBase) Layout(n *Node, constraints geometry.Constraints) Geometry {
	var bounds geometry.Rect
	for c := range n.Children() {
		g := c.DoLayout(constraints)
		c.SetOffset(geometry.Offset{})
		bounds = bounds.Union(g.Bounds)
	}
	return GeometryOf(constraints.Constrain(bounds.Size()))
}

// HitTest reports whether the position lies inside the node's size.
func (VisualBase) HitTest(n *Node, position geometry.Offset) bool {
	return n.Size().Rect().Contains(position)
}

// Paint paints all children in chain order.
func (VisualBase) Paint(n *Node, ctx *PaintContext) {
	for c := range n.Children() {
		ctx.PaintChild(c)
	}
}

// HandleEvent ignores the event.
func (VisualBase) HandleEvent(ctx *EventContext, ev *input.Event) {}
