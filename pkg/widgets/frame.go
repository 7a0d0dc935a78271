package widgets

import (
	"github.com/go-drift/keel/pkg/core"
	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/graphics"
)

// Frame is a container visual with a background fill, optional fixed
// size, and insets reserved around its content.
//
// Without a FixedSize the frame sizes itself to the union of its
// children's bounds plus the insets, clamped by the incoming
// constraints. Children are laid out against the inset-shrunk
// constraints and offset by the top-left inset.
type Frame struct {
	core.VisualBase

	// Background fills the frame's bounds before children paint.
	// ColorTransparent paints nothing.
	Background graphics.Color

	// CornerRadius rounds the background fill.
	CornerRadius float64

	// FixedSize, when non-empty, overrides the content-derived size.
	FixedSize geometry.Size

	// Insets reserve space between the frame's edge and its children.
	Insets geometry.Insets

	node *core.Node
}

// NewFrame builds a node wrapping the given frame configuration and
// returns the visual. The node is reachable through Node.
func NewFrame(name string, frame Frame) *Frame {
	f := &frame
	f.node = core.NewNode(name, f)
	return f
}

// Node returns the tree node this frame is attached to.
func (f *Frame) Node() *core.Node {
	return f.node
}

// SetBackground retints the frame and schedules a repaint.
func (f *Frame) SetBackground(c graphics.Color) {
	if f.Background == c {
		return
	}
	f.Background = c
	f.node.MarkNeedsPaint()
}

// SetFixedSize changes the frame's fixed size and schedules a relayout.
func (f *Frame) SetFixedSize(s geometry.Size) {
	if f.FixedSize == s {
		return
	}
	f.FixedSize = s
	f.node.MarkNeedsLayout()
}

// Layout lays every child out against the inset-shrunk constraints,
// offsets them by the top-left inset, and sizes the frame to its
// content (or FixedSize) within the incoming constraints.
func (f *Frame) Layout(n *core.Node, constraints geometry.Constraints) core.Geometry {
	content := constraints.Loosen().Deflate(f.Insets.Horizontal(), f.Insets.Vertical())
	var bounds geometry.Rect
	for c := range n.Children() {
		g := c.DoLayout(content)
		c.SetOffset(f.Insets.TopLeft())
		bounds = bounds.Union(g.Bounds)
	}

	size := f.FixedSize
	if size.IsEmpty() {
		inner := bounds.Size()
		size = geometry.Size{
			Width:  inner.Width + f.Insets.Horizontal(),
			Height: inner.Height + f.Insets.Vertical(),
		}
	}
	return core.GeometryOf(constraints.Constrain(size))
}

// Paint fills the background and paints the children on top.
func (f *Frame) Paint(n *core.Node, ctx *core.PaintContext) {
	if f.Background != graphics.ColorTransparent {
		r := n.Size().Rect()
		if f.CornerRadius > 0 {
			ctx.Canvas.DrawRRect(graphics.RRectFrom(r, f.CornerRadius), graphics.Fill(f.Background))
		} else {
			ctx.Canvas.DrawRect(r, graphics.Fill(f.Background))
		}
	}
	for c := range n.Children() {
		ctx.PaintChild(c)
	}
}
