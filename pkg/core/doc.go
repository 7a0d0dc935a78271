// Package core provides the retained node tree and its capability surface.
//
// This package defines the foundational types of the toolkit: Node, Visual,
// Geometry, and the recursive layout, paint, and hit-test drivers written
// once against them. A window owns one tree of nodes; node behavior is
// supplied by a Visual value attached at construction and never
// special-cased by the tree algorithms.
//
// # Nodes
//
// Node is a concrete struct identified by its pointer. Children form a
// doubly linked sibling chain threaded through the nodes themselves, so
// detaching and reinserting anywhere in a large sibling list is O(1):
//
//	root := core.NewNode("root", myVisual)
//	row := core.NewNode("row", rowVisual)
//	root.AttachChild(row)
//	row.Detach()
//
// AttachChild implicitly detaches the moved node first, so a node can be
// relocated freely without ever holding two parents.
//
// # Visuals
//
// A Visual supplies layout, hit testing, painting, and event handling for
// one node kind. Embed VisualBase to inherit the defaults (children share
// the parent's constraints, bounds-contains hit test, paint all children,
// ignore events) and override what the node kind needs:
//
//	type solid struct {
//	    core.VisualBase
//	    color graphics.Color
//	}
//
//	func (s *solid) Paint(n *core.Node, ctx *core.PaintContext) {
//	    ctx.Canvas.DrawRect(n.Geometry().Size.Rect(), graphics.Fill(s.color))
//	    s.VisualBase.Paint(n, ctx)
//	}
//
// # Dirty tracking
//
// MarkNeedsLayout and MarkNeedsPaint OR the flag into every ancestor up to
// the root; the root's Owner is then asked to schedule a visual update.
// Flags clear per node as the matching pass visits it: DoLayout clears
// needs-layout and stores the node's Geometry, PaintContext.PaintChild
// clears needs-paint. Marks on a detached subtree are inert until the
// subtree is attached under an owned root again.
//
// # Hit testing
//
// HitTest produces the path of hit nodes ordered outermost to innermost.
// Children are tried before the node's own bounds, topmost sibling first,
// so the deepest node under the point wins; the dispatcher bubbles events
// along the returned path.
package core
