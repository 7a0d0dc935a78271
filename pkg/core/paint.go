package core

import "github.com/go-drift/keel/pkg/graphics"

// PaintContext provides the canvas for painting a node tree.
type PaintContext struct {
	Canvas graphics.Canvas
}

// PaintChild paints child under its own transform: the canvas state is
// saved, the child's local-to-parent transform concatenated, the child's
// visual painted, and the child's needs-paint flag cleared. Passing the
// tree root paints the whole tree.
func (p *PaintContext) PaintChild(child *Node) {
	if child == nil {
		return
	}
	p.Canvas.Save()
	if !child.transform.IsIdentity() {
		p.Canvas.Concat(child.transform)
	}
	child.visual.Paint(child, p)
	child.dirty &^= DirtyPaint
	p.Canvas.Restore()
}
