package core

import (
	"slices"
	"testing"

	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/graphics"
)

// traceCanvas records the structural canvas calls a paint walk makes.
type traceCanvas struct {
	log []string
}

func (c *traceCanvas) Save()    { c.log = append(c.log, "save") }
func (c *traceCanvas) Restore() { c.log = append(c.log, "restore") }
func (c *traceCanvas) Translate(dx, dy float64) {
	c.log = append(c.log, "translate")
}
func (c *traceCanvas) Concat(transform geometry.Affine) {
	c.log = append(c.log, "concat")
}
func (c *traceCanvas) ClipRect(rect geometry.Rect)  { c.log = append(c.log, "clip") }
func (c *traceCanvas) Clear(color graphics.Color)   { c.log = append(c.log, "clear") }
func (c *traceCanvas) DrawRect(rect geometry.Rect, paint graphics.Paint) {
	c.log = append(c.log, "rect")
}
func (c *traceCanvas) DrawRRect(rrect graphics.RRect, paint graphics.Paint) {
	c.log = append(c.log, "rrect")
}
func (c *traceCanvas) DrawCircle(center geometry.Offset, radius float64, paint graphics.Paint) {
	c.log = append(c.log, "circle")
}
func (c *traceCanvas) DrawLine(start, end geometry.Offset, paint graphics.Paint) {
	c.log = append(c.log, "line")
}

// fillVisual draws one rect covering the node.
type fillVisual struct {
	boxVisual
}

func (v fillVisual) Paint(n *Node, ctx *PaintContext) {
	ctx.Canvas.DrawRect(n.Size().Rect(), graphics.Fill(graphics.ColorBlack))
	for c := range n.Children() {
		ctx.PaintChild(c)
	}
}

func TestPaintChildBracketsWithSaveRestore(t *testing.T) {
	size := geometry.Size{Width: 10, Height: 10}
	root := NewNode("root", fillVisual{boxVisual{size: size}})
	child := NewNode("child", fillVisual{boxVisual{size: size}})
	root.AttachChild(child)
	child.SetOffset(geometry.Offset{X: 3, Y: 4})
	root.DoLayout(geometry.Loose(size))

	canvas := &traceCanvas{}
	pc := &PaintContext{Canvas: canvas}
	pc.PaintChild(root)

	want := []string{"save", "rect", "save", "concat", "rect", "restore", "restore"}
	if !slices.Equal(canvas.log, want) {
		t.Fatalf("canvas log = %v, want %v", canvas.log, want)
	}
}

func TestPaintChildSkipsIdentityConcat(t *testing.T) {
	size := geometry.Size{Width: 10, Height: 10}
	root := NewNode("root", fillVisual{boxVisual{size: size}})
	root.DoLayout(geometry.Loose(size))

	canvas := &traceCanvas{}
	pc := &PaintContext{Canvas: canvas}
	pc.PaintChild(root)

	if slices.Contains(canvas.log, "concat") {
		t.Fatalf("identity transform reached the canvas: %v", canvas.log)
	}
}

func TestPaintChildClearsPaintFlag(t *testing.T) {
	root := NewNode("root", nil)
	child := NewNode("child", nil)
	root.AttachChild(child)
	root.DoLayout(geometry.Tight(geometry.Size{Width: 10, Height: 10}))

	if !root.NeedsPaint() || !child.NeedsPaint() {
		t.Fatal("fresh nodes should need paint")
	}

	pc := &PaintContext{Canvas: &traceCanvas{}}
	pc.PaintChild(root)

	if root.NeedsPaint() || child.NeedsPaint() {
		t.Error("paint flags survived the paint walk")
	}
}

func TestPaintChildNilIsNoOp(t *testing.T) {
	canvas := &traceCanvas{}
	pc := &PaintContext{Canvas: canvas}
	pc.PaintChild(nil)
	if len(canvas.log) != 0 {
		t.Fatalf("nil child produced canvas calls: %v", canvas.log)
	}
}
