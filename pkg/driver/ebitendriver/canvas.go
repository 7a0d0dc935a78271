package ebitendriver

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/graphics"
)

// canvas renders display-list commands onto an ebiten image through the
// vector rasterizer. The transform and clip stack is tracked here; the
// rasterizer itself draws in screen space.
//
// The vector helpers draw axis-aligned shapes, so a rotated or skewed
// transform degrades to the shape's transformed bounding box. Node
// trees use translation and scale almost exclusively; the trade keeps
// the backend on the stable vector API.
type canvas struct {
	dst   *ebiten.Image
	state canvasState
	stack []canvasState
}

type canvasState struct {
	tf      geometry.Affine
	clip    geometry.Rect
	hasClip bool
}

func newCanvas(dst *ebiten.Image) *canvas {
	return &canvas{
		dst:   dst,
		state: canvasState{tf: geometry.AffineIdentity()},
	}
}

func (c *canvas) Save() {
	c.stack = append(c.stack, c.state)
}

func (c *canvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.state = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

func (c *canvas) Translate(dx, dy float64) {
	c.state.tf = c.state.tf.Concat(geometry.Translation(dx, dy))
}

func (c *canvas) Concat(transform geometry.Affine) {
	c.state.tf = c.state.tf.Concat(transform)
}

// ClipRect intersects the screen-space bounding box of rect into the
// clip. The clip culls whole draws; it does not cut partially covered
// shapes.
func (c *canvas) ClipRect(rect geometry.Rect) {
	dr := transformRect(c.state.tf, rect)
	if c.state.hasClip {
		dr = c.state.clip.Intersect(dr)
	}
	c.state.clip = dr
	c.state.hasClip = true
}

func (c *canvas) Clear(clr graphics.Color) {
	c.dst.Fill(toNRGBA(clr))
}

// clipped reports whether a draw with the given screen-space bounds can
// be skipped entirely.
func (c *canvas) clipped(bounds geometry.Rect) bool {
	return c.state.hasClip && c.state.clip.Intersect(bounds).IsEmpty()
}

func (c *canvas) DrawRect(rect geometry.Rect, paint graphics.Paint) {
	dr := transformRect(c.state.tf, rect)
	if dr.IsEmpty() || c.clipped(dr) {
		return
	}
	clr := toNRGBA(paint.Color)
	x, y := float32(dr.Left), float32(dr.Top)
	w, h := float32(dr.Width()), float32(dr.Height())
	if paint.Style != graphics.PaintStyleStroke {
		vector.DrawFilledRect(c.dst, x, y, w, h, clr, true)
	}
	if paint.Style != graphics.PaintStyleFill {
		vector.StrokeRect(c.dst, x, y, w, h, c.strokeWidth(paint), clr, true)
	}
}

// DrawRRect decomposes the rounded rect into a cross of rects plus four
// corner circles; the union covers exactly the rounded area.
func (c *canvas) DrawRRect(rrect graphics.RRect, paint graphics.Paint) {
	dr := transformRect(c.state.tf, rrect.Rect)
	if dr.IsEmpty() || c.clipped(dr) {
		return
	}
	radius := rrect.Radius * scaleFactor(c.state.tf)
	clr := toNRGBA(paint.Color)

	if paint.Style != graphics.PaintStyleStroke {
		rects, corners := rrectParts(dr, radius)
		for _, r := range rects {
			vector.DrawFilledRect(c.dst, float32(r.Left), float32(r.Top),
				float32(r.Width()), float32(r.Height()), clr, true)
		}
		for _, p := range corners {
			vector.DrawFilledCircle(c.dst, float32(p.X), float32(p.Y), float32(radius), clr, true)
		}
	}
	if paint.Style != graphics.PaintStyleFill {
		// Stroke outlines the bounding rect; the corner rounding is
		// dropped.
		vector.StrokeRect(c.dst, float32(dr.Left), float32(dr.Top),
			float32(dr.Width()), float32(dr.Height()), c.strokeWidth(paint), clr, true)
	}
}

func (c *canvas) DrawCircle(center geometry.Offset, radius float64, paint graphics.Paint) {
	p := c.state.tf.Apply(center)
	r := radius * scaleFactor(c.state.tf)
	bounds := geometry.Rect{Left: p.X - r, Top: p.Y - r, Right: p.X + r, Bottom: p.Y + r}
	if r <= 0 || c.clipped(bounds) {
		return
	}
	clr := toNRGBA(paint.Color)
	if paint.Style != graphics.PaintStyleStroke {
		vector.DrawFilledCircle(c.dst, float32(p.X), float32(p.Y), float32(r), clr, true)
	}
	if paint.Style != graphics.PaintStyleFill {
		vector.StrokeCircle(c.dst, float32(p.X), float32(p.Y), float32(r), c.strokeWidth(paint), clr, true)
	}
}

func (c *canvas) DrawLine(start, end geometry.Offset, paint graphics.Paint) {
	a := c.state.tf.Apply(start)
	b := c.state.tf.Apply(end)
	bounds := geometry.Rect{
		Left:   math.Min(a.X, b.X),
		Top:    math.Min(a.Y, b.Y),
		Right:  math.Max(a.X, b.X),
		Bottom: math.Max(a.Y, b.Y),
	}
	if c.state.hasClip && c.state.clip.Intersect(bounds).IsEmpty() && !bounds.IsEmpty() {
		return
	}
	vector.StrokeLine(c.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y),
		c.strokeWidth(paint), toNRGBA(paint.Color), true)
}

// strokeWidth scales the paint's stroke width into screen space, with a
// hairline floor.
func (c *canvas) strokeWidth(paint graphics.Paint) float32 {
	w := paint.StrokeWidth * scaleFactor(c.state.tf)
	if w < 1 {
		w = 1
	}
	return float32(w)
}

// transformRect maps rect through t and returns the axis-aligned
// bounding box of the transformed corners.
func transformRect(t geometry.Affine, r geometry.Rect) geometry.Rect {
	corners := [4]geometry.Offset{
		t.Apply(geometry.Offset{X: r.Left, Y: r.Top}),
		t.Apply(geometry.Offset{X: r.Right, Y: r.Top}),
		t.Apply(geometry.Offset{X: r.Right, Y: r.Bottom}),
		t.Apply(geometry.Offset{X: r.Left, Y: r.Bottom}),
	}
	out := geometry.Rect{
		Left: corners[0].X, Top: corners[0].Y,
		Right: corners[0].X, Bottom: corners[0].Y,
	}
	for _, p := range corners[1:] {
		out.Left = math.Min(out.Left, p.X)
		out.Top = math.Min(out.Top, p.Y)
		out.Right = math.Max(out.Right, p.X)
		out.Bottom = math.Max(out.Bottom, p.Y)
	}
	return out
}

// scaleFactor is the average of the transform's axis scale magnitudes,
// used to scale radii and stroke widths.
func scaleFactor(t geometry.Affine) float64 {
	sx := math.Hypot(t[0], t[3])
	sy := math.Hypot(t[1], t[4])
	return (sx + sy) / 2
}

// rrectParts splits a rounded rect of the given corner radius into the
// axis-aligned rects and corner circle centers whose union fills it.
// The radius is clamped to half the shorter side.
func rrectParts(r geometry.Rect, radius float64) (rects []geometry.Rect, corners []geometry.Offset) {
	if radius > r.Width()/2 {
		radius = r.Width() / 2
	}
	if radius > r.Height()/2 {
		radius = r.Height() / 2
	}
	if radius <= 0 {
		return []geometry.Rect{r}, nil
	}
	rects = []geometry.Rect{
		// Center band, full height.
		{Left: r.Left + radius, Top: r.Top, Right: r.Right - radius, Bottom: r.Bottom},
		// Left and right bands between the corner arcs.
		{Left: r.Left, Top: r.Top + radius, Right: r.Left + radius, Bottom: r.Bottom - radius},
		{Left: r.Right - radius, Top: r.Top + radius, Right: r.Right, Bottom: r.Bottom - radius},
	}
	corners = []geometry.Offset{
		{X: r.Left + radius, Y: r.Top + radius},
		{X: r.Right - radius, Y: r.Top + radius},
		{X: r.Left + radius, Y: r.Bottom - radius},
		{X: r.Right - radius, Y: r.Bottom - radius},
	}
	return rects, corners
}

// toNRGBA converts an ARGB color to the non-premultiplied color the
// rasterizer expects.
func toNRGBA(c graphics.Color) color.NRGBA {
	r, g, b, a := c.Components()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
