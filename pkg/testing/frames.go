package testing

import (
	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/graphics"
)

// FrameStats summarizes a replayed display list by operation kind.
type FrameStats struct {
	Saves      int
	Restores   int
	Translates int
	Concats    int
	Clips      int
	Clears     int
	Rects      int
	RRects     int
	Circles    int
	Lines      int
}

// Draws returns the number of primitive draw operations, excluding
// state changes and clears.
func (s FrameStats) Draws() int {
	return s.Rects + s.RRects + s.Circles + s.Lines
}

// CountOps replays frame and tallies its operations. A nil frame
// yields the zero stats.
func CountOps(frame *graphics.DisplayList) FrameStats {
	c := &countingCanvas{}
	if frame != nil {
		frame.Paint(c)
	}
	return c.stats
}

// FillColors replays frame and returns the fill colors of every filled
// rect, rounded rect, and circle, in draw order. Stroked shapes and
// clears are skipped.
func FillColors(frame *graphics.DisplayList) []graphics.Color {
	c := &countingCanvas{}
	if frame != nil {
		frame.Paint(c)
	}
	return c.fills
}

type countingCanvas struct {
	stats FrameStats
	fills []graphics.Color
}

func (c *countingCanvas) Save()                       { c.stats.Saves++ }
func (c *countingCanvas) Restore()                    { c.stats.Restores++ }
func (c *countingCanvas) Translate(dx, dy float64)    { c.stats.Translates++ }
func (c *countingCanvas) Concat(t geometry.Affine)    { c.stats.Concats++ }
func (c *countingCanvas) ClipRect(rect geometry.Rect) { c.stats.Clips++ }
func (c *countingCanvas) Clear(color graphics.Color)  { c.stats.Clears++ }

func (c *countingCanvas) DrawRect(rect geometry.Rect, paint graphics.Paint) {
	c.stats.Rects++
	c.recordFill(paint)
}

func (c *countingCanvas) DrawRRect(rrect graphics.RRect, paint graphics.Paint) {
	c.stats.RRects++
	c.recordFill(paint)
}

func (c *countingCanvas) DrawCircle(center geometry.Offset, radius float64, paint graphics.Paint) {
	c.stats.Circles++
	c.recordFill(paint)
}

func (c *countingCanvas) DrawLine(start, end geometry.Offset, paint graphics.Paint) {
	c.stats.Lines++
}

func (c *countingCanvas) recordFill(paint graphics.Paint) {
	if paint.Style != graphics.PaintStyleStroke {
		c.fills = append(c.fills, paint.Color)
	}
}
