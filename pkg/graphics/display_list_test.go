package graphics

import (
	"fmt"
	"testing"

	"github.com/go-drift/keel/pkg/geometry"
	"github.com/google/go-cmp/cmp"
)

// traceCanvas records the names of operations replayed onto it.
type traceCanvas struct {
	calls []string
}

func (c *traceCanvas) log(format string, args ...any) {
	c.calls = append(c.calls, fmt.Sprintf(format, args...))
}

func (c *traceCanvas) Save()                { c.log("save") }
func (c *traceCanvas) Restore()             { c.log("restore") }
func (c *traceCanvas) Translate(dx, dy float64) {
	c.log("translate %.0f %.0f", dx, dy)
}
func (c *traceCanvas) Concat(t geometry.Affine) { c.log("concat") }
func (c *traceCanvas) ClipRect(r geometry.Rect) {
	c.log("clip %.0fx%.0f", r.Width(), r.Height())
}
func (c *traceCanvas) Clear(col Color) { c.log("clear %08X", uint32(col)) }
func (c *traceCanvas) DrawRect(r geometry.Rect, p Paint) {
	c.log("rect %.0fx%.0f %s", r.Width(), r.Height(), p.Style)
}
func (c *traceCanvas) DrawRRect(rr RRect, p Paint) {
	c.log("rrect r=%.0f", rr.Radius)
}
func (c *traceCanvas) DrawCircle(center geometry.Offset, radius float64, p Paint) {
	c.log("circle r=%.0f", radius)
}
func (c *traceCanvas) DrawLine(a, b geometry.Offset, p Paint) { c.log("line") }

func TestRecordAndReplay(t *testing.T) {
	var rec PictureRecorder
	canvas := rec.BeginRecording(geometry.Size{Width: 100, Height: 50})
	canvas.Clear(ColorWhite)
	canvas.Save()
	canvas.Translate(10, 20)
	canvas.DrawRect(geometry.RectFromLTWH(0, 0, 30, 30), Fill(ColorRed))
	canvas.Restore()
	canvas.DrawLine(geometry.Offset{}, geometry.Offset{X: 100}, Stroke(ColorBlack, 1))
	list := rec.EndRecording()

	if list.OpCount() != 6 {
		t.Fatalf("op count = %d, want 6", list.OpCount())
	}
	if got := list.Size(); got != (geometry.Size{Width: 100, Height: 50}) {
		t.Errorf("recorded size = %v", got)
	}

	var trace traceCanvas
	list.Paint(&trace)
	want := []string{
		"clear FFFFFFFF",
		"save",
		"translate 10 20",
		"rect 30x30 fill",
		"restore",
		"line",
	}
	if diff := cmp.Diff(want, trace.calls); diff != "" {
		t.Fatalf("replay mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordingStopsAfterEnd(t *testing.T) {
	var rec PictureRecorder
	canvas := rec.BeginRecording(geometry.Size{Width: 10, Height: 10})
	canvas.Clear(ColorBlack)
	list := rec.EndRecording()

	// Late draws on the handed-out canvas must not mutate the list.
	canvas.DrawCircle(geometry.Offset{}, 5, Fill(ColorRed))
	if list.OpCount() != 1 {
		t.Fatalf("op count after late draw = %d, want 1", list.OpCount())
	}
}

func TestRRectFromClampsRadius(t *testing.T) {
	rr := RRectFrom(geometry.RectFromLTWH(0, 0, 40, 10), 30)
	if rr.Radius != 5 {
		t.Errorf("radius = %v, want clamped to 5", rr.Radius)
	}
	rr = RRectFrom(geometry.RectFromLTWH(0, 0, 40, 10), -1)
	if rr.Radius != 0 {
		t.Errorf("negative radius = %v, want 0", rr.Radius)
	}
}

func TestColorLerp(t *testing.T) {
	if got := ColorBlack.Lerp(ColorWhite, 0); got != ColorBlack {
		t.Errorf("t=0: %08X", uint32(got))
	}
	if got := ColorBlack.Lerp(ColorWhite, 1); got != ColorWhite {
		t.Errorf("t=1: %08X", uint32(got))
	}
	mid := ColorBlack.Lerp(ColorWhite, 0.5)
	r, g, b, a := mid.Components()
	if a != 0xFF || r != g || g != b || r < 0x7F || r > 0x81 {
		t.Errorf("midpoint = %08X", uint32(mid))
	}
}
