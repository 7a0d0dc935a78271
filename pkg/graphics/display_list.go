package graphics

import "github.com/go-drift/keel/pkg/geometry"

// DisplayList is an immutable list of drawing operations.
// It can be replayed onto any Canvas implementation.
type DisplayList struct {
	ops  []displayOp
	size geometry.Size
}

// Paint replays the recorded operations onto the provided canvas.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, op := range d.ops {
		op.execute(canvas)
	}
}

// Size returns the size recorded when the display list was created.
func (d *DisplayList) Size() geometry.Size {
	return d.size
}

// OpCount returns the number of recorded operations.
func (d *DisplayList) OpCount() int {
	return len(d.ops)
}

// PictureRecorder records drawing commands into a display list.
type PictureRecorder struct {
	ops       []displayOp
	recording bool
	size      geometry.Size
}

// BeginRecording starts a new recording session.
func (r *PictureRecorder) BeginRecording(size geometry.Size) Canvas {
	r.ops = r.ops[:0]
	r.recording = true
	r.size = size
	return &recordingCanvas{recorder: r}
}

// EndRecording finishes the recording and returns a display list.
func (r *PictureRecorder) EndRecording() *DisplayList {
	if !r.recording {
		return &DisplayList{size: r.size}
	}
	r.recording = false
	ops := make([]displayOp, len(r.ops))
	copy(ops, r.ops)
	return &DisplayList{
		ops:  ops,
		size: r.size,
	}
}

func (r *PictureRecorder) append(op displayOp) {
	if !r.recording {
		return
	}
	r.ops = append(r.ops, op)
}

type displayOp interface {
	execute(canvas Canvas)
}

type recordingCanvas struct {
	recorder *PictureRecorder
}

func (c *recordingCanvas) Save() {
	c.recorder.append(opSave{})
}

func (c *recordingCanvas) Restore() {
	c.recorder.append(opRestore{})
}

func (c *recordingCanvas) Translate(dx, dy float64) {
	c.recorder.append(opTranslate{dx: dx, dy: dy})
}

func (c *recordingCanvas) Concat(transform geometry.Affine) {
	c.recorder.append(opConcat{transform: transform})
}

func (c *recordingCanvas) ClipRect(rect geometry.Rect) {
	c.recorder.append(opClipRect{rect: rect})
}

func (c *recordingCanvas) Clear(color Color) {
	c.recorder.append(opClear{color: color})
}

func (c *recordingCanvas) DrawRect(rect geometry.Rect, paint Paint) {
	c.recorder.append(opRect{rect: rect, paint: paint})
}

func (c *recordingCanvas) DrawRRect(rrect RRect, paint Paint) {
	c.recorder.append(opRRect{rrect: rrect, paint: paint})
}

func (c *recordingCanvas) DrawCircle(center geometry.Offset, radius float64, paint Paint) {
	c.recorder.append(opCircle{center: center, radius: radius, paint: paint})
}

func (c *recordingCanvas) DrawLine(start, end geometry.Offset, paint Paint) {
	c.recorder.append(opLine{start: start, end: end, paint: paint})
}

type opSave struct{}

func (o opSave) execute(canvas Canvas) { canvas.Save() }

type opRestore struct{}

func (o opRestore) execute(canvas Canvas) { canvas.Restore() }

type opTranslate struct {
	dx, dy float64
}

func (o opTranslate) execute(canvas Canvas) { canvas.Translate(o.dx, o.dy) }

type opConcat struct {
	transform geometry.Affine
}

func (o opConcat) execute(canvas Canvas) { canvas.Concat(o.transform) }

type opClipRect struct {
	rect geometry.Rect
}

func (o opClipRect) execute(canvas Canvas) { canvas.ClipRect(o.rect) }

type opClear struct {
	color Color
}

func (o opClear) execute(canvas Canvas) { canvas.Clear(o.color) }

type opRect struct {
	rect  geometry.Rect
	paint Paint
}

func (o opRect) execute(canvas Canvas) { canvas.DrawRect(o.rect, o.paint) }

type opRRect struct {
	rrect RRect
	paint Paint
}

func (o opRRect) execute(canvas Canvas) { canvas.DrawRRect(o.rrect, o.paint) }

type opCircle struct {
	center geometry.Offset
	radius float64
	paint  Paint
}

func (o opCircle) execute(canvas Canvas) { canvas.DrawCircle(o.center, o.radius, o.paint) }

type opLine struct {
	start, end geometry.Offset
	paint      Paint
}

func (o opLine) execute(canvas Canvas) { canvas.DrawLine(o.start, o.end, o.paint) }
