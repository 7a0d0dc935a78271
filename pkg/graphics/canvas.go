// Package graphics defines the drawing surface consumed by the node tree:
// the [Canvas] command set, [Paint] and [Color], and the record/replay pair
// [PictureRecorder] and [DisplayList] that carries a painted frame to a
// [Surface].
package graphics

import "github.com/go-drift/keel/pkg/geometry"

// Canvas records or renders drawing commands.
type Canvas interface {
	// Save pushes the current transform and clip state.
	Save()

	// Restore pops the most recent transform and clip state.
	Restore()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// Concat applies an affine transform on top of the current one.
	Concat(transform geometry.Affine)

	// ClipRect restricts future drawing to the given rectangle.
	ClipRect(rect geometry.Rect)

	// Clear fills the entire canvas with the given color.
	Clear(color Color)

	// DrawRect draws a rectangle with the provided paint.
	DrawRect(rect geometry.Rect, paint Paint)

	// DrawRRect draws a rounded rectangle with the provided paint.
	DrawRRect(rrect RRect, paint Paint)

	// DrawCircle draws a circle with the provided paint.
	DrawCircle(center geometry.Offset, radius float64, paint Paint)

	// DrawLine draws a line segment with the provided paint.
	DrawLine(start, end geometry.Offset, paint Paint)
}
