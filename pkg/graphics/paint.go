package graphics

import (
	"fmt"

	"github.com/go-drift/keel/pkg/geometry"
)

// PaintStyle describes how shapes are filled or stroked.
type PaintStyle int

const (
	// PaintStyleFill fills the shape interior.
	PaintStyleFill PaintStyle = iota

	// PaintStyleStroke draws only the outline.
	PaintStyleStroke

	// PaintStyleFillAndStroke fills and then strokes the outline.
	PaintStyleFillAndStroke
)

// String returns a human-readable representation of the paint style.
func (s PaintStyle) String() string {
	switch s {
	case PaintStyleFill:
		return "fill"
	case PaintStyleStroke:
		return "stroke"
	case PaintStyleFillAndStroke:
		return "fill_and_stroke"
	default:
		return fmt.Sprintf("PaintStyle(%d)", int(s))
	}
}

// Paint describes how a shape is drawn.
type Paint struct {
	Color       Color
	Style       PaintStyle
	StrokeWidth float64
}

// Fill returns a fill paint with the given color.
func Fill(color Color) Paint {
	return Paint{Color: color, Style: PaintStyleFill}
}

// Stroke returns a stroke paint with the given color and width.
func Stroke(color Color, width float64) Paint {
	return Paint{Color: color, Style: PaintStyleStroke, StrokeWidth: width}
}

// RRect is a rectangle with uniformly rounded corners.
type RRect struct {
	Rect   geometry.Rect
	Radius float64
}

// RRectFrom builds a rounded rectangle, clamping the radius to half the
// shorter side.
func RRectFrom(rect geometry.Rect, radius float64) RRect {
	if radius < 0 {
		radius = 0
	}
	if max := rect.Width() / 2; radius > max {
		radius = max
	}
	if max := rect.Height() / 2; radius > max {
		radius = max
	}
	return RRect{Rect: rect, Radius: radius}
}
