package geometry

import "math"

// Constraints describes the box constraints handed to a node during
// layout: the node must produce a size with Min <= size <= Max in both
// dimensions.
type Constraints struct {
	Min Size
	Max Size
}

// Unbounded marks an axis with no upper limit.
const Unbounded = math.MaxFloat64

// Tight returns constraints that admit exactly size.
func Tight(size Size) Constraints {
	return Constraints{Min: size, Max: size}
}

// Loose returns constraints from zero up to size.
func Loose(size Size) Constraints {
	return Constraints{Max: size}
}

// Unconstrained returns constraints with no limits in either axis.
func Unconstrained() Constraints {
	return Constraints{Max: Size{Width: Unbounded, Height: Unbounded}}
}

// Constrain clamps size into the constraint bounds.
func (c Constraints) Constrain(size Size) Size {
	return Size{
		Width:  math.Min(math.Max(size.Width, c.Min.Width), c.Max.Width),
		Height: math.Min(math.Max(size.Height, c.Min.Height), c.Max.Height),
	}
}

// IsTight reports whether the constraints admit exactly one size.
func (c Constraints) IsTight() bool {
	return floatEqual(c.Min.Width, c.Max.Width) && floatEqual(c.Min.Height, c.Max.Height)
}

// Loosen returns the constraints with the minimums dropped to zero.
func (c Constraints) Loosen() Constraints {
	return Constraints{Max: c.Max}
}

// Deflate shrinks the constraints by the given horizontal and vertical
// amounts, flooring at zero. Used by containers that reserve insets.
func (c Constraints) Deflate(horizontal, vertical float64) Constraints {
	deflate := func(v, by float64) float64 {
		if v == Unbounded {
			return v
		}
		return math.Max(0, v-by)
	}
	return Constraints{
		Min: Size{
			Width:  math.Max(0, c.Min.Width-horizontal),
			Height: math.Max(0, c.Min.Height-vertical),
		},
		Max: Size{
			Width:  deflate(c.Max.Width, horizontal),
			Height: deflate(c.Max.Height, vertical),
		},
	}
}

// HasBoundedWidth reports whether the max width is finite.
func (c Constraints) HasBoundedWidth() bool {
	return c.Max.Width < Unbounded
}

// HasBoundedHeight reports whether the max height is finite.
func (c Constraints) HasBoundedHeight() bool {
	return c.Max.Height < Unbounded
}
