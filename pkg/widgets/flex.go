package widgets

import (
	"github.com/go-drift/keel/pkg/core"
	"github.com/go-drift/keel/pkg/geometry"
)

// FlexFactor is the attached property a Flex container reads off its
// children: the share of leftover main-axis space a child receives.
// Children without a factor (or with factor zero) keep their intrinsic
// size.
var FlexFactor = core.NewProperty[float64]("FlexFactor")

// Axis selects a flex container's main direction.
type Axis int

const (
	// Horizontal lays children out left to right.
	Horizontal Axis = iota
	// Vertical lays children out top to bottom.
	Vertical
)

// Flex is a row or column container. Main-axis space left after laying
// out the fixed children is distributed to flexible children in
// proportion to their [FlexFactor]; the cross axis stretches every
// child to the container's cross extent when it is bounded.
type Flex struct {
	core.VisualBase

	// Direction is the main axis.
	Direction Axis

	// Gap is the spacing between adjacent children.
	Gap float64

	node *core.Node
}

// NewFlex builds a node wrapping the given flex configuration and
// returns the visual.
func NewFlex(name string, flex Flex) *Flex {
	f := &flex
	f.node = core.NewNode(name, f)
	return f
}

// Node returns the tree node this flex container is attached to.
func (f *Flex) Node() *core.Node {
	return f.node
}

// main and cross split a size along the flex direction.
func (f *Flex) main(s geometry.Size) float64 {
	if f.Direction == Horizontal {
		return s.Width
	}
	return s.Height
}

func (f *Flex) cross(s geometry.Size) float64 {
	if f.Direction == Horizontal {
		return s.Height
	}
	return s.Width
}

func (f *Flex) size(main, cross float64) geometry.Size {
	if f.Direction == Horizontal {
		return geometry.Size{Width: main, Height: cross}
	}
	return geometry.Size{Width: cross, Height: main}
}

// Layout runs the two-pass flex algorithm: fixed children first under
// loose main-axis constraints, then flexible children splitting the
// leftover main extent by factor. Children are finally placed in chain
// order separated by Gap.
func (f *Flex) Layout(n *core.Node, constraints geometry.Constraints) core.Geometry {
	maxMain := f.main(constraints.Max)
	maxCross := f.cross(constraints.Max)

	crossMin := 0.0
	if maxCross < geometry.Unbounded {
		// Bounded cross axis: stretch children to fill it.
		crossMin = maxCross
	}

	gaps := 0.0
	if n.ChildCount() > 1 {
		gaps = f.Gap * float64(n.ChildCount()-1)
	}

	// First pass: intrinsic children, loose on the main axis.
	usedMain := gaps
	totalFactor := 0.0
	for c := range n.Children() {
		factor := FlexFactor.GetOr(c, 0)
		if factor > 0 {
			totalFactor += factor
			continue
		}
		g := c.DoLayout(geometry.Constraints{
			Min: f.size(0, crossMin),
			Max: f.size(maxMain, maxCross),
		})
		usedMain += f.main(g.Size)
	}

	// Second pass: flexible children share the leftover main extent.
	if totalFactor > 0 && maxMain < geometry.Unbounded {
		leftover := maxMain - usedMain
		if leftover < 0 {
			leftover = 0
		}
		for c := range n.Children() {
			factor := FlexFactor.GetOr(c, 0)
			if factor <= 0 {
				continue
			}
			extent := leftover * factor / totalFactor
			g := c.DoLayout(geometry.Constraints{
				Min: f.size(extent, crossMin),
				Max: f.size(extent, maxCross),
			})
			usedMain += f.main(g.Size)
		}
	}

	// Placement pass, and the container's own extents.
	pos := 0.0
	maxChildCross := 0.0
	for c := range n.Children() {
		if f.Direction == Horizontal {
			c.SetOffset(geometry.Offset{X: pos})
		} else {
			c.SetOffset(geometry.Offset{Y: pos})
		}
		pos += f.main(c.Size()) + f.Gap
		if cc := f.cross(c.Size()); cc > maxChildCross {
			maxChildCross = cc
		}
	}

	mainExtent := usedMain
	if totalFactor > 0 && maxMain < geometry.Unbounded {
		mainExtent = maxMain
	}
	return core.GeometryOf(constraints.Constrain(f.size(mainExtent, maxChildCross)))
}
