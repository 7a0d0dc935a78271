package main

import (
	"time"

	"github.com/tanema/gween/ease"

	"github.com/go-drift/keel/pkg/animation"
	"github.com/go-drift/keel/pkg/core"
	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/graphics"
	"github.com/go-drift/keel/pkg/sched"
)

// pulse is a custom visual: a circle whose radius and color follow an
// animation controller bouncing between its bounds.
type pulse struct {
	core.VisualBase

	size       geometry.Size
	controller *animation.Controller
	radius     *animation.Tween[float64]
	color      *animation.Tween[graphics.Color]
	node       *core.Node
}

func newPulse(loop *sched.Loop, size geometry.Size) *pulse {
	p := &pulse{
		size:   size,
		radius: animation.TweenFloat64(12, size.Height/2-8),
		color: &animation.Tween[graphics.Color]{
			Begin: graphics.RGB(0x38, 0x6c, 0xc4),
			End:   graphics.RGB(0x4c, 0xc4, 0x8a),
			Lerp:  animation.LerpColor,
		},
	}
	p.node = core.NewNode("pulse", p)

	p.controller = animation.NewController(loop, 900*time.Millisecond)
	p.controller.Ease = ease.InOutQuad
	p.controller.AddListener(p.node.MarkNeedsPaint)
	p.controller.AddStatusListener(func(s animation.Status) {
		switch s {
		case animation.StatusCompleted:
			p.controller.Reverse()
		case animation.StatusDismissed:
			p.controller.Forward()
		}
	})
	p.controller.Forward()
	return p
}

func (p *pulse) Node() *core.Node {
	return p.node
}

func (p *pulse) Layout(n *core.Node, constraints geometry.Constraints) core.Geometry {
	return core.GeometryOf(constraints.Constrain(p.size))
}

func (p *pulse) Paint(n *core.Node, ctx *core.PaintContext) {
	size := n.Geometry().Size
	center := geometry.Offset{X: size.Width / 2, Y: size.Height / 2}
	ctx.Canvas.DrawCircle(center, p.radius.Transform(p.controller), graphics.Paint{
		Color: p.color.Transform(p.controller),
		Style: graphics.PaintStyleFill,
	})
}
