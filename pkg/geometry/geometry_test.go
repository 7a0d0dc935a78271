package geometry

import (
	"math"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := RectFromLTWH(10, 10, 20, 20)

	if !r.Contains(Offset{X: 10, Y: 10}) {
		t.Errorf("expected top-left corner to be inside")
	}
	if r.Contains(Offset{X: 30, Y: 10}) {
		t.Errorf("expected right edge to be outside")
	}
	if r.Contains(Offset{X: 15, Y: 30}) {
		t.Errorf("expected bottom edge to be outside")
	}
	if !r.Contains(Offset{X: 29.9, Y: 29.9}) {
		t.Errorf("expected interior point to be inside")
	}
}

func TestRectUnionEmptyIdentity(t *testing.T) {
	r := RectFromLTWH(5, 5, 10, 10)

	if got := (Rect{}).Union(r); got != r {
		t.Errorf("empty union r = %v, want %v", got, r)
	}
	if got := r.Union(Rect{}); got != r {
		t.Errorf("r union empty = %v, want %v", got, r)
	}

	other := RectFromLTWH(0, 0, 7, 20)
	got := r.Union(other)
	want := Rect{Left: 0, Top: 0, Right: 15, Bottom: 20}
	if got != want {
		t.Errorf("union = %v, want %v", got, want)
	}
}

func TestAffineApply(t *testing.T) {
	tr := Translation(10, 20)
	got := tr.Apply(Offset{X: 1, Y: 2})
	if got != (Offset{X: 11, Y: 22}) {
		t.Errorf("translate apply = %v", got)
	}

	sc := Scaling(2, 3)
	got = sc.Apply(Offset{X: 4, Y: 5})
	if got != (Offset{X: 8, Y: 15}) {
		t.Errorf("scale apply = %v", got)
	}
}

func TestAffineConcatOrder(t *testing.T) {
	// Concat applies the right operand first: scale then translate.
	m := Translation(100, 0).Concat(Scaling(2, 2))
	got := m.Apply(Offset{X: 3, Y: 4})
	if got != (Offset{X: 106, Y: 8}) {
		t.Errorf("concat apply = %v, want {106 8}", got)
	}
}

func TestAffineInvert(t *testing.T) {
	m := Translation(7, -3).Concat(Scaling(2, 4))
	inv, ok := m.Invert()
	if !ok {
		t.Fatalf("expected invertible transform")
	}

	p := Offset{X: 5, Y: 6}
	back := inv.Apply(m.Apply(p))
	if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
		t.Errorf("round trip = %v, want %v", back, p)
	}

	if _, ok := (Affine{}).Invert(); ok {
		t.Errorf("expected singular transform to report !ok")
	}
}

func TestAffineRotation(t *testing.T) {
	m := Rotation(math.Pi / 2)
	got := m.Apply(Offset{X: 1, Y: 0})
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-1) > 1e-9 {
		t.Errorf("rotate 90 of (1,0) = %v, want (0,1)", got)
	}
}

func TestConstraintsConstrain(t *testing.T) {
	c := Constraints{
		Min: Size{Width: 10, Height: 10},
		Max: Size{Width: 100, Height: 50},
	}

	cases := []struct {
		name string
		in   Size
		want Size
	}{
		{"clamps up", Size{Width: 5, Height: 5}, Size{Width: 10, Height: 10}},
		{"clamps down", Size{Width: 200, Height: 60}, Size{Width: 100, Height: 50}},
		{"in range", Size{Width: 40, Height: 30}, Size{Width: 40, Height: 30}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Constrain(tc.in); got != tc.want {
				t.Errorf("Constrain(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestConstraintsDeflate(t *testing.T) {
	c := Tight(Size{Width: 100, Height: 80}).Deflate(20, 10)
	want := Tight(Size{Width: 80, Height: 70})
	if c != want {
		t.Errorf("deflate = %v, want %v", c, want)
	}

	u := Unconstrained().Deflate(20, 10)
	if u.HasBoundedWidth() || u.HasBoundedHeight() {
		t.Errorf("deflating unbounded constraints must stay unbounded")
	}
}
