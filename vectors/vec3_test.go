package vectors

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b Vec3) bool {
	return math.Abs(a.X-b.X) < eps &&
		math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.Z-b.Z) < eps
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"axis", Vec3{X: 5}, Vec3{X: 1}},
		{"diagonal", Vec3{3, 0, 4}, Vec3{0.6, 0, 0.8}},
		{"already unit", Vec3{Y: 1}, Vec3{Y: 1}},
		{"zero stays zero", Vec3{}, Vec3{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.in.Normalize(); !almostEqual(got, c.want) {
				t.Fatalf("Normalize(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestNormalizeScaleInvariant(t *testing.T) {
	v := Vec3{1.7, -2.3, 0.4}
	a := v.Normalize()
	b := v.Scale(37.5).Normalize()
	if !almostEqual(a, b) {
		t.Fatalf("normalization not scale-invariant: %v vs %v", a, b)
	}
	if got := a.Norm(); math.Abs(got-1.0) > eps {
		t.Fatalf("normalized length = %v, want 1", got)
	}
}

func TestCross(t *testing.T) {
	x := Vec3{X: 1}
	y := Vec3{Y: 1}
	z := Vec3{Z: 1}

	if got := x.Cross(y); !almostEqual(got, z) {
		t.Fatalf("x cross y = %v, want %v", got, z)
	}
	// anticommutative
	a := Vec3{1, 2, 3}
	b := Vec3{-4, 0, 2}
	if got, want := a.Cross(b), b.Cross(a).Scale(-1); !almostEqual(got, want) {
		t.Fatalf("cross not anticommutative: %v vs %v", got, want)
	}
	// result is orthogonal to both inputs
	c := a.Cross(b)
	if math.Abs(c.Dot(a)) > eps || math.Abs(c.Dot(b)) > eps {
		t.Fatalf("cross product %v not orthogonal to inputs", c)
	}
}

func TestDot(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}
	if got := a.Dot(b); got != 12 {
		t.Fatalf("dot = %v, want 12", got)
	}
	if a.Dot(b) != b.Dot(a) {
		t.Fatal("dot not symmetric")
	}
}

func TestOrthogonal(t *testing.T) {
	cases := []Vec3{
		{1, 0, 0},
		{0, 1, 0},
		{0.96, 0.1, 0.1},
		{-0.2, 0.5, 0.9},
	}
	for _, v := range cases {
		o := v.Orthogonal()
		if math.Abs(o.Dot(v)) > eps {
			t.Fatalf("Orthogonal(%v) = %v is not perpendicular", v, o)
		}
		if math.Abs(o.Norm()-1.0) > eps {
			t.Fatalf("Orthogonal(%v) = %v is not unit length", v, o)
		}
	}
}

func TestRotateAround(t *testing.T) {
	// quarter turn of +X around +Z lands on +Y
	got := Vec3{X: 1}.RotateAround(Vec3{Z: 1}, math.Pi/2)
	if !almostEqual(got, Vec3{Y: 1}) {
		t.Fatalf("rotate = %v, want (0,1,0)", got)
	}

	// full turn is the identity
	v := Vec3{0.3, -0.7, 0.2}
	if got := v.RotateAround(Vec3{X: 1}, 2*math.Pi); !almostEqual(got, v) {
		t.Fatalf("full rotation = %v, want %v", got, v)
	}

	// rotation preserves length
	axis := Vec3{1, 1, 0}.Normalize()
	r := v.RotateAround(axis, 1.234)
	if math.Abs(r.Norm()-v.Norm()) > eps {
		t.Fatalf("rotation changed length: %v vs %v", r.Norm(), v.Norm())
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(Vec3{1, 2, 3}, Vec3{1, 2, 3}); got != 0 {
		t.Fatalf("distance to self = %v, want 0", got)
	}
	if got := Distance(Vec3{}, Vec3{3, 4, 0}); math.Abs(got-5) > eps {
		t.Fatalf("distance = %v, want 5", got)
	}
}
