package lights

import (
	"math"
	"testing"
	"time"

	"github.com/vikram-vadrevu/raytracer/colors"
	"github.com/vikram-vadrevu/raytracer/vectors"
)

const eps = 1e-9

func TestSun(t *testing.T) {
	s := NewSun(vectors.Vec3{X: 3}, colors.White())

	// direction is normalized and the same from every point
	want := vectors.Vec3{X: 1}
	if got := s.Direction(vectors.Vec3{}); vectors.Distance(got, want) > eps {
		t.Fatalf("direction = %v, want %v", got, want)
	}
	if got := s.Direction(vectors.Vec3{Y: 100}); vectors.Distance(got, want) > eps {
		t.Fatalf("direction from afar = %v, want %v", got, want)
	}

	// intensity does not fall off
	if got := s.Intensity(vectors.Vec3{Z: 1e6}); got != 1 {
		t.Fatalf("intensity = %v, want 1", got)
	}
}

func TestBulb(t *testing.T) {
	b := NewBulb(vectors.Vec3{X: 2}, colors.White())

	// direction points from the shaded point toward the bulb
	want := vectors.Vec3{X: 1}
	if got := b.Direction(vectors.Vec3{}); vectors.Distance(got, want) > eps {
		t.Fatalf("direction = %v, want %v", got, want)
	}

	// inverse-square falloff
	if got := b.Intensity(vectors.Vec3{}); math.Abs(got-0.25) > eps {
		t.Fatalf("intensity at distance 2 = %v, want 0.25", got)
	}
	if got := b.Intensity(vectors.Vec3{X: 1}); math.Abs(got-1) > eps {
		t.Fatalf("intensity at distance 1 = %v, want 1", got)
	}
}

func TestSunAt(t *testing.T) {
	// March equinox: the sun sits near the equatorial plane, and near
	// local noon over the prime meridian it should have a strong +X
	// component in ECEF.
	when, err := time.Parse(time.RFC3339, "2024-03-20T12:00:00Z")
	if err != nil {
		t.Fatal(err)
	}

	s := SunAt(when, colors.White())
	dir := s.Direction(vectors.Vec3{})

	if math.Abs(dir.Norm()-1) > 1e-6 {
		t.Fatalf("direction not unit length: %v", dir.Norm())
	}
	if math.Abs(dir.Z) > 0.05 {
		t.Fatalf("equinox sun too far from the equatorial plane: %v", dir)
	}
	if dir.X < 0.9 {
		t.Fatalf("noon sun should point near +X, got %v", dir)
	}
}
