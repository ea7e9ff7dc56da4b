package geometry

import (
	"math"
	"testing"

	"github.com/vikram-vadrevu/raytracer/colors"
	"github.com/vikram-vadrevu/raytracer/vectors"
)

const eps = 1e-9

func plainSurface() *Surface {
	return NewSurface(colors.White(), nil, nil, nil, 0, 0)
}

func TestSphereIntersectOutside(t *testing.T) {
	s := NewSphere(vectors.Vec3{}, 1, plainSurface())
	ray := NewRay(vectors.Vec3{X: 10}, vectors.Vec3{X: -1})

	hit, ok := s.Intersect(ray)
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(hit.Distance-9) > eps {
		t.Fatalf("distance = %v, want 9", hit.Distance)
	}
	want := vectors.Vec3{X: 1}
	if vectors.Distance(hit.Point, want) > eps {
		t.Fatalf("point = %v, want %v", hit.Point, want)
	}
	if vectors.Distance(hit.Normal, want) > eps {
		t.Fatalf("normal = %v, want %v", hit.Normal, want)
	}
}

func TestSphereIntersectInside(t *testing.T) {
	s := NewSphere(vectors.Vec3{}, 2, plainSurface())
	ray := NewRay(vectors.Vec3{}, vectors.Vec3{Z: 1})

	hit, ok := s.Intersect(ray)
	if !ok {
		t.Fatal("expected a hit from inside")
	}
	// far root: exits through the shell
	if math.Abs(hit.Distance-2) > eps {
		t.Fatalf("distance = %v, want 2", hit.Distance)
	}
	// normal points outward even when hit from inside
	if vectors.Distance(hit.Normal, vectors.Vec3{Z: 1}) > eps {
		t.Fatalf("normal = %v, want (0,0,1)", hit.Normal)
	}
}

func TestSphereMisses(t *testing.T) {
	s := NewSphere(vectors.Vec3{Z: -3}, 1, plainSurface())

	cases := []struct {
		name string
		ray  Ray
	}{
		{"behind origin", NewRay(vectors.Vec3{}, vectors.Vec3{Z: 1})},
		{"wide of the silhouette", NewRay(vectors.Vec3{}, vectors.Vec3{X: 1, Z: -1}.Normalize())},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, ok := s.Intersect(c.ray); ok {
				t.Fatal("expected a miss")
			}
		})
	}
}

func TestSphericalUV(t *testing.T) {
	center := vectors.Vec3{}
	// north pole maps to v=0, south pole to v=1
	if _, v := SphericalUV(vectors.Vec3{Y: 1}, center, 1); math.Abs(v) > eps {
		t.Fatalf("north pole v = %v, want 0", v)
	}
	if _, v := SphericalUV(vectors.Vec3{Y: -1}, center, 1); math.Abs(v-1) > eps {
		t.Fatalf("south pole v = %v, want 1", v)
	}
	// equator maps to v=0.5
	u, v := SphericalUV(vectors.Vec3{X: 1}, center, 1)
	if math.Abs(v-0.5) > eps {
		t.Fatalf("equator v = %v, want 0.5", v)
	}
	if u < 0 || u > 1 {
		t.Fatalf("u = %v out of range", u)
	}
}
