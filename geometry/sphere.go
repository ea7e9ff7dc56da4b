package geometry

import (
	"math"

	"github.com/vikram-vadrevu/raytracer/colors"
	"github.com/vikram-vadrevu/raytracer/vectors"
)

// Sphere is a renderable sphere.
type Sphere struct {
	Center vectors.Vec3
	Radius float64
	Mat    *Surface
}

func NewSphere(center vectors.Vec3, radius float64, mat *Surface) *Sphere {
	return &Sphere{Center: center, Radius: radius, Mat: mat}
}

// axisDistancePrecision quantizes the squared distance between the
// sphere's center and the ray before comparing it against the squared
// radius. Grazing rays otherwise flicker in and out of the silhouette
// from floating-point error; the quantization is a fixed, reproducible
// bias and must not change between renders.
const axisDistancePrecision = 0.005

// Intersect solves the quadratic for the ray against the sphere.
// The branch chosen depends on whether the origin is inside: from
// outside the nearer root is taken, from inside the far one.
func (s *Sphere) Intersect(ray Ray) (Intersection, bool) {
	oc := s.Center.Sub(ray.Origin)
	inside := oc.Norm() < s.Radius

	tc := oc.Dot(ray.Direction)
	if !inside && tc < 0 {
		return Intersection{}, false
	}

	mid := ray.At(tc)
	diff := mid.Sub(s.Center)
	d2 := roundPrecision(diff.Dot(diff), axisDistancePrecision)

	r2 := s.Radius * s.Radius
	if !inside && r2 <= d2 {
		return Intersection{}, false
	}

	tOffset := math.Sqrt(math.Max(0, r2-d2))
	t := tc - tOffset
	if inside {
		t = tc + tOffset
	}

	point := ray.At(t)
	normal := point.Sub(s.Center).Normalize()

	return Intersection{
		Shape:    -1,
		Point:    point,
		Normal:   normal,
		Distance: t,
	}, true
}

// ColorAt returns the flat color, or the texture sample at the point's
// spherical longitude/latitude when a texture is attached.
func (s *Sphere) ColorAt(point vectors.Vec3) colors.Color4 {
	if s.Mat.Texture == nil {
		return s.Mat.Color
	}
	u, v := SphericalUV(point, s.Center, s.Radius)
	return s.Mat.Texture.Sample(u, v)
}

func (s *Sphere) Surface() *Surface {
	return s.Mat
}

// roundPrecision rounds value to the nearest multiple of precision,
// falling back to the raw value if the rounding moved it too far.
func roundPrecision(value, precision float64) float64 {
	rounded := math.Round(value/precision) * precision
	if math.Abs(value-rounded) < precision {
		return rounded
	}
	return value
}

// SphericalUV maps a point on a sphere to normalized texture
// coordinates via longitude and latitude.
func SphericalUV(point, center vectors.Vec3, radius float64) (u, v float64) {
	p := point.Sub(center)
	phi := math.Atan2(p.Z, p.X)
	theta := math.Acos(p.Y / radius)

	u = 1.0 - (phi+math.Pi)/(2.0*math.Pi)
	v = theta / math.Pi
	return u, v
}
