package geometry

import (
	"math"

	"github.com/vikram-vadrevu/raytracer/vectors"
)

// Ray is an origin plus a direction. Directions are unit vectors
// everywhere except the NoRay sentinel.
type Ray struct {
	Origin    vectors.Vec3
	Direction vectors.Vec3
}

func NewRay(origin, direction vectors.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// NoRay is the sentinel returned when a projection rejects a pixel
// sample, e.g. outside the fisheye disk.
func NoRay() Ray {
	return Ray{}
}

// IsNoRay reports whether r is the rejected-sample sentinel.
func (r Ray) IsNoRay() bool {
	return r.Direction.IsZero()
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) vectors.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// NewReflectionRay builds the mirror reflection of incoming about the
// surface normal at the intersection: d' = d - 2(d·n)n.
func NewReflectionRay(hit Intersection, incoming Ray) Ray {
	d := incoming.Direction.Normalize()
	n := hit.Normal.Normalize()
	cos := math.Max(-1.0, math.Min(1.0, d.Dot(n)))
	reflected := d.Sub(n.Scale(2.0 * cos))
	return Ray{Origin: hit.Point, Direction: reflected.Normalize()}
}

// NewRefractionRay bends incoming through the surface using Snell's law
// with the given index of refraction. When the ray exits the medium
// (incoming·normal > 0) the normal is flipped and the index ratio
// inverted. Total internal reflection falls back to NewReflectionRay.
func NewRefractionRay(hit Intersection, incoming Ray, ior float64) Ray {
	d := incoming.Direction.Normalize()
	n := hit.Normal.Normalize()

	ratio := 1.0 / ior
	if d.Dot(n) > 0 {
		// leaving the medium
		n = n.Scale(-1)
		ratio = ior
	}

	cosI := math.Max(-1.0, math.Min(1.0, -d.Dot(n)))
	sinT2 := ratio * ratio * (1.0 - cosI*cosI)
	if sinT2 > 1.0 {
		// total internal reflection
		return NewReflectionRay(hit, incoming)
	}

	cosT := math.Sqrt(1.0 - sinT2)
	refracted := d.Scale(ratio).Add(n.Scale(ratio*cosI - cosT))
	return Ray{Origin: hit.Point, Direction: refracted.Normalize()}
}
