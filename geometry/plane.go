package geometry

import (
	"math"

	"github.com/vikram-vadrevu/raytracer/colors"
	"github.com/vikram-vadrevu/raytracer/vectors"
)

// Plane is the infinite plane Ax + By + Cz + D = 0.
type Plane struct {
	Normal vectors.Vec3
	D      float64
	Mat    *Surface
}

// NewPlane builds a plane from the four equation coefficients.
// The (A,B,C) normal is normalized; D is kept as written in the scene.
func NewPlane(a, b, c, d float64, mat *Surface) *Plane {
	return &Plane{
		Normal: vectors.Vec3{X: a, Y: b, Z: c}.Normalize(),
		D:      d,
		Mat:    mat,
	}
}

// nearParallelEpsilon rejects rays running almost inside the plane.
const nearParallelEpsilon = 1e-4

func (p *Plane) Intersect(ray Ray) (Intersection, bool) {
	denom := p.Normal.Dot(ray.Direction)
	if math.Abs(denom) < nearParallelEpsilon {
		return Intersection{}, false
	}

	t := -(p.Normal.Dot(ray.Origin) + p.D) / denom
	if t < 0 {
		return Intersection{}, false
	}

	return Intersection{
		Shape:    -1,
		Point:    ray.At(t),
		Normal:   p.Normal,
		Distance: t,
	}, true
}

// ColorAt returns the flat color; planes have no UV mapping.
func (p *Plane) ColorAt(vectors.Vec3) colors.Color4 {
	return p.Mat.Color
}

func (p *Plane) Surface() *Surface {
	return p.Mat
}
