package geometry

import (
	"math"

	"github.com/vikram-vadrevu/raytracer/colors"
	"github.com/vikram-vadrevu/raytracer/vectors"
)

// Triangle is a renderable triangle with optional per-vertex texture
// coordinates.
type Triangle struct {
	Vertices  [3]vectors.Vec3
	TexCoords *[3]vectors.Vec2
	Mat       *Surface
}

func NewTriangle(v0, v1, v2 vectors.Vec3, texCoords *[3]vectors.Vec2, mat *Surface) *Triangle {
	return &Triangle{
		Vertices:  [3]vectors.Vec3{v0, v1, v2},
		TexCoords: texCoords,
		Mat:       mat,
	}
}

// triangleEpsilon rejects near-degenerate determinants and hits at the
// ray origin.
const triangleEpsilon = 1e-4

// Intersect runs the Möller–Trumbore parametric solve. The returned
// normal is flipped, if needed, to oppose the incoming ray direction.
func (tr *Triangle) Intersect(ray Ray) (Intersection, bool) {
	edge1 := tr.Vertices[1].Sub(tr.Vertices[0])
	edge2 := tr.Vertices[2].Sub(tr.Vertices[0])

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if math.Abs(a) < triangleEpsilon {
		return Intersection{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Sub(tr.Vertices[0])
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return Intersection{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return Intersection{}, false
	}

	t := f * edge2.Dot(q)
	if t < triangleEpsilon {
		return Intersection{}, false
	}

	normal := edge1.Cross(edge2).Normalize()
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Scale(-1)
	}

	return Intersection{
		Shape:    -1,
		Point:    ray.At(t),
		Normal:   normal,
		Distance: t,
	}, true
}

// ColorAt returns the flat color, or the texture sample at the point's
// barycentric interpolation of the per-vertex texture coordinates.
func (tr *Triangle) ColorAt(point vectors.Vec3) colors.Color4 {
	if tr.Mat.Texture == nil || tr.TexCoords == nil {
		return tr.Mat.Color
	}
	u, v := BarycentricUV(point, tr.Vertices, *tr.TexCoords)
	return tr.Mat.Texture.Sample(u, v)
}

func (tr *Triangle) Surface() *Surface {
	return tr.Mat
}

// BarycentricUV interpolates per-vertex texture coordinates at a point
// inside the triangle.
func BarycentricUV(point vectors.Vec3, vertices [3]vectors.Vec3, texCoords [3]vectors.Vec2) (float64, float64) {
	v0 := vertices[1].Sub(vertices[0])
	v1 := vertices[2].Sub(vertices[0])
	v2 := point.Sub(vertices[0])

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)

	denom := d00*d11 - d01*d01
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1.0 - v - w

	uv := texCoords[0].Scale(u).Add(texCoords[1].Scale(v)).Add(texCoords[2].Scale(w))
	return uv.X, uv.Y
}
