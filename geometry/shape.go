package geometry

import (
	"github.com/vikram-vadrevu/raytracer/colors"
	"github.com/vikram-vadrevu/raytracer/vectors"
)

// Intersection records a ray-shape hit. Shape is the index of the
// owning shape in the scene's list; it is -1 until the scene stamps it.
type Intersection struct {
	Shape     int
	Point     vectors.Vec3
	Normal    vectors.Vec3
	Distance  float64
	Secondary bool
}

// Shape is the contract every renderable primitive satisfies.
// Intersect is pure: normals come back unperturbed and the caller
// applies roughness where the shading RNG lives.
type Shape interface {
	Intersect(ray Ray) (Intersection, bool)
	ColorAt(point vectors.Vec3) colors.Color4
	Surface() *Surface
}

// Surface carries the shading coefficients shared by all primitives.
// Shininess and transparency are per-channel in [0,1]; a nil slice
// means the coefficient is absent and contributes nothing.
type Surface struct {
	Color           colors.Color4
	Texture         Texture
	shininess       *[3]float64
	transparency    *[3]float64
	Roughness       float64
	RefractiveIndex float64
}

// DefaultIOR is the index of refraction used when a scene never sets one.
const DefaultIOR = 1.458

// Texture is the sampling contract consumed by ColorAt. Sample returns
// a linear-space color for u,v in [0,1]x[0,1].
type Texture interface {
	Sample(u, v float64) colors.Color4
}

// NewSurface builds a Surface from the scene loader's current state.
// Shininess and transparency accept 0, 1 or 3 values; a single value
// broadcasts to all three channels. Other lengths are ignored, like a
// missing coefficient.
func NewSurface(color colors.Color4, tex Texture, shininess, transparency []float64, roughness, ior float64) *Surface {
	if ior == 0 {
		ior = DefaultIOR
	}
	return &Surface{
		Color:           color,
		Texture:         tex,
		shininess:       spread3(shininess),
		transparency:    spread3(transparency),
		Roughness:       roughness,
		RefractiveIndex: ior,
	}
}

// Shininess returns the per-channel mirror coefficients, or ok=false
// when the surface has none.
func (s *Surface) Shininess() ([3]float64, bool) {
	if s.shininess == nil {
		return [3]float64{}, false
	}
	return *s.shininess, true
}

// Transparency returns the per-channel refraction coefficients, or
// ok=false when the surface has none.
func (s *Surface) Transparency() ([3]float64, bool) {
	if s.transparency == nil {
		return [3]float64{}, false
	}
	return *s.transparency, true
}

func spread3(vals []float64) *[3]float64 {
	switch len(vals) {
	case 1:
		return &[3]float64{vals[0], vals[0], vals[0]}
	case 3:
		return &[3]float64{vals[0], vals[1], vals[2]}
	default:
		return nil
	}
}
