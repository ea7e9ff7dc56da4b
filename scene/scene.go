package scene

import (
	"math"
	"math/rand"

	"github.com/vikram-vadrevu/raytracer/colors"
	"github.com/vikram-vadrevu/raytracer/geometry"
	"github.com/vikram-vadrevu/raytracer/lights"
	"github.com/vikram-vadrevu/raytracer/vectors"
)

// selfIntersectionBias is how far a secondary ray's origin is advanced
// along its own direction before retesting the scene, so a surface
// never re-reports a hit against itself at distance zero. It must stay
// below the smallest feature size scenes are expected to contain.
const selfIntersectionBias = 0.055

// DefaultBounceLimit bounds reflection/refraction recursion when a
// scene never sets one.
const DefaultBounceLimit = 4

// Scene owns the shapes and light sources, in declaration order, and
// drives ray tracing against them. Shapes and lights are immutable
// once loading finishes; Trace only reads them, so one Scene serves
// any number of goroutines.
type Scene struct {
	Shapes      []geometry.Shape
	Lights      []lights.Source
	BounceLimit int
	GIDepth     int
}

func New() *Scene {
	return &Scene{BounceLimit: DefaultBounceLimit}
}

func (s *Scene) AddShape(shape geometry.Shape) {
	s.Shapes = append(s.Shapes, shape)
}

func (s *Scene) AddLight(light lights.Source) {
	s.Lights = append(s.Lights, light)
}

// LightResidual is one light's surviving contribution at one shaded
// point, produced after shadow testing and consumed immediately by the
// Lambertian accumulator.
type LightResidual struct {
	Color     colors.Color4
	Intensity float64
	Direction vectors.Vec3
	Normal    vectors.Vec3
}

// FindMinimumIntersection scans every shape and returns the hit with
// the smallest non-negative distance, stamped with the owning shape's
// index.
func (s *Scene) FindMinimumIntersection(ray geometry.Ray) (geometry.Intersection, bool) {
	return s.findMinimumFrom(ray, nil)
}

// findMinimumFrom is the biased variant: when the ray leaves a known
// intersection, the origin is advanced by selfIntersectionBias once,
// before any shape is tested, since the same ray is tested against
// every shape in one pass.
func (s *Scene) findMinimumFrom(ray geometry.Ray, from *geometry.Intersection) (geometry.Intersection, bool) {
	if from != nil {
		ray.Origin = ray.Origin.Add(ray.Direction.Scale(selfIntersectionBias))
	}

	best := geometry.Intersection{}
	found := false
	for i, shape := range s.Shapes {
		hit, ok := shape.Intersect(ray)
		if !ok {
			continue
		}
		hit.Shape = i
		hit.Secondary = from != nil
		if !found || hit.Distance < best.Distance {
			best = hit
			found = true
		}
	}
	return best, found
}

// Trace follows a primary ray through the scene and returns the linear
// RGBA color it gathers. Alpha distinguishes a miss (0) from a hit (1).
// The RNG drives global illumination and roughness and must not be
// shared across goroutines.
func (s *Scene) Trace(ray geometry.Ray, rng *rand.Rand) colors.Color4 {
	return s.trace(ray, nil, s.BounceLimit, s.GIDepth, rng)
}

func (s *Scene) trace(ray geometry.Ray, from *geometry.Intersection, bounces, giDepth int, rng *rand.Rand) colors.Color4 {
	hit, ok := s.findMinimumFrom(ray, from)
	if !ok {
		return colors.Transparent()
	}

	surface := s.Shapes[hit.Shape].Surface()
	if surface.Roughness > 0 {
		hit.Normal = PerturbNormal(hit.Normal, surface.Roughness, rng)
	}

	base := s.Shapes[hit.Shape].ColorAt(hit.Point)

	residuals := s.collectResiduals(hit, bounces, giDepth, rng)
	if len(residuals) == 0 {
		// fully shadowed: opaque black, distinct from a miss
		return colors.Black()
	}

	shininess, _ := surface.Shininess()
	transparency, _ := surface.Transparency()

	var reflection, refraction colors.Color4
	if bounces > 1 {
		if shininess[0] > 0 || shininess[1] > 0 || shininess[2] > 0 {
			reflRay := geometry.NewReflectionRay(hit, ray)
			reflection = s.trace(reflRay, &hit, bounces-1, giDepth, rng)
		}
		if transparency[0] > 0 || transparency[1] > 0 || transparency[2] > 0 {
			refrRay := geometry.NewRefractionRay(hit, ray, surface.RefractiveIndex)
			refraction = s.trace(refrRay, &hit, bounces-1, giDepth, rng)
		}
	}

	// Composite the albedo before the Lambertian step: incident light
	// multiplies the blended surface response, not the raw base color.
	albedo := composite(base, reflection, refraction, shininess, transparency)

	return lambert(albedo, residuals)
}

// collectResiduals shadow-tests every light source from the hit point
// and, when global-illumination depth remains, folds in one
// cosine-weighted bounce as an extra intensity-1 residual.
func (s *Scene) collectResiduals(hit geometry.Intersection, bounces, giDepth int, rng *rand.Rand) []LightResidual {
	var residuals []LightResidual

	for _, light := range s.Lights {
		shadowRay := geometry.NewRay(hit.Point, light.Direction(hit.Point))
		if _, blocked := s.findMinimumFrom(shadowRay, &hit); blocked {
			continue
		}
		residuals = append(residuals, LightResidual{
			Color:     light.Color(),
			Intensity: light.Intensity(hit.Point),
			Direction: shadowRay.Direction,
			Normal:    hit.Normal,
		})
	}

	if giDepth > 0 {
		dir := SampleCosineHemisphere(hit.Normal, rng)
		bounce := s.trace(geometry.NewRay(hit.Point, dir), &hit, bounces, giDepth-1, rng)
		residuals = append(residuals, LightResidual{
			Color:     bounce.WithAlpha(1),
			Intensity: 1.0,
			Direction: dir,
			Normal:    hit.Normal,
		})
	}

	return residuals
}

// composite blends base, reflection and refraction colors per channel:
// shin*refl + (1-shin)*trans*refr + (1-shin)*(1-trans)*base.
func composite(base, reflection, refraction colors.Color4, shininess, transparency [3]float64) colors.Color4 {
	b := [3]float64{base.R, base.G, base.B}
	rl := [3]float64{reflection.R, reflection.G, reflection.B}
	rr := [3]float64{refraction.R, refraction.G, refraction.B}

	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = shininess[i]*rl[i] +
			(1.0-shininess[i])*transparency[i]*rr[i] +
			(1.0-shininess[i])*(1.0-transparency[i])*b[i]
	}
	return colors.New(out[0], out[1], out[2], base.A)
}

// lambert accumulates every residual light over the composited albedo
// with the Lambertian cosine law. Alpha is 1: the point is lit.
func lambert(albedo colors.Color4, residuals []LightResidual) colors.Color4 {
	var total colors.Color4
	for _, res := range residuals {
		cos := math.Max(res.Normal.Dot(res.Direction), 0.0)
		weight := res.Intensity * cos
		total.R += weight * res.Color.R * albedo.R
		total.G += weight * res.Color.G * albedo.G
		total.B += weight * res.Color.B * albedo.B
	}
	return total.WithAlpha(1.0)
}
