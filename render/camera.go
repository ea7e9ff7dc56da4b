package render

import (
	"math"
	"math/rand"

	"github.com/vikram-vadrevu/raytracer/geometry"
	"github.com/vikram-vadrevu/raytracer/vectors"
)

// Projection selects how pixel coordinates map to primary rays.
type Projection int

const (
	Flat Projection = iota
	Fisheye
	Panoramic
)

// DepthOfField holds the thin-lens parameters. LensRadius is the
// aperture of the jitter disk; FocusDistance is where rays reconverge.
type DepthOfField struct {
	FocusDistance float64
	LensRadius    float64
}

// Camera holds the viewing state assembled by the scene loader.
// It is mutated during loading and read-only during rendering.
type Camera struct {
	Width, Height int
	Eye           vectors.Vec3
	Forward       vectors.Vec3
	Up            vectors.Vec3
	Projection    Projection
	Exposure      *float64
	DOF           *DepthOfField
}

// NewCamera returns a camera looking down -Z from the origin.
func NewCamera(width, height int) Camera {
	return Camera{
		Width:   width,
		Height:  height,
		Forward: vectors.Vec3{Z: -1},
		Up:      vectors.Vec3{Y: 1},
	}
}

// basis returns the orthonormal frame (forward kept as-is for flat
// projection scaling, right and up unit and mutually orthogonal).
func (c Camera) basis() (forward, right, up vectors.Vec3) {
	forward = c.Forward
	right = forward.Cross(c.Up.Normalize()).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

// PrimaryRay maps a pixel coordinate (fractional for antialiasing
// jitter) to a primary ray. Fisheye samples outside the unit disk come
// back as the NoRay sentinel. The RNG drives depth-of-field jitter and
// may be nil when the camera has none.
func (c Camera) PrimaryRay(px, py float64, rng *rand.Rand) geometry.Ray {
	w := float64(c.Width)
	h := float64(c.Height)
	scale := math.Max(w, h)

	sx := (2.0*px - w) / scale
	sy := (h - 2.0*py) / scale

	forward, right, up := c.basis()

	switch c.Projection {
	case Fisheye:
		r2 := sx*sx + sy*sy
		if r2 > 1.0 {
			return geometry.NoRay()
		}
		dir := forward.Normalize().Scale(math.Sqrt(1.0 - r2)).
			Add(right.Scale(sx)).
			Add(up.Scale(sy))
		return geometry.NewRay(c.Eye, dir.Normalize())

	case Panoramic:
		theta := (2.0*px - w) / w * math.Pi
		phi := (h - 2.0*py) / h * (math.Pi / 2.0)
		dir := forward.Normalize().Scale(math.Cos(phi) * math.Cos(theta)).
			Add(right.Scale(math.Cos(phi) * math.Sin(theta))).
			Add(up.Scale(math.Sin(phi)))
		return geometry.NewRay(c.Eye, dir.Normalize())

	default:
		dir := forward.
			Add(right.Scale(sx)).
			Add(up.Scale(sy)).
			Normalize()
		if c.DOF != nil && rng != nil {
			return c.lensRay(dir, right, up, rng)
		}
		return geometry.NewRay(c.Eye, dir)
	}
}

// lensRay jitters the eye within the aperture disk and re-aims at the
// focal point of the un-jittered ray, which is what defocuses
// everything off the focal plane.
func (c Camera) lensRay(dir, right, up vectors.Vec3, rng *rand.Rand) geometry.Ray {
	r := c.DOF.LensRadius * math.Sqrt(rng.Float64())
	theta := 2.0 * math.Pi * rng.Float64()
	offset := right.Scale(r * math.Cos(theta)).Add(up.Scale(r * math.Sin(theta)))

	focal := c.Eye.Add(dir.Scale(c.DOF.FocusDistance))
	origin := c.Eye.Add(offset)
	return geometry.NewRay(origin, focal.Sub(origin).Normalize())
}
