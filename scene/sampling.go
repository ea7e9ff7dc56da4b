package scene

import (
	"math"
	"math/rand"

	"github.com/vikram-vadrevu/raytracer/vectors"
)

// SampleCosineHemisphere draws a cosine-weighted random direction in
// the hemisphere around the unit normal. Directions near the normal
// are favored in proportion to the Lambertian cosine term.
func SampleCosineHemisphere(normal vectors.Vec3, rng *rand.Rand) vectors.Vec3 {
	r1 := rng.Float64()
	r2 := rng.Float64()

	theta := 2.0 * math.Pi * r1
	r := math.Sqrt(r2)

	x := r * math.Cos(theta)
	y := r * math.Sin(theta)
	z := math.Sqrt(1.0 - r2)

	// Tangent frame around the normal: pick an axis not nearly
	// parallel to it, Gram-Schmidt the rest.
	var axis vectors.Vec3
	if math.Abs(normal.X) > 0.1 {
		axis = vectors.Vec3{Y: 1}
	} else {
		axis = vectors.Vec3{X: 1}
	}
	tangent := axis.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)

	return tangent.Scale(x).
		Add(bitangent.Scale(y)).
		Add(normal.Scale(z)).
		Normalize()
}

// maxPerturbAngle bounds the roughness rotation at full roughness.
const maxPerturbAngle = math.Pi / 4

// PerturbNormal rotates the unit normal by a bounded random angle,
// scaled by the surface roughness, around a random axis in the normal's
// tangent plane, then re-normalizes. Roughness 0 is the identity.
func PerturbNormal(normal vectors.Vec3, roughness float64, rng *rand.Rand) vectors.Vec3 {
	if roughness <= 0 {
		return normal
	}

	tangent := normal.Orthogonal()
	axis := tangent.RotateAround(normal, 2.0*math.Pi*rng.Float64())
	angle := roughness * maxPerturbAngle * rng.Float64()

	return normal.RotateAround(axis, angle).Normalize()
}
