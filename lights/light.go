package lights

import (
	"github.com/vikram-vadrevu/raytracer/colors"
	"github.com/vikram-vadrevu/raytracer/vectors"
)

// Source is a scene light. Direction returns the unit vector from the
// given point toward the light; Intensity its strength at that point.
type Source interface {
	Direction(from vectors.Vec3) vectors.Vec3
	Color() colors.Color4
	Intensity(from vectors.Vec3) float64
}

// Sun is a directional light at infinite distance with constant
// intensity.
type Sun struct {
	direction vectors.Vec3
	color     colors.Color4
}

func NewSun(direction vectors.Vec3, color colors.Color4) *Sun {
	return &Sun{direction: direction.Normalize(), color: color}
}

func (s *Sun) Direction(vectors.Vec3) vectors.Vec3 {
	return s.direction
}

func (s *Sun) Color() colors.Color4 {
	return s.color
}

func (s *Sun) Intensity(vectors.Vec3) float64 {
	return 1.0
}

// Bulb is a point light whose intensity falls off with the inverse
// square of the distance.
type Bulb struct {
	position vectors.Vec3
	color    colors.Color4
}

func NewBulb(position vectors.Vec3, color colors.Color4) *Bulb {
	return &Bulb{position: position, color: color}
}

func (b *Bulb) Direction(from vectors.Vec3) vectors.Vec3 {
	return b.position.Sub(from).Normalize()
}

func (b *Bulb) Color() colors.Color4 {
	return b.color
}

func (b *Bulb) Intensity(from vectors.Vec3) float64 {
	d := vectors.Distance(b.position, from)
	return 1.0 / (d * d)
}

// Position returns the bulb's location.
func (b *Bulb) Position() vectors.Vec3 {
	return b.position
}
