package lights

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/vikram-vadrevu/raytracer/colors"
	"github.com/vikram-vadrevu/raytracer/vectors"
)

// SunAt builds a directional sun pointing toward the real sun's
// position at the given instant, in Earth-centered Earth-fixed
// coordinates (+Z through the north pole, +X through the prime
// meridian). Scenes laid out in ECEF get physically plausible lighting
// for that moment.
func SunAt(t time.Time, color colors.Color4) *Sun {
	return NewSun(sunDirectionECEF(t), color)
}

func sunDirectionECEF(t time.Time) vectors.Vec3 {
	jd := julian.TimeToJD(t.UTC())

	// Apparent RA/Dec of the Sun.
	ra, dec := solar.ApparentEquatorial(jd)

	// Unit vector in Earth-centered inertial coordinates.
	x := dec.Cos() * ra.Cos()
	y := dec.Cos() * ra.Sin()
	z := dec.Sin()

	// Rotate ECI into ECEF using Greenwich apparent sidereal time.
	gmst := sidereal.Apparent0UT(jd)
	cosG := gmst.Angle().Cos()
	sinG := gmst.Angle().Sin()

	return vectors.Vec3{
		X: x*cosG + y*sinG,
		Y: -x*sinG + y*cosG,
		Z: z,
	}
}
