package colors

import "math"

// ApplyExposure tone-maps the color channels with an exponential
// exposure curve, 1 - e^(-c*exposure). Alpha passes through.
func ApplyExposure(c Color4, exposure float64) Color4 {
	return Color4{
		R: 1.0 - math.Exp(-c.R*exposure),
		G: 1.0 - math.Exp(-c.G*exposure),
		B: 1.0 - math.Exp(-c.B*exposure),
		A: c.A,
	}
}

// EncodeSRGB gamma-encodes the linear color channels for display.
// Alpha passes through unmodified.
func EncodeSRGB(c Color4) Color4 {
	return Color4{
		R: LinearToSRGB(c.R),
		G: LinearToSRGB(c.G),
		B: LinearToSRGB(c.B),
		A: c.A,
	}
}
