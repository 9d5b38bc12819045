package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Direction returns the unit vector pointing from a to b, or the zero vector
// when the points coincide.
func Direction(a, b cp.Vector) cp.Vector {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return cp.Vector{}
	}
	return d.Mult(1 / l)
}

// Angle returns the heading of v in degrees with y pointing down the screen,
// so that 0 is right and 90 is up.
func Angle(v cp.Vector) float64 {
	return math.Atan2(-v.Y, v.X) * 180 / math.Pi
}
