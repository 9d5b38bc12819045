package common

import "github.com/jakecoffman/cp"

// Rect is an axis-aligned rectangle in screen pixels. X/Y is the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectAround returns a w×h rectangle centered on c.
func RectAround(c cp.Vector, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// Touch is the overlap below which two rectangles count as merely touching.
// It absorbs the rounding left behind when a mover is snapped to an edge.
const Touch = 1e-6

// Intersects reports whether the two rectangles overlap. Rectangles that only
// share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width-Touch &&
		r.X+r.Width > other.X+Touch &&
		r.Y < other.Y+other.Height-Touch &&
		r.Y+r.Height > other.Y+Touch
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Offset returns the rectangle translated by v.
func (r Rect) Offset(v cp.Vector) Rect {
	r.X += v.X
	r.Y += v.Y
	return r
}

// BB converts the rectangle to a chipmunk bounding box for segment queries.
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
}
