package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dungeon/common"
)

// ResolveMotion moves r by dx then by dy, testing each axis on its own. A
// component that runs into an obstacle is cut short at the obstacle's edge.
// If r starts clear of every obstacle, the result is clear as well.
func ResolveMotion(r common.Rect, dx, dy float64, obstacles []common.Rect) common.Rect {
	r = resolveAxis(r, dx, true, obstacles)
	r = resolveAxis(r, dy, false, obstacles)
	return r
}

func resolveAxis(r common.Rect, d float64, horizontal bool, obstacles []common.Rect) common.Rect {
	if d == 0 {
		return r
	}
	moved := r
	if horizontal {
		moved.X += d
	} else {
		moved.Y += d
	}

	hit := false
	edge := 0.0
	for _, o := range obstacles {
		if !o.Intersects(moved) {
			continue
		}
		var e float64
		switch {
		case horizontal && d > 0:
			e = o.Left() - moved.Width
		case horizontal:
			e = o.Right()
		case d > 0:
			e = o.Top() - moved.Height
		default:
			e = o.Bottom()
		}
		if !hit || (d > 0 && e < edge) || (d < 0 && e > edge) {
			edge = e
		}
		hit = true
	}
	if !hit {
		return moved
	}

	start, end := r.Y, &moved.Y
	if horizontal {
		start, end = r.X, &moved.X
	}
	*end = edge
	// Snapping must never pull back past the start or into another obstacle.
	if (d > 0 && *end < start) || (d < 0 && *end > start) || collides(moved, obstacles) {
		return r
	}
	return moved
}

func collides(r common.Rect, obstacles []common.Rect) bool {
	for _, o := range obstacles {
		if o.Intersects(r) {
			return true
		}
	}
	return false
}

// LineOfSightBlocked reports whether the segment a-b crosses any obstacle.
func LineOfSightBlocked(a, b cp.Vector, obstacles []common.Rect) bool {
	for _, o := range obstacles {
		if o.BB().IntersectsSegment(a, b) {
			return true
		}
	}
	return false
}
