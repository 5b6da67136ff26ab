// Package dirty provides dirty region tracking for incremental painting.
// It tracks which pixel rectangles of a surface need to be repainted and
// coalesces overlapping or adjacent rectangles so a paint pass touches each
// pixel at most a few times.
package dirty

import "image"

// Region is a rectangle of the surface that needs repainting, in the
// surface's local pixel coordinates.
type Region = image.Rectangle

// Band returns the region exposed at the leading edge after the content of
// bounds moved vertically by dy pixels. Content moving up (dy < 0) exposes
// the bottom; content moving down (dy > 0) exposes the top. A shift of at
// least the full height exposes everything.
func Band(bounds Region, dy int) Region {
	switch {
	case dy == 0 || bounds.Empty():
		return Region{}
	case abs(dy) >= bounds.Dy():
		return bounds
	case dy < 0:
		return image.Rect(bounds.Min.X, bounds.Max.Y+dy, bounds.Max.X, bounds.Max.Y)
	default:
		return image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Min.Y+dy)
	}
}

// Adjacent returns true if two regions share an edge along its full length,
// so their union adds no pixels that neither covers.
func Adjacent(a, b Region) bool {
	if a.Min.X == b.Min.X && a.Max.X == b.Max.X {
		if a.Max.Y == b.Min.Y || b.Max.Y == a.Min.Y {
			return true
		}
	}
	if a.Min.Y == b.Min.Y && a.Max.Y == b.Max.Y {
		if a.Max.X == b.Min.X || b.Max.X == a.Min.X {
			return true
		}
	}
	return false
}

// Merge combines two regions into their bounding rectangle.
// Returns false if the regions neither overlap nor touch.
func Merge(a, b Region) (Region, bool) {
	if a.Empty() {
		return b, !b.Empty()
	}
	if b.Empty() {
		return a, true
	}
	if !a.Overlaps(b) && !Adjacent(a, b) {
		return Region{}, false
	}
	return a.Union(b), true
}

// Area returns the number of pixels covered by r.
func Area(r Region) int {
	if r.Empty() {
		return 0
	}
	return r.Dx() * r.Dy()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
