package geo

import "math"

// epsilon absorbs rounding in orientation tests so that points computed on a
// segment still register as lying on it.
const epsilon = 1e-9

// orientation returns the sign of the turn a→b→c: 1 for counterclockwise,
// -1 for clockwise and 0 for collinear.
func orientation(a, b, c Point2D) int {
	v := b.Sub(a).Cross(c.Sub(a))
	scale := math.Max(1, math.Max(b.Sub(a).Length(), c.Sub(a).Length()))
	switch {
	case v > epsilon*scale:
		return 1
	case v < -epsilon*scale:
		return -1
	default:
		return 0
	}
}

// withinBox reports whether p lies in the bounding box of segment a→b.
func withinBox(p, a, b Point2D) bool {
	return p.X >= math.Min(a.X, b.X)-epsilon && p.X <= math.Max(a.X, b.X)+epsilon &&
		p.Y >= math.Min(a.Y, b.Y)-epsilon && p.Y <= math.Max(a.Y, b.Y)+epsilon
}

// OnSegment returns true if p lies on the closed segment a→b.
func OnSegment(p, a, b Point2D) bool {
	return orientation(a, b, p) == 0 && withinBox(p, a, b)
}

// SegmentsIntersect returns true if the closed segments a1→a2 and b1→b2 share
// at least one point, including touching endpoints and collinear overlap.
func SegmentsIntersect(a1, a2, b1, b2 Point2D) bool {
	o1 := orientation(a1, a2, b1)
	o2 := orientation(a1, a2, b2)
	o3 := orientation(b1, b2, a1)
	o4 := orientation(b1, b2, a2)

	if o1 != o2 && o3 != o4 {
		return true
	}
	switch {
	case o1 == 0 && withinBox(b1, a1, a2):
		return true
	case o2 == 0 && withinBox(b2, a1, a2):
		return true
	case o3 == 0 && withinBox(a1, b1, b2):
		return true
	case o4 == 0 && withinBox(a2, b1, b2):
		return true
	}
	return false
}
