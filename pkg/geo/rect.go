package geo

import "math"

// Rect is an axis-aligned rectangle given by its minimum (bottom-left) and
// maximum (top-right) corners. Both bounds are inclusive.
type Rect struct {
	Min Point2D `json:"min"`
	Max Point2D `json:"max"`
}

// RectFrom builds a Rect from its bottom-left corner and dimensions.
func RectFrom(left, bottom, width, height float64) Rect {
	return Rect{
		Min: Point2D{X: left, Y: bottom},
		Max: Point2D{X: left + width, Y: bottom + height},
	}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// IsEmpty returns true if the rectangle has a negative extent on either axis.
func (r Rect) IsEmpty() bool {
	return r.Max.X < r.Min.X || r.Max.Y < r.Min.Y
}

// Contains returns true if pt lies inside r or on its boundary.
func (r Rect) Contains(pt Point2D) bool {
	return pt.X >= r.Min.X && pt.X <= r.Max.X &&
		pt.Y >= r.Min.Y && pt.Y <= r.Max.Y
}

// Intersects returns true if r and o share at least one point. Rectangles
// that only touch along an edge or a corner intersect.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// ClosestPoint returns the point of r nearest to pt.
func (r Rect) ClosestPoint(pt Point2D) Point2D {
	return Point2D{
		X: math.Max(r.Min.X, math.Min(pt.X, r.Max.X)),
		Y: math.Max(r.Min.Y, math.Min(pt.Y, r.Max.Y)),
	}
}

// Corners returns the rectangle outline as a counterclockwise polygon
// starting at the bottom-left corner.
func (r Rect) Corners() Polygon {
	return NewPolygon(
		r.Min,
		Point2D{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		Point2D{X: r.Min.X, Y: r.Max.Y},
	)
}
