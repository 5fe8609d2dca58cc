package geo

import "math"

// Polygon is a closed polygon defined by its vertices in order. The last
// vertex connects back to the first.
type Polygon struct {
	Vertices []Point2D
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point2D) Polygon {
	return Polygon{Vertices: pts}
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// IsEmpty returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// Edge returns the i-th edge as (start, end). Wraps around.
func (p Polygon) Edge(i int) (Point2D, Point2D) {
	n := len(p.Vertices)
	return p.Vertices[i%n], p.Vertices[(i+1)%n]
}

// SignedArea returns the signed area using the shoelace formula.
// Positive for counterclockwise winding, negative for clockwise.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X * p.Vertices[j].Y
		area -= p.Vertices[j].X * p.Vertices[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the polygon.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// Centroid returns the centroid of the polygon.
func (p Polygon) Centroid() Point2D {
	n := len(p.Vertices)
	if n == 0 {
		return Point2D{}
	}
	a := p.SignedArea()
	if n < 3 || math.Abs(a) < 1e-12 {
		// Degenerate: return average.
		sum := Point2D{}
		for _, v := range p.Vertices {
			sum = sum.Add(v)
		}
		return sum.Scale(1.0 / float64(n))
	}
	cx, cy := 0.0, 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := p.Vertices[i].X*p.Vertices[j].Y - p.Vertices[j].X*p.Vertices[i].Y
		cx += (p.Vertices[i].X + p.Vertices[j].X) * cross
		cy += (p.Vertices[i].Y + p.Vertices[j].Y) * cross
	}
	f := 1.0 / (6.0 * a)
	return Point2D{cx * f, cy * f}
}

// BoundingBox returns the axis-aligned bounding box of the vertices.
func (p Polygon) BoundingBox() Rect {
	if len(p.Vertices) == 0 {
		return Rect{}
	}
	minP := p.Vertices[0]
	maxP := p.Vertices[0]
	for _, v := range p.Vertices[1:] {
		minP.X = math.Min(minP.X, v.X)
		minP.Y = math.Min(minP.Y, v.Y)
		maxP.X = math.Max(maxP.X, v.X)
		maxP.Y = math.Max(maxP.Y, v.Y)
	}
	return Rect{Min: minP, Max: maxP}
}

// OnBoundary returns true if pt lies on one of the polygon's edges.
func (p Polygon) OnBoundary(pt Point2D) bool {
	n := len(p.Vertices)
	if n == 1 {
		return p.Vertices[0] == pt
	}
	for i := 0; i < n; i++ {
		a, b := p.Edge(i)
		if OnSegment(pt, a, b) {
			return true
		}
	}
	return false
}

// Contains returns true if the point lies in the closed region of the polygon.
// The interior is decided by ray casting (even-odd rule); points on an edge or
// vertex count as inside. Polygons with fewer than three vertices contain only
// the points of their vertex or segment.
func (p Polygon) Contains(pt Point2D) bool {
	n := len(p.Vertices)
	if n == 0 {
		return false
	}
	if p.OnBoundary(pt) {
		return true
	}
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := p.Vertices[i]
		vj := p.Vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// IntersectsRect returns true if the closed polygon region and the closed
// rectangle share at least one point.
func (p Polygon) IntersectsRect(r Rect) bool {
	n := len(p.Vertices)
	if n == 0 || !p.BoundingBox().Intersects(r) {
		return false
	}
	for _, v := range p.Vertices {
		if r.Contains(v) {
			return true
		}
	}
	corners := r.Corners()
	for _, c := range corners.Vertices {
		if p.Contains(c) {
			return true
		}
	}
	for i := 0; i < n; i++ {
		a, b := p.Edge(i)
		for k := 0; k < 4; k++ {
			c, d := corners.Edge(k)
			if SegmentsIntersect(a, b, c, d) {
				return true
			}
		}
	}
	return false
}
