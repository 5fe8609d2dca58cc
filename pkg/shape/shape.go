// Package shape implements the closed set of planar shapes that bound
// obstacles and accesses: circles, axis-aligned rectangles and polygons.
//
// Shape is sealed: only the variants in this package implement it, so a type
// switch over *Circle, *Rectangle and *Polygon is exhaustive.
package shape

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/caesium-lab/evacenv/pkg/geo"
)

var (
	// ErrUnknownShapeType is returned for an unrecognized type discriminator.
	ErrUnknownShapeType = errors.New("unknown shape type")
	// ErrInvalidShape is returned when a shape's invariants do not hold.
	ErrInvalidShape = errors.New("invalid shape")
)

// Type discriminates the shape variants.
type Type string

const (
	TypeCircle    Type = "CIRCLE"
	TypeRectangle Type = "RECTANGLE"
	TypePolygon   Type = "POLYGON"
)

// ParseType resolves a type discriminator case-insensitively. An empty
// string selects TypeRectangle, the default of the older schema.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case "":
		return TypeRectangle, nil
	case TypeCircle, TypeRectangle, TypePolygon:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownShapeType, s)
	}
}

// Shape is an immutable closed planar region.
type Shape interface {
	// Type returns the variant discriminator.
	Type() Type
	// Contains reports whether (x, y) lies in the closed region.
	Contains(x, y float64) bool
	// Intersects reports whether the region shares at least one point with
	// the axis-aligned rectangle anchored at (left, bottom).
	Intersects(left, bottom, width, height float64) bool
	// Bounds returns the axis-aligned bounding box.
	Bounds() geo.Rect

	sealed()
}

// Circle is a disc given by its center and radius.
type Circle struct {
	center geo.Point2D
	radius float64
}

// NewCircle builds a circle. The radius must be positive.
func NewCircle(center geo.Point2D, radius float64) (*Circle, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: circle radius must be > 0, got %v", ErrInvalidShape, radius)
	}
	return &Circle{center: center, radius: radius}, nil
}

func (c *Circle) Type() Type          { return TypeCircle }
func (c *Circle) Center() geo.Point2D { return c.center }
func (c *Circle) Radius() float64     { return c.radius }
func (c *Circle) sealed()             {}

func (c *Circle) Contains(x, y float64) bool {
	return c.center.DistanceSq(geo.Pt(x, y)) <= c.radius*c.radius
}

func (c *Circle) Intersects(left, bottom, width, height float64) bool {
	r := geo.RectFrom(left, bottom, width, height)
	if r.IsEmpty() {
		return false
	}
	closest := r.ClosestPoint(c.center)
	return c.center.DistanceSq(closest) <= c.radius*c.radius
}

func (c *Circle) Bounds() geo.Rect {
	return geo.RectFrom(c.center.X-c.radius, c.center.Y-c.radius, 2*c.radius, 2*c.radius)
}

// Rectangle is an axis-aligned rectangle anchored at its bottom-left corner.
type Rectangle struct {
	bottomLeft geo.Point2D
	width      float64
	height     float64
}

// NewRectangle builds a rectangle. Width and height must be positive.
func NewRectangle(bottomLeft geo.Point2D, width, height float64) (*Rectangle, error) {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return nil, fmt.Errorf("%w: rectangle width and height must be > 0, got %vx%v", ErrInvalidShape, width, height)
	}
	return &Rectangle{bottomLeft: bottomLeft, width: width, height: height}, nil
}

func (r *Rectangle) Type() Type              { return TypeRectangle }
func (r *Rectangle) BottomLeft() geo.Point2D { return r.bottomLeft }
func (r *Rectangle) Width() float64          { return r.width }
func (r *Rectangle) Height() float64         { return r.height }
func (r *Rectangle) sealed()                 {}

func (r *Rectangle) Bounds() geo.Rect {
	return geo.RectFrom(r.bottomLeft.X, r.bottomLeft.Y, r.width, r.height)
}

func (r *Rectangle) Contains(x, y float64) bool {
	return r.Bounds().Contains(geo.Pt(x, y))
}

func (r *Rectangle) Intersects(left, bottom, width, height float64) bool {
	return r.Bounds().Intersects(geo.RectFrom(left, bottom, width, height))
}

// Polygon is a closed polygon; the last point connects back to the first.
type Polygon struct {
	poly geo.Polygon
}

// NewPolygon builds a polygon from at least one point. Fewer than three points
// are accepted and behave as a point or a segment.
func NewPolygon(points []geo.Point2D) (*Polygon, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: polygon needs at least one point", ErrInvalidShape)
	}
	pts := make([]geo.Point2D, len(points))
	copy(pts, points)
	return &Polygon{poly: geo.NewPolygon(pts...)}, nil
}

func (p *Polygon) Type() Type { return TypePolygon }
func (p *Polygon) sealed()    {}

// Points returns a copy of the vertices in order.
func (p *Polygon) Points() []geo.Point2D {
	out := make([]geo.Point2D, len(p.poly.Vertices))
	copy(out, p.poly.Vertices)
	return out
}

func (p *Polygon) Contains(x, y float64) bool {
	return p.poly.Contains(geo.Pt(x, y))
}

func (p *Polygon) Intersects(left, bottom, width, height float64) bool {
	return p.poly.IntersectsRect(geo.RectFrom(left, bottom, width, height))
}

func (p *Polygon) Bounds() geo.Rect {
	return p.poly.BoundingBox()
}

// Equal reports structural equality of two shapes. Nil shapes are equal only
// to each other.
func Equal(a, b Shape) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Circle:
		y, ok := b.(*Circle)
		return ok && *x == *y
	case *Rectangle:
		y, ok := b.(*Rectangle)
		return ok && *x == *y
	case *Polygon:
		y, ok := b.(*Polygon)
		if !ok || len(x.poly.Vertices) != len(y.poly.Vertices) {
			return false
		}
		for i := range x.poly.Vertices {
			if x.poly.Vertices[i] != y.poly.Vertices[i] {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("shape: unhandled variant %T", a))
	}
}

// Outline returns a polygon tracing the shape's boundary counterclockwise.
// Circles are approximated with geo.CircleSegments vertices.
func Outline(s Shape) geo.Polygon {
	switch x := s.(type) {
	case *Circle:
		return geo.ApproximateCircle(x.center, x.radius, geo.CircleSegments)
	case *Rectangle:
		return x.Bounds().Corners()
	case *Polygon:
		out := geo.NewPolygon(x.Points()...)
		if out.SignedArea() < 0 {
			slices.Reverse(out.Vertices)
		}
		return out
	default:
		panic(fmt.Sprintf("shape: unhandled variant %T", s))
	}
}

// AreaWithin returns the area of the part of s lying inside the axis-aligned
// rectangle anchored at (left, bottom).
func AreaWithin(s Shape, left, bottom, width, height float64) float64 {
	return geo.ClipToRect(Outline(s), geo.RectFrom(left, bottom, width, height)).Area()
}
