package shape

import (
	"fmt"

	"github.com/caesium-lab/evacenv/pkg/geo"
	"github.com/caesium-lab/evacenv/pkg/jsondoc"
)

// JSON member names shared by the shape and point encodings.
const (
	KeyType       = "type"
	KeyCenter     = "center"
	KeyRadius     = "radius"
	KeyBottomLeft = "bottomLeft"
	KeyWidth      = "width"
	KeyHeight     = "height"
	KeyPoints     = "points"
	KeyX          = "x"
	KeyY          = "y"
)

// PointToJSON encodes p as {"x": .., "y": ..}.
func PointToJSON(p geo.Point2D) *jsondoc.Object {
	obj := jsondoc.NewObject()
	obj.Set(KeyX, p.X)
	obj.Set(KeyY, p.Y)
	return obj
}

// PointFromJSON decodes {"x": .., "y": ..}.
func PointFromJSON(obj *jsondoc.Object) (geo.Point2D, error) {
	x, err := obj.Float(KeyX)
	if err != nil {
		return geo.Point2D{}, err
	}
	y, err := obj.Float(KeyY)
	if err != nil {
		return geo.Point2D{}, err
	}
	return geo.Pt(x, y), nil
}

// FromJSON decodes a shape object, dispatching on its "type" member.
func FromJSON(obj *jsondoc.Object) (Shape, error) {
	typeStr, err := obj.StringOr(KeyType, "")
	if err != nil {
		return nil, err
	}
	t, err := ParseType(typeStr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", obj.KeyPath(KeyType), err)
	}

	var s Shape
	switch t {
	case TypeCircle:
		s, err = circleFromJSON(obj)
	case TypeRectangle:
		s, err = rectangleFromJSON(obj)
	case TypePolygon:
		s, err = polygonFromJSON(obj)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func circleFromJSON(obj *jsondoc.Object) (Shape, error) {
	centerObj, err := obj.Object(KeyCenter)
	if err != nil {
		return nil, err
	}
	center, err := PointFromJSON(centerObj)
	if err != nil {
		return nil, err
	}
	radius, err := obj.Float(KeyRadius)
	if err != nil {
		return nil, err
	}
	c, err := NewCircle(center, radius)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", obj.Path(), err)
	}
	return c, nil
}

func rectangleFromJSON(obj *jsondoc.Object) (Shape, error) {
	blObj, err := obj.Object(KeyBottomLeft)
	if err != nil {
		return nil, err
	}
	bl, err := PointFromJSON(blObj)
	if err != nil {
		return nil, err
	}
	width, err := obj.Float(KeyWidth)
	if err != nil {
		return nil, err
	}
	height, err := obj.Float(KeyHeight)
	if err != nil {
		return nil, err
	}
	r, err := NewRectangle(bl, width, height)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", obj.Path(), err)
	}
	return r, nil
}

func polygonFromJSON(obj *jsondoc.Object) (Shape, error) {
	pointObjs, err := obj.Objects(KeyPoints)
	if err != nil {
		return nil, err
	}
	pts := make([]geo.Point2D, 0, len(pointObjs))
	for _, po := range pointObjs {
		p, err := PointFromJSON(po)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	p, err := NewPolygon(pts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", obj.KeyPath(KeyPoints), err)
	}
	return p, nil
}

// ToJSON encodes s with its canonical upper-case type discriminator.
func ToJSON(s Shape) *jsondoc.Object {
	obj := jsondoc.NewObject()
	obj.Set(KeyType, string(s.Type()))
	switch v := s.(type) {
	case *Circle:
		obj.Set(KeyCenter, PointToJSON(v.center))
		obj.Set(KeyRadius, v.radius)
	case *Rectangle:
		obj.Set(KeyBottomLeft, PointToJSON(v.bottomLeft))
		obj.Set(KeyWidth, v.width)
		obj.Set(KeyHeight, v.height)
	case *Polygon:
		pts := make([]any, 0, len(v.poly.Vertices))
		for _, p := range v.poly.Vertices {
			pts = append(pts, PointToJSON(p))
		}
		obj.Set(KeyPoints, pts)
	default:
		panic(fmt.Sprintf("shape: unhandled variant %T", s))
	}
	return obj
}
