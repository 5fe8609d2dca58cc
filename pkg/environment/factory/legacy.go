package factory

import (
	"fmt"

	"github.com/caesium-lab/evacenv/pkg/jsondoc"
	"github.com/caesium-lab/evacenv/pkg/shape"
)

// Member names only found in the flat schema.
const (
	legacyX         = "X"
	legacyY         = "Y"
	legacyTop       = "top"
	legacyShape     = "shape"
	legacyPointsKey = "points"
)

// FromLegacy rewrites a document in the flat obstacle schema into the nested
// one. In the flat schema obstacles carry their geometry directly (type,
// center/top, radius/width/height, points), points use X/Y keys and an
// access shape is a bare point list read as a polygon. The "top" anchor is
// the rectangle's bottom-left corner in the y-up frame used here.
//
// Fields are read through the legacy document, so decode errors point at
// the flat-schema keys. The result is never written back in this form.
func FromLegacy(doc *jsondoc.Object) (*jsondoc.Object, error) {
	domains, err := doc.Objects("domains")
	if err != nil {
		return nil, err
	}
	gateways, err := doc.Array("gateways")
	if err != nil {
		return nil, err
	}

	outDomains := make([]any, 0, len(domains))
	for _, d := range domains {
		od, err := legacyDomain(d)
		if err != nil {
			return nil, err
		}
		outDomains = append(outDomains, od)
	}

	out := jsondoc.NewObject()
	out.Set("domains", outDomains)
	out.Set("gateways", gateways)
	return out, nil
}

func legacyDomain(d *jsondoc.Object) (*jsondoc.Object, error) {
	out := jsondoc.NewObject()
	for _, k := range d.Keys() {
		if k == "obstacles" || k == "accesses" {
			continue
		}
		v, _ := d.Get(k)
		out.Set(k, v)
	}
	// Unnamed legacy domains keep the constructor's default name.
	if !d.Has("name") {
		id, err := d.Int32("id")
		if err != nil {
			return nil, err
		}
		out.Set("name", fmt.Sprintf("domain%d", id))
	}

	obstacles, err := d.OptionalObjects("obstacles")
	if err != nil {
		return nil, err
	}
	arr := make([]any, 0, len(obstacles))
	for _, o := range obstacles {
		oo, err := legacyObstacle(o)
		if err != nil {
			return nil, err
		}
		arr = append(arr, oo)
	}
	out.Set("obstacles", arr)

	accesses, err := d.OptionalObjects("accesses")
	if err != nil {
		return nil, err
	}
	arr = make([]any, 0, len(accesses))
	for _, a := range accesses {
		oa, err := legacyAccess(a)
		if err != nil {
			return nil, err
		}
		arr = append(arr, oa)
	}
	out.Set("accesses", arr)
	return out, nil
}

func legacyObstacle(o *jsondoc.Object) (*jsondoc.Object, error) {
	typeStr, err := o.StringOr(shape.KeyType, "")
	if err != nil {
		return nil, err
	}
	t, err := shape.ParseType(typeStr)
	if err != nil {
		return nil, err
	}

	s := jsondoc.NewObject()
	s.Set(shape.KeyType, string(t))
	switch t {
	case shape.TypeCircle:
		center, err := legacyPointAt(o, shape.KeyCenter)
		if err != nil {
			return nil, err
		}
		radius, err := o.Float(shape.KeyRadius)
		if err != nil {
			return nil, err
		}
		s.Set(shape.KeyCenter, center)
		s.Set(shape.KeyRadius, radius)
	case shape.TypeRectangle:
		corner, err := legacyPointAt(o, legacyTop)
		if err != nil {
			return nil, err
		}
		width, err := o.Float(shape.KeyWidth)
		if err != nil {
			return nil, err
		}
		height, err := o.Float(shape.KeyHeight)
		if err != nil {
			return nil, err
		}
		s.Set(shape.KeyBottomLeft, corner)
		s.Set(shape.KeyWidth, width)
		s.Set(shape.KeyHeight, height)
	case shape.TypePolygon:
		points, err := legacyPoints(o, legacyPointsKey)
		if err != nil {
			return nil, err
		}
		s.Set(shape.KeyPoints, points)
	}

	out := jsondoc.NewObject()
	copyOptional(o, out, "name", "description")
	out.Set(legacyShape, s)
	return out, nil
}

func legacyAccess(a *jsondoc.Object) (*jsondoc.Object, error) {
	id, err := a.Int32("id")
	if err != nil {
		return nil, err
	}
	points, err := legacyPoints(a, legacyShape)
	if err != nil {
		return nil, err
	}
	s := jsondoc.NewObject()
	s.Set(shape.KeyType, string(shape.TypePolygon))
	s.Set(shape.KeyPoints, points)

	out := jsondoc.NewObject()
	out.Set("id", id)
	copyOptional(a, out, "name", "description")
	out.Set(legacyShape, s)
	return out, nil
}

func legacyPointAt(o *jsondoc.Object, key string) (*jsondoc.Object, error) {
	p, err := o.Object(key)
	if err != nil {
		return nil, err
	}
	return legacyPoint(p)
}

func legacyPoint(p *jsondoc.Object) (*jsondoc.Object, error) {
	x, err := p.Float(legacyX)
	if err != nil {
		return nil, err
	}
	y, err := p.Float(legacyY)
	if err != nil {
		return nil, err
	}
	out := jsondoc.NewObject()
	out.Set(shape.KeyX, x)
	out.Set(shape.KeyY, y)
	return out, nil
}

func legacyPoints(o *jsondoc.Object, key string) ([]any, error) {
	objs, err := o.Objects(key)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(objs))
	for _, p := range objs {
		np, err := legacyPoint(p)
		if err != nil {
			return nil, err
		}
		out = append(out, np)
	}
	return out, nil
}

func copyOptional(from, to *jsondoc.Object, keys ...string) {
	for _, k := range keys {
		if v, ok := from.Get(k); ok {
			to.Set(k, v)
		}
	}
}
