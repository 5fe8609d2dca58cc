package shape

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caesium-lab/evacenv/pkg/geo"
	"github.com/caesium-lab/evacenv/pkg/jsondoc"
)

func mustCircle(t *testing.T, x, y, r float64) *Circle {
	t.Helper()
	c, err := NewCircle(geo.Pt(x, y), r)
	require.NoError(t, err)
	return c
}

func mustRectangle(t *testing.T, x, y, w, h float64) *Rectangle {
	t.Helper()
	r, err := NewRectangle(geo.Pt(x, y), w, h)
	require.NoError(t, err)
	return r
}

func mustPolygon(t *testing.T, pts ...geo.Point2D) *Polygon {
	t.Helper()
	p, err := NewPolygon(pts)
	require.NoError(t, err)
	return p
}

func square(t *testing.T) *Polygon {
	return mustPolygon(t, geo.Pt(0, 0), geo.Pt(4, 0), geo.Pt(4, 4), geo.Pt(0, 4))
}

func TestParseType(t *testing.T) {
	cases := map[string]Type{
		"circle":    TypeCircle,
		"Rectangle": TypeRectangle,
		"POLYGON":   TypePolygon,
		"":          TypeRectangle,
	}
	for in, want := range cases {
		got, err := ParseType(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	_, err := ParseType("HEXAGON")
	assert.ErrorIs(t, err, ErrUnknownShapeType)
}

func TestCircleContains(t *testing.T) {
	c := mustCircle(t, 0, 0, 5)
	assert.True(t, c.Contains(3, 4), "boundary point at distance == radius")
	assert.False(t, c.Contains(3, 4.0001))
	assert.True(t, c.Contains(0, 0))
}

func TestRectangleContains(t *testing.T) {
	r := mustRectangle(t, 0, 0, 10, 10)
	assert.True(t, r.Contains(10, 10), "inclusive boundary")
	assert.True(t, r.Contains(0, 0))
	assert.False(t, r.Contains(10.01, 5))
	assert.False(t, r.Contains(-0.01, 5))
}

func TestPolygonContains(t *testing.T) {
	p := square(t)
	assert.True(t, p.Contains(2, 2))
	assert.False(t, p.Contains(5, 5))
}

func TestInvalidShapes(t *testing.T) {
	_, err := NewCircle(geo.Pt(0, 0), 0)
	assert.ErrorIs(t, err, ErrInvalidShape)
	_, err = NewRectangle(geo.Pt(0, 0), 1, -1)
	assert.ErrorIs(t, err, ErrInvalidShape)
	_, err = NewPolygon(nil)
	assert.ErrorIs(t, err, ErrInvalidShape)

	single, err := NewPolygon([]geo.Point2D{geo.Pt(1, 1)})
	require.NoError(t, err)
	assert.Len(t, single.Points(), 1)
}

func TestCircleIntersects(t *testing.T) {
	c := mustCircle(t, 0, 0, 5)
	assert.True(t, c.Intersects(-1, -1, 2, 2), "rect inside circle")
	assert.True(t, c.Intersects(-10, -10, 20, 20), "rect enclosing circle")
	assert.True(t, c.Intersects(5, -1, 2, 2), "rect touching circle at (5,0)")
	assert.False(t, c.Intersects(4, 4, 2, 2), "rect beyond the diagonal")
}

func TestRectangleIntersects(t *testing.T) {
	r := mustRectangle(t, 0, 0, 10, 10)
	assert.True(t, r.Intersects(5, 5, 10, 10))
	assert.True(t, r.Intersects(10, 0, 5, 5), "shared edge")
	assert.False(t, r.Intersects(11, 0, 5, 5))
}

func TestPolygonIntersects(t *testing.T) {
	tri := mustPolygon(t, geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(0, 10))
	assert.True(t, tri.Intersects(1, 1, 1, 1))
	assert.True(t, tri.Intersects(5, 5, 1, 1), "touching the hypotenuse")
	assert.False(t, tri.Intersects(6, 6, 1, 1))
}

func TestBounds(t *testing.T) {
	assert.Equal(t, geo.RectFrom(-5, -5, 10, 10), mustCircle(t, 0, 0, 5).Bounds())
	assert.Equal(t, geo.RectFrom(1, 2, 3, 4), mustRectangle(t, 1, 2, 3, 4).Bounds())
	assert.Equal(t, geo.RectFrom(0, 0, 4, 4), square(t).Bounds())
}

func TestPolygonPointsAreCopied(t *testing.T) {
	pts := []geo.Point2D{geo.Pt(0, 0), geo.Pt(1, 0), geo.Pt(0, 1)}
	p := mustPolygon(t, pts...)
	pts[0] = geo.Pt(9, 9)
	got := p.Points()
	got[1] = geo.Pt(7, 7)

	assert.Equal(t, []geo.Point2D{geo.Pt(0, 0), geo.Pt(1, 0), geo.Pt(0, 1)}, p.Points())
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(mustCircle(t, 1, 2, 3), mustCircle(t, 1, 2, 3)))
	assert.False(t, Equal(mustCircle(t, 1, 2, 3), mustCircle(t, 1, 2, 4)))
	assert.False(t, Equal(mustCircle(t, 0, 0, 1), mustRectangle(t, 0, 0, 1, 1)))
	assert.True(t, Equal(square(t), square(t)))
	assert.False(t, Equal(square(t), mustPolygon(t, geo.Pt(0, 0), geo.Pt(4, 0), geo.Pt(4, 4))))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(square(t), nil))
}

func TestJSONRoundTrip(t *testing.T) {
	shapes := []Shape{
		mustCircle(t, 1.5, -2, 3),
		mustRectangle(t, 0, 0, 10, 4.25),
		square(t),
		mustPolygon(t, geo.Pt(1, 1)),
	}
	for _, s := range shapes {
		text, err := jsondoc.Serialize(ToJSON(s))
		require.NoError(t, err)

		obj, err := jsondoc.ParseObject(text)
		require.NoError(t, err)
		back, err := FromJSON(obj)
		require.NoError(t, err)
		assert.True(t, Equal(s, back), "round trip of %s: %s", s.Type(), text)
	}
}

func TestToJSON_CanonicalLayout(t *testing.T) {
	text, err := jsondoc.Serialize(ToJSON(mustRectangle(t, 0, 1, 2, 3)))
	require.NoError(t, err)
	assert.Equal(t, `{"type":"RECTANGLE","bottomLeft":{"x":0,"y":1},"width":2,"height":3}`, string(text))

	text, err = jsondoc.Serialize(ToJSON(mustCircle(t, 0, 0, 5)))
	require.NoError(t, err)
	assert.Equal(t, `{"type":"CIRCLE","center":{"x":0,"y":0},"radius":5}`, string(text))
}

func decode(t *testing.T, text string) (Shape, error) {
	t.Helper()
	obj, err := jsondoc.ParseObject([]byte(text))
	require.NoError(t, err)
	return FromJSON(obj)
}

func TestFromJSON_CaseInsensitiveType(t *testing.T) {
	s, err := decode(t, `{"type": "circle", "center": {"x": 0, "y": 0}, "radius": 2}`)
	require.NoError(t, err)
	assert.Equal(t, TypeCircle, s.Type())
}

func TestFromJSON_DefaultsToRectangle(t *testing.T) {
	s, err := decode(t, `{"bottomLeft": {"x": 1, "y": 1}, "width": 2, "height": 2}`)
	require.NoError(t, err)
	assert.Equal(t, TypeRectangle, s.Type())
	assert.True(t, s.Contains(3, 3))
}

func TestFromJSON_Errors(t *testing.T) {
	_, err := decode(t, `{"type": "HEXAGON"}`)
	assert.ErrorIs(t, err, ErrUnknownShapeType)

	_, err = decode(t, `{"type": "POLYGON", "points": []}`)
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = decode(t, `{"type": "CIRCLE", "center": {"x": 0, "y": 0}, "radius": "5"}`)
	var me *jsondoc.MalformedError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "radius", me.Path)

	_, err = decode(t, `{"type": "POLYGON", "points": [{"x": 0, "y": 0}, {"x": 1}]}`)
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "points[1].y", me.Path)

	_, err = decode(t, `{"type": 3}`)
	assert.ErrorIs(t, err, jsondoc.ErrMalformed)
}

func TestAreaWithin(t *testing.T) {
	assert.InDelta(t, 4.0, AreaWithin(mustRectangle(t, -1, -1, 4, 4), 0, 0, 2, 2), 1e-9, "clipped to the domain")
	assert.InDelta(t, 16.0, AreaWithin(square(t), -10, -10, 20, 20), 1e-9)
	assert.Zero(t, AreaWithin(square(t), 10, 10, 2, 2))

	cw := mustPolygon(t, geo.Pt(0, 0), geo.Pt(0, 4), geo.Pt(4, 4), geo.Pt(4, 0))
	assert.InDelta(t, 8.0, AreaWithin(cw, 0, 0, 2, 10), 1e-9, "clockwise input")

	quarter := AreaWithin(mustCircle(t, 0, 0, 10), 0, 0, 20, 20)
	assert.InDelta(t, math.Pi*100/4, quarter, 1.0)
}

func TestOutlineIsCounterclockwise(t *testing.T) {
	for _, s := range []Shape{
		mustCircle(t, 0, 0, 1),
		mustRectangle(t, 0, 0, 1, 1),
		mustPolygon(t, geo.Pt(0, 0), geo.Pt(0, 4), geo.Pt(4, 0)),
	} {
		assert.Positive(t, Outline(s).SignedArea(), "%s", s.Type())
	}
}
