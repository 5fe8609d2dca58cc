package environment

import (
	"fmt"

	"github.com/caesium-lab/evacenv/pkg/geo"
	"github.com/caesium-lab/evacenv/pkg/jsondoc"
)

// Domain is an enclosed rectangular area pedestrians can move in, spanning
// [0, width] x [0, height] in its own coordinates. It owns its obstacles and
// accesses and keeps them in insertion order.
type Domain struct {
	id          int32
	width       float64
	height      float64
	name        string
	description string
	obstacles   []Obstacle
	accesses    []Access
}

// NewDomain creates an empty domain named "domain<id>".
func NewDomain(id int32, width, height float64) *Domain {
	return &Domain{
		id:     id,
		width:  width,
		height: height,
		name:   fmt.Sprintf("domain%d", id),
	}
}

func (d *Domain) ID() int32           { return d.id }
func (d *Domain) Width() float64      { return d.width }
func (d *Domain) Height() float64     { return d.height }
func (d *Domain) Name() string        { return d.name }
func (d *Domain) Description() string { return d.description }

func (d *Domain) SetName(name string)               { d.name = name }
func (d *Domain) SetDescription(description string) { d.description = description }

// Bounds returns the domain rectangle.
func (d *Domain) Bounds() geo.Rect {
	return geo.RectFrom(0, 0, d.width, d.height)
}

// AddObstacle appends an obstacle. Duplicates are kept; an obstacle without a
// shape is refused with ErrMissingShape.
func (d *Domain) AddObstacle(o Obstacle) error {
	if o.Shape == nil {
		return fmt.Errorf("domain %d: obstacle %q: %w", d.id, o.Name, ErrMissingShape)
	}
	d.obstacles = append(d.obstacles, o)
	return nil
}

// AddAccess appends an access. Duplicates are kept; an access without a
// shape is refused with ErrMissingShape.
func (d *Domain) AddAccess(a Access) error {
	if a.Shape == nil {
		return fmt.Errorf("domain %d: access %d: %w", d.id, a.ID, ErrMissingShape)
	}
	d.accesses = append(d.accesses, a)
	return nil
}

// Obstacles returns a copy of the obstacles in insertion order.
func (d *Domain) Obstacles() []Obstacle {
	out := make([]Obstacle, len(d.obstacles))
	copy(out, d.obstacles)
	return out
}

// Accesses returns a copy of the accesses in insertion order.
func (d *Domain) Accesses() []Access {
	out := make([]Access, len(d.accesses))
	copy(out, d.accesses)
	return out
}

// Access returns the first access with the given id.
func (d *Domain) Access(id int32) (Access, bool) {
	for _, a := range d.accesses {
		if a.ID == id {
			return a, true
		}
	}
	return Access{}, false
}

// ObstaclesAt returns the obstacles whose shape contains (x, y).
func (d *Domain) ObstaclesAt(x, y float64) []Obstacle {
	var out []Obstacle
	for _, o := range d.obstacles {
		if o.Shape.Contains(x, y) {
			out = append(out, o)
		}
	}
	return out
}

// AccessesAt returns the accesses whose shape contains (x, y).
func (d *Domain) AccessesAt(x, y float64) []Access {
	var out []Access
	for _, a := range d.accesses {
		if a.Shape.Contains(x, y) {
			out = append(out, a)
		}
	}
	return out
}

// ObstaclesIntersecting returns the obstacles overlapping the given rectangle.
func (d *Domain) ObstaclesIntersecting(left, bottom, width, height float64) []Obstacle {
	var out []Obstacle
	for _, o := range d.obstacles {
		if o.Shape.Intersects(left, bottom, width, height) {
			out = append(out, o)
		}
	}
	return out
}

// IsWalkable reports whether (x, y) is inside the domain and outside every obstacle.
func (d *Domain) IsWalkable(x, y float64) bool {
	if !d.Bounds().Contains(geo.Pt(x, y)) {
		return false
	}
	for _, o := range d.obstacles {
		if o.Shape.Contains(x, y) {
			return false
		}
	}
	return true
}

// Equal compares domains by id only.
func (d *Domain) Equal(o *Domain) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.id == o.id
}

// DomainFromJSON decodes a domain object including its obstacles and accesses.
func DomainFromJSON(obj *jsondoc.Object) (*Domain, error) {
	id, err := obj.Int32(keyID)
	if err != nil {
		return nil, err
	}
	width, err := obj.Float(keyWidth)
	if err != nil {
		return nil, err
	}
	height, err := obj.Float(keyHeight)
	if err != nil {
		return nil, err
	}
	d := NewDomain(id, width, height)

	d.name, d.description, err = nameAndDescription(obj, "")
	if err != nil {
		return nil, err
	}

	obstacles, err := obj.OptionalObjects(keyObstacles)
	if err != nil {
		return nil, err
	}
	for _, o := range obstacles {
		obstacle, err := ObstacleFromJSON(o)
		if err != nil {
			return nil, err
		}
		if err := d.AddObstacle(obstacle); err != nil {
			return nil, fmt.Errorf("%s: %w", o.Path(), err)
		}
	}

	accesses, err := obj.OptionalObjects(keyAccesses)
	if err != nil {
		return nil, err
	}
	for _, a := range accesses {
		access, err := AccessFromJSON(a)
		if err != nil {
			return nil, err
		}
		if err := d.AddAccess(access); err != nil {
			return nil, fmt.Errorf("%s: %w", a.Path(), err)
		}
	}
	return d, nil
}

// ToJSON encodes the domain. Empty name, description, obstacle and access
// lists are omitted.
func (d *Domain) ToJSON() *jsondoc.Object {
	obj := jsondoc.NewObject()
	obj.Set(keyID, d.id)
	putOptional(obj, keyName, d.name)
	putOptional(obj, keyDescription, d.description)
	obj.Set(keyWidth, d.width)
	obj.Set(keyHeight, d.height)
	if len(d.obstacles) > 0 {
		arr := make([]any, 0, len(d.obstacles))
		for _, o := range d.obstacles {
			arr = append(arr, o.ToJSON())
		}
		obj.Set(keyObstacles, arr)
	}
	if len(d.accesses) > 0 {
		arr := make([]any, 0, len(d.accesses))
		for _, a := range d.accesses {
			arr = append(arr, a.ToJSON())
		}
		obj.Set(keyAccesses, arr)
	}
	return obj
}
