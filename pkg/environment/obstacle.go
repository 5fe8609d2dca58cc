package environment

import (
	"github.com/caesium-lab/evacenv/pkg/jsondoc"
	"github.com/caesium-lab/evacenv/pkg/shape"
)

// Obstacle is an impassable region of a domain.
type Obstacle struct {
	Name        string
	Description string
	Shape       shape.Shape
}

// Equal compares obstacles structurally.
func (o Obstacle) Equal(other Obstacle) bool {
	return o.Name == other.Name &&
		o.Description == other.Description &&
		shape.Equal(o.Shape, other.Shape)
}

// ObstacleFromJSON decodes an obstacle object.
func ObstacleFromJSON(obj *jsondoc.Object) (Obstacle, error) {
	name, description, err := nameAndDescription(obj, "")
	if err != nil {
		return Obstacle{}, err
	}
	shapeObj, err := obj.Object(keyShape)
	if err != nil {
		return Obstacle{}, err
	}
	s, err := shape.FromJSON(shapeObj)
	if err != nil {
		return Obstacle{}, err
	}
	return Obstacle{Name: name, Description: description, Shape: s}, nil
}

// ToJSON encodes the obstacle. Empty name and description are omitted.
func (o Obstacle) ToJSON() *jsondoc.Object {
	obj := jsondoc.NewObject()
	putOptional(obj, keyName, o.Name)
	putOptional(obj, keyDescription, o.Description)
	obj.Set(keyShape, shape.ToJSON(o.Shape))
	return obj
}
