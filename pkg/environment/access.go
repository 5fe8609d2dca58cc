package environment

import (
	"github.com/caesium-lab/evacenv/pkg/jsondoc"
	"github.com/caesium-lab/evacenv/pkg/shape"
)

// Access is the physical opening of a gateway inside one domain: the region
// whose crossing moves a pedestrian to the domain on the other side. An
// access shares its id with the gateway it realises.
type Access struct {
	ID          int32
	Name        string
	Description string
	Shape       shape.Shape
}

// Equal compares accesses by id only.
func (a Access) Equal(o Access) bool {
	return a.ID == o.ID
}

// AccessFromJSON decodes an access object.
func AccessFromJSON(obj *jsondoc.Object) (Access, error) {
	id, err := obj.Int32(keyID)
	if err != nil {
		return Access{}, err
	}
	name, description, err := nameAndDescription(obj, "")
	if err != nil {
		return Access{}, err
	}
	shapeObj, err := obj.Object(keyShape)
	if err != nil {
		return Access{}, err
	}
	s, err := shape.FromJSON(shapeObj)
	if err != nil {
		return Access{}, err
	}
	return Access{ID: id, Name: name, Description: description, Shape: s}, nil
}

// ToJSON encodes the access. Empty name and description are omitted.
func (a Access) ToJSON() *jsondoc.Object {
	obj := jsondoc.NewObject()
	obj.Set(keyID, a.ID)
	putOptional(obj, keyName, a.Name)
	putOptional(obj, keyDescription, a.Description)
	obj.Set(keyShape, shape.ToJSON(a.Shape))
	return obj
}

func nameAndDescription(obj *jsondoc.Object, defName string) (string, string, error) {
	name, err := obj.StringOr(keyName, defName)
	if err != nil {
		return "", "", err
	}
	description, err := obj.StringOr(keyDescription, "")
	if err != nil {
		return "", "", err
	}
	return name, description, nil
}

func putOptional(obj *jsondoc.Object, key, value string) {
	if value != "" {
		obj.Set(key, value)
	}
}
