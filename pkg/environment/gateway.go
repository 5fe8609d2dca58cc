package environment

import (
	"fmt"
	"strings"

	"github.com/caesium-lab/evacenv/pkg/jsondoc"
)

// Gateway is a passable connection between two domains. Either endpoint may
// be ExteriorID.
type Gateway struct {
	ID          int32
	Name        string
	Description string
	Domain1     int32
	Domain2     int32
}

// Equal compares gateways by id only.
func (g Gateway) Equal(o Gateway) bool {
	return g.ID == o.ID
}

// Connects reports whether domainID is one of the endpoints.
func (g Gateway) Connects(domainID int32) bool {
	return g.Domain1 == domainID || g.Domain2 == domainID
}

// Other returns the endpoint opposite domainID.
func (g Gateway) Other(domainID int32) (int32, bool) {
	switch domainID {
	case g.Domain1:
		return g.Domain2, true
	case g.Domain2:
		return g.Domain1, true
	default:
		return 0, false
	}
}

// IsExit reports whether the gateway leads to the exterior.
func (g Gateway) IsExit() bool {
	return g.Connects(ExteriorID)
}

func (g Gateway) String() string {
	var b strings.Builder
	b.WriteString("gateway: {\n")
	fmt.Fprintf(&b, "\tid: %d\n", g.ID)
	if g.Name != "" {
		fmt.Fprintf(&b, "\tname: %s\n", g.Name)
	}
	if g.Description != "" {
		fmt.Fprintf(&b, "\tdescription: %s\n", g.Description)
	}
	fmt.Fprintf(&b, "\tdomain1: %d\n", g.Domain1)
	fmt.Fprintf(&b, "\tdomain2: %d\n", g.Domain2)
	b.WriteString("}")
	return b.String()
}

// GatewayFromJSON decodes a gateway object.
func GatewayFromJSON(obj *jsondoc.Object) (Gateway, error) {
	id, err := obj.Int32(keyID)
	if err != nil {
		return Gateway{}, err
	}
	name, description, err := nameAndDescription(obj, "")
	if err != nil {
		return Gateway{}, err
	}
	d1, err := obj.Int32(keyDomain1)
	if err != nil {
		return Gateway{}, err
	}
	d2, err := obj.Int32(keyDomain2)
	if err != nil {
		return Gateway{}, err
	}
	return Gateway{ID: id, Name: name, Description: description, Domain1: d1, Domain2: d2}, nil
}

// ToJSON encodes the gateway. Empty name and description are omitted.
func (g Gateway) ToJSON() *jsondoc.Object {
	obj := jsondoc.NewObject()
	obj.Set(keyID, g.ID)
	putOptional(obj, keyName, g.Name)
	putOptional(obj, keyDescription, g.Description)
	obj.Set(keyDomain1, g.Domain1)
	obj.Set(keyDomain2, g.Domain2)
	return obj
}
