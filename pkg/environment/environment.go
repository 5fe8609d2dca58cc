// Package environment models the static physical environment of an
// evacuation: domains (walkable rectangles holding obstacles and accesses)
// linked by gateways, and its JSON document form.
//
// An Environment is built once, usually from a document, and is then meant
// to be read without further mutation. It performs no locking; share it
// between goroutines only after loading has finished.
package environment

import (
	"fmt"
	"maps"
	"slices"

	"github.com/caesium-lab/evacenv/pkg/jsondoc"
)

// Environment owns every domain and gateway, keyed by id.
type Environment struct {
	domains  map[int32]*Domain
	gateways map[int32]Gateway
}

// New returns an environment with no domains or gateways.
func New() *Environment {
	return &Environment{
		domains:  make(map[int32]*Domain),
		gateways: make(map[int32]Gateway),
	}
}

// AddDomain stores d, replacing any domain with the same id. The exterior id
// is rejected with ErrReservedDomainID and a nil domain with ErrNilDomain.
func (e *Environment) AddDomain(d *Domain) error {
	if d == nil {
		return ErrNilDomain
	}
	if d.ID() == ExteriorID {
		return fmt.Errorf("adding domain %d: %w", d.ID(), ErrReservedDomainID)
	}
	e.domains[d.ID()] = d
	return nil
}

// AddGateway stores g, replacing any gateway with the same id, provided its
// endpoints differ and each is either the exterior or a stored domain.
// Otherwise g is not stored and an error wrapping ErrGatewayRejected is
// returned; the environment is left unchanged and the caller may carry on.
func (e *Environment) AddGateway(g Gateway) error {
	if g.Domain1 == g.Domain2 {
		return fmt.Errorf("%w: gateway %d connects domain %d to itself", ErrGatewayRejected, g.ID, g.Domain1)
	}
	for _, id := range []int32{g.Domain1, g.Domain2} {
		if id == ExteriorID {
			continue
		}
		if _, ok := e.domains[id]; !ok {
			return fmt.Errorf("%w: gateway %d references unknown domain %d", ErrGatewayRejected, g.ID, id)
		}
	}
	e.gateways[g.ID] = g
	return nil
}

// Domain returns the domain with the given id.
func (e *Environment) Domain(id int32) (*Domain, bool) {
	d, ok := e.domains[id]
	return d, ok
}

// Gateway returns the gateway with the given id.
func (e *Environment) Gateway(id int32) (Gateway, bool) {
	g, ok := e.gateways[id]
	return g, ok
}

// DomainIDs returns the stored domain ids in ascending order.
func (e *Environment) DomainIDs() []int32 {
	return slices.Sorted(maps.Keys(e.domains))
}

// GatewayIDs returns the stored gateway ids in ascending order.
func (e *Environment) GatewayIDs() []int32 {
	return slices.Sorted(maps.Keys(e.gateways))
}

// Domains returns the domains ordered by id.
func (e *Environment) Domains() []*Domain {
	out := make([]*Domain, 0, len(e.domains))
	for _, id := range e.DomainIDs() {
		out = append(out, e.domains[id])
	}
	return out
}

// Gateways returns the gateways ordered by id.
func (e *Environment) Gateways() []Gateway {
	out := make([]Gateway, 0, len(e.gateways))
	for _, id := range e.GatewayIDs() {
		out = append(out, e.gateways[id])
	}
	return out
}

// GatewaysOf returns the gateways with domainID as an endpoint, ordered by id.
// Passing ExteriorID yields the exits.
func (e *Environment) GatewaysOf(domainID int32) []Gateway {
	var out []Gateway
	for _, g := range e.Gateways() {
		if g.Connects(domainID) {
			out = append(out, g)
		}
	}
	return out
}

// ExitGateways returns the gateways leading to the exterior.
func (e *Environment) ExitGateways() []Gateway {
	return e.GatewaysOf(ExteriorID)
}

// Reachability walks the gateway graph breadth-first from the exterior and
// returns, for every domain that can be evacuated, the minimum number of
// gateways to cross to get out.
func (e *Environment) Reachability() map[int32]int {
	adj := make(map[int32][]int32)
	for _, g := range e.gateways {
		adj[g.Domain1] = append(adj[g.Domain1], g.Domain2)
		adj[g.Domain2] = append(adj[g.Domain2], g.Domain1)
	}

	hops := map[int32]int{ExteriorID: 0}
	queue := []int32{ExteriorID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if _, seen := hops[next]; seen {
				continue
			}
			hops[next] = hops[cur] + 1
			queue = append(queue, next)
		}
	}
	delete(hops, ExteriorID)
	return hops
}

// Unreachable returns, in ascending order, the domains with no gateway path
// to the exterior.
func (e *Environment) Unreachable() []int32 {
	reach := e.Reachability()
	var out []int32
	for _, id := range e.DomainIDs() {
		if _, ok := reach[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// Equal reports whether both environments hold the same domain ids and the
// same gateway ids. Domains and gateways compare by id. Nil environments are
// equal only to each other.
func (e *Environment) Equal(o *Environment) bool {
	if e == nil || o == nil {
		return e == o
	}
	return slices.Equal(e.DomainIDs(), o.DomainIDs()) &&
		slices.Equal(e.GatewayIDs(), o.GatewayIDs())
}

// FromJSON decodes a whole environment document. Domains are decoded and
// stored first, then each gateway is validated against them. Any decode
// failure, reserved domain id or rejected gateway aborts the load.
func FromJSON(obj *jsondoc.Object) (*Environment, error) {
	return decode(obj, func(_ Gateway, err error) error { return err })
}

// decode builds an environment, delegating gateway rejections to onReject.
// A nil return from onReject skips the gateway and continues.
func decode(obj *jsondoc.Object, onReject func(Gateway, error) error) (*Environment, error) {
	domainObjs, err := obj.Objects(keyDomains)
	if err != nil {
		return nil, err
	}
	gatewayObjs, err := obj.Objects(keyGateways)
	if err != nil {
		return nil, err
	}

	env := New()
	for _, do := range domainObjs {
		d, err := DomainFromJSON(do)
		if err != nil {
			return nil, err
		}
		if err := env.AddDomain(d); err != nil {
			return nil, fmt.Errorf("%s: %w", do.Path(), err)
		}
	}
	for _, gobj := range gatewayObjs {
		g, err := GatewayFromJSON(gobj)
		if err != nil {
			return nil, err
		}
		if err := env.AddGateway(g); err != nil {
			if err := onReject(g, fmt.Errorf("%s: %w", gobj.Path(), err)); err != nil {
				return nil, err
			}
		}
	}
	return env, nil
}

// Decode is FromJSON with a caller-chosen policy for rejected gateways:
// onReject sees each rejected gateway with its error and returns nil to skip
// it or an error to abort.
func Decode(obj *jsondoc.Object, onReject func(Gateway, error) error) (*Environment, error) {
	if onReject == nil {
		return FromJSON(obj)
	}
	return decode(obj, onReject)
}

// ToJSON encodes the environment as {"domains": [...], "gateways": [...]},
// each list ordered by id.
func (e *Environment) ToJSON() *jsondoc.Object {
	domains := make([]any, 0, len(e.domains))
	for _, d := range e.Domains() {
		domains = append(domains, d.ToJSON())
	}
	gateways := make([]any, 0, len(e.gateways))
	for _, g := range e.Gateways() {
		gateways = append(gateways, g.ToJSON())
	}

	obj := jsondoc.NewObject()
	obj.Set(keyDomains, domains)
	obj.Set(keyGateways, gateways)
	return obj
}

// JSONSerialized returns the compact JSON text of the environment.
func (e *Environment) JSONSerialized() (string, error) {
	b, err := jsondoc.Serialize(e.ToJSON())
	if err != nil {
		return "", fmt.Errorf("serializing environment: %w", err)
	}
	return string(b), nil
}

// JSONPrettyPrinted returns the JSON text of the environment with one level
// of indent per nesting depth. It only reformats JSONSerialized.
func (e *Environment) JSONPrettyPrinted(indent string) (string, error) {
	compact, err := e.JSONSerialized()
	if err != nil {
		return "", err
	}
	b, err := jsondoc.PrettyPrint([]byte(compact), indent)
	if err != nil {
		return "", fmt.Errorf("pretty printing environment: %w", err)
	}
	return string(b), nil
}
