package jsondoc

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromYAML reads a YAML document into the same tree Parse produces. Mapping
// order is preserved and every numeric scalar becomes a float64. Merge keys
// ("<<: *base") are expanded; keys written in the mapping win over merged ones.
func FromYAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: empty YAML document", ErrParse)
	}
	return fromNode(root.Content[0])
}

func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		obj := NewObject()
		var merged []*Object
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: line %d: mapping keys must be scalars", ErrParse, k.Line)
			}
			if k.ShortTag() == "!!merge" {
				srcs, err := mergeSources(v)
				if err != nil {
					return nil, err
				}
				merged = append(merged, srcs...)
				continue
			}
			val, err := fromNode(v)
			if err != nil {
				return nil, err
			}
			obj.Set(k.Value, val)
		}
		// Earlier merge sources take precedence over later ones.
		for _, src := range merged {
			for _, key := range src.Keys() {
				if obj.Has(key) {
					continue
				}
				val, _ := src.Get(key)
				obj.Set(key, val)
			}
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.ScalarNode:
		return fromScalar(n)
	default:
		return nil, fmt.Errorf("%w: line %d: unsupported YAML node", ErrParse, n.Line)
	}
}

// mergeSources resolves the value of a merge key: a mapping, an alias to
// one, or a sequence of those.
func mergeSources(n *yaml.Node) ([]*Object, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.MappingNode:
		val, err := fromNode(n)
		if err != nil {
			return nil, err
		}
		return []*Object{val.(*Object)}, nil
	case yaml.SequenceNode:
		var out []*Object
		for _, c := range n.Content {
			if c.Kind == yaml.SequenceNode {
				return nil, fmt.Errorf("%w: line %d: merge sequence items must be mappings", ErrParse, c.Line)
			}
			srcs, err := mergeSources(c)
			if err != nil {
				return nil, err
			}
			out = append(out, srcs...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: line %d: merge value must be a mapping", ErrParse, n.Line)
	}
}

func fromScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, n.Line, err)
		}
		return b, nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, n.Line, err)
		}
		return f, nil
	default:
		return n.Value, nil
	}
}
