package yamlcfg

import (
	"fmt"
	"strconv"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// nodeValue converts a YAML node to a cty value. Sequences become tuples and
// mappings become objects; the option converter narrows them later.
func nodeValue(n *yaml.Node) (cty.Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.ScalarNode:
		return scalarValue(n)
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			return cty.EmptyTupleVal, nil
		}
		vals := make([]cty.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return cty.NilVal, err
			}
			vals = append(vals, v)
		}
		return cty.TupleVal(vals), nil
	case yaml.MappingNode:
		if len(n.Content) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return cty.NilVal, err
			}
			attrs[n.Content[i].Value] = v
		}
		return cty.ObjectVal(attrs), nil
	}
	return cty.NilVal, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

func scalarValue(n *yaml.Node) (cty.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return cty.NullVal(cty.DynamicPseudoType), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			var v bool
			if derr := n.Decode(&v); derr != nil {
				return cty.NilVal, fmt.Errorf("line %d: %w", n.Line, derr)
			}
			return cty.BoolVal(v), nil
		}
		return cty.BoolVal(b), nil
	case "!!int", "!!float":
		v, err := cty.ParseNumberVal(n.Value)
		if err != nil {
			var f float64
			if derr := n.Decode(&f); derr != nil {
				return cty.NilVal, fmt.Errorf("line %d: %w", n.Line, derr)
			}
			return cty.NumberFloatVal(f), nil
		}
		return v, nil
	default:
		return cty.StringVal(n.Value), nil
	}
}
