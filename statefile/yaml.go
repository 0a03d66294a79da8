package statefile

import (
	"fmt"
	"math"

	"github.com/muir/nmutate"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

func UnmarshalYAML(data []byte) (nmutate.State, error) {
	var node yaml.Node
	err := yaml.Unmarshal(data, &node)
	if err != nil {
		return nil, errors.Wrap(err, "yaml")
	}
	root := &node
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nmutate.State{}, nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.Wrapf(ErrNotObject, "yaml top level at line %d", root.Line)
	}
	decoded, err := fromYAML(root, nil)
	if err != nil {
		return nil, err
	}
	return nmutate.State(decoded.(map[string]any)), nil
}

// ParseValue decodes a single YAML value, such as a flow literal
// given on a command line: "4", "[a, b]", "{x: 1}".
func ParseValue(text string) (any, error) {
	var node yaml.Node
	err := yaml.Unmarshal([]byte(text), &node)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %q", text)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	return fromYAML(node.Content[0], nil)
}

func fromYAML(n *yaml.Node, pathToHere []string) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromYAML(n.Alias, pathToHere)
	case yaml.ScalarNode:
		var v any
		err := n.Decode(&v)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d at %v", n.Line, pathToHere)
		}
		return normalizeScalar(v), nil
	case yaml.SequenceNode:
		a := make([]any, len(n.Content))
		for i, item := range n.Content {
			d, err := fromYAML(item, pathToHere)
			if err != nil {
				return nil, err
			}
			a[i] = d
		}
		return a, nil
	case yaml.MappingNode:
		// nodes store maps as alternating key/value in an array
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if key == "<<" {
				merged, err := fromYAML(n.Content[i+1], pathToHere)
				if err != nil {
					return nil, err
				}
				err = mergeInto(m, merged)
				if err != nil {
					return nil, errors.Wrapf(err, "line %d at %v", n.Content[i+1].Line, pathToHere)
				}
				continue
			}
			d, err := fromYAML(n.Content[i+1], combine(pathToHere, key))
			if err != nil {
				return nil, err
			}
			m[key] = d
		}
		return m, nil
	default:
		return nil, errors.Errorf("unexpected yaml node kind %d at line %d", n.Kind, n.Line)
	}
}

// mergeInto adds the keys of a "<<" value to m.  The value is a map or a
// list of maps; keys already in m and keys from earlier maps win.
func mergeInto(m map[string]any, merged any) error {
	switch t := merged.(type) {
	case map[string]any:
		for k, v := range t {
			if _, exists := m[k]; !exists {
				m[k] = v
			}
		}
	case []any:
		for _, item := range t {
			mm, ok := item.(map[string]any)
			if !ok {
				return errors.Errorf("merge list holds a %T, not a map", item)
			}
			_ = mergeInto(m, mm)
		}
	default:
		return errors.Errorf("merge value is a %T, not a map or list of maps", merged)
	}
	return nil
}

func normalizeScalar(v any) any {
	switch t := v.(type) {
	case int64:
		return int(t)
	case uint64:
		if t > math.MaxInt {
			return t
		}
		return int(t)
	case float64:
		return t
	case int, string, bool, nil:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// MarshalYAML encodes state; yaml.v3 sorts map keys.
func MarshalYAML(state nmutate.State) ([]byte, error) {
	byts, err := yaml.Marshal(map[string]any(state))
	if err != nil {
		return nil, errors.Wrap(err, "yaml")
	}
	return byts, nil
}
