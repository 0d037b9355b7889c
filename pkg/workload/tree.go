package workload

import (
	"bytes"
	"encoding/json"

	"github.com/elliotchance/orderedmap"
	"gopkg.in/yaml.v3"
)

// Tree is a string-keyed map that remembers insertion order.
// Values are strings, uint32, []any and *Tree.
type Tree struct {
	m *orderedmap.OrderedMap
}

// NewTree creates an empty tree
func NewTree() *Tree {
	return &Tree{m: orderedmap.NewOrderedMap()}
}

// Set adds or replaces key. A replaced key keeps its position.
func (t *Tree) Set(key string, value any) {
	t.m.Set(key, value)
}

// Get returns the value stored under key
func (t *Tree) Get(key string) (any, bool) {
	return t.m.Get(key)
}

// Len returns the number of keys
func (t *Tree) Len() int {
	return t.m.Len()
}

// Keys returns the keys in insertion order
func (t *Tree) Keys() []string {
	keys := make([]string, 0, t.m.Len())
	for el := t.m.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Key.(string))
	}
	return keys
}

// MarshalJSON writes the keys in insertion order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for el := t.m.Front(); el != nil; el = el.Next() {
		if el != t.m.Front() {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(el.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(el.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML returns a mapping node with the keys in insertion order.
func (t *Tree) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for el := t.m.Front(); el != nil; el = el.Next() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: el.Key.(string)}
		value := &yaml.Node{}
		if err := value.Encode(el.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// Plain converts the tree into nested Go maps and slices, dropping order.
func (t *Tree) Plain() map[string]any {
	out := make(map[string]any, t.m.Len())
	for el := t.m.Front(); el != nil; el = el.Next() {
		out[el.Key.(string)] = plainValue(el.Value)
	}
	return out
}

func plainValue(value any) any {
	switch v := value.(type) {
	case *Tree:
		return v.Plain()
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plainValue(item)
		}
		return out
	default:
		return v
	}
}

func stringList(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// Canonical re-projects the document under its serialized field names.
func (d *Document) Canonical() *Tree {
	t := NewTree()
	t.Set("version", d.Version)
	t.Set("workload", d.Workload.canonical())
	return t
}

func (c *Container) canonical() *Tree {
	t := NewTree()
	t.Set("kind", c.Kind().CanonicalName())
	t.Set("port", string(c.Port))
	t.Set("name", c.Name)
	t.Set("environment", stringList(c.Environment))
	t.Set("network", stringList(c.Network))
	t.Set("registry", string(c.Registry))
	t.Set("image", c.Image)
	return t
}

func (n *Network) canonical() *Tree {
	t := NewTree()
	t.Set("kind", n.Kind().CanonicalName())
	t.Set("name", n.Name)
	t.Set("allowService", stringList(n.AllowService))
	t.Set("egress", canonicalRules(n.Egress))
	t.Set("ingress", canonicalRules(n.Ingress))
	return t
}

func canonicalRules(entries []RuleEntry) []any {
	out := make([]any, len(entries))
	for i, entry := range entries {
		t := NewTree()
		for _, ar := range entry {
			rule := NewTree()
			rule.Set("mask", ar.Rule.Mask)
			rule.Set("ports", stringList(ar.Rule.Ports))
			t.Set(ar.Address, rule)
		}
		out[i] = t
	}
	return out
}
