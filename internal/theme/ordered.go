package theme

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"

	"gopkg.in/yaml.v3"
)

// OrderedMap is a string-keyed mapping that remembers insertion order.
//
// Theme documents are authored as ordered mappings and every rendered output
// follows that order, so plain Go maps cannot hold tokens. The zero value is
// an empty map ready for Set.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrderedMap builds a map from alternating key/value pairs.
func NewOrderedMap[V any](pairs ...Pair[V]) OrderedMap[V] {
	var m OrderedMap[V]
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// Pair is a single key/value entry of an OrderedMap.
type Pair[V any] struct {
	Key   string
	Value V
}

// P is shorthand for constructing a Pair.
func P[V any](key string, value V) Pair[V] {
	return Pair[V]{Key: key, Value: value}
}

// Set inserts or replaces a value. Replacing keeps the original position.
func (m *OrderedMap[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m OrderedMap[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Len returns the number of entries.
func (m OrderedMap[V]) Len() int {
	return len(m.keys)
}

// IsZero reports whether the map is empty. yaml.v3 uses it for omitempty.
func (m OrderedMap[V]) IsZero() bool {
	return len(m.keys) == 0
}

// Keys returns a copy of the keys in insertion order.
func (m OrderedMap[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All iterates entries in insertion order.
func (m OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy that can be modified independently.
func (m OrderedMap[V]) Clone() OrderedMap[V] {
	var out OrderedMap[V]
	for k, v := range m.All() {
		out.Set(k, v)
	}
	return out
}

// MarshalJSON encodes the map as a JSON object in insertion order. Keys and
// values are written without HTML escaping since token values hold CSS.
func (m OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(k); err != nil {
			return nil, err
		}
		trimNewline(&buf)
		buf.WriteByte(':')
		if err := enc.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("marshal %q: %w", k, err)
		}
		trimNewline(&buf)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// trimNewline drops the newline json.Encoder appends after each value.
func trimNewline(buf *bytes.Buffer) {
	if n := buf.Len(); n > 0 && buf.Bytes()[n-1] == '\n' {
		buf.Truncate(n - 1)
	}
}

// MarshalYAML encodes the map as a YAML mapping node in insertion order.
func (m OrderedMap[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		var val yaml.Node
		if err := val.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML (or JSON) mapping keeping document order.
// Duplicate keys are rejected.
func (m *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	var out OrderedMap[V]
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if out.Has(keyNode.Value) {
			return fmt.Errorf("line %d: duplicate key %q", keyNode.Line, keyNode.Value)
		}
		var v V
		if err := valNode.Decode(&v); err != nil {
			return fmt.Errorf("key %q: %w", keyNode.Value, err)
		}
		out.Set(keyNode.Value, v)
	}
	*m = out
	return nil
}
