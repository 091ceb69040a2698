package yamltree

import (
	"strconv"
)

// Kind identifies the shape of a decoded node.
type Kind int

const (
	NullKind Kind = iota
	ScalarKind
	SequenceKind
	MappingKind
)

// String returns the YAML vocabulary name for the kind.
func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case ScalarKind:
		return "scalar"
	case SequenceKind:
		return "sequence"
	case MappingKind:
		return "mapping"
	default:
		return "unknown"
	}
}

// Pair is a single mapping entry. Key positions are kept so errors about a
// key (duplicates, unexpected values) can point at the key itself.
type Pair struct {
	Key    string
	Value  *Node
	Line   int
	Column int
}

// Node is a generic, order-preserving YAML tree node. Scalars carry one of
// string, int64, float64, bool or nil in Value. Line and Column are 0-indexed.
type Node struct {
	Kind   Kind
	Value  any
	Items  []*Node
	Pairs  []Pair
	Line   int
	Column int
	// Origin is set on nodes moved by normalisation: the path, relative to
	// the owner of the list they now sit in, where the author wrote them.
	Origin string
}

// NewMapping returns an empty mapping positioned at the supplied location.
func NewMapping(line, column int) *Node {
	return &Node{Kind: MappingKind, Line: line, Column: column}
}

// NewSequence returns a sequence holding items, positioned at line/column.
func NewSequence(line, column int, items ...*Node) *Node {
	return &Node{Kind: SequenceKind, Items: items, Line: line, Column: column}
}

// NewScalar wraps a scalar value. A nil value yields a null node.
func NewScalar(value any, line, column int) *Node {
	if value == nil {
		return &Node{Kind: NullKind, Line: line, Column: column}
	}
	return &Node{Kind: ScalarKind, Value: value, Line: line, Column: column}
}

// IsMapping reports whether n is a non-nil mapping.
func (n *Node) IsMapping() bool { return n != nil && n.Kind == MappingKind }

// IsSequence reports whether n is a non-nil sequence.
func (n *Node) IsSequence() bool { return n != nil && n.Kind == SequenceKind }

// IsScalar reports whether n is a non-nil, non-null scalar.
func (n *Node) IsScalar() bool { return n != nil && n.Kind == ScalarKind }

// IsNull reports whether n is missing or an explicit null.
func (n *Node) IsNull() bool { return n == nil || n.Kind == NullKind }

// Get returns the value stored under key, or nil when n is not a mapping or
// the key is absent.
func (n *Node) Get(key string) *Node {
	if !n.IsMapping() {
		return nil
	}
	for _, pair := range n.Pairs {
		if pair.Key == key {
			return pair.Value
		}
	}
	return nil
}

// Has reports whether the mapping defines key, even with a null value.
func (n *Node) Has(key string) bool {
	if !n.IsMapping() {
		return false
	}
	for _, pair := range n.Pairs {
		if pair.Key == key {
			return true
		}
	}
	return false
}

// Set replaces the value under key in place, or appends a new entry
// positioned at the value's location.
func (n *Node) Set(key string, value *Node) {
	if !n.IsMapping() {
		return
	}
	for idx := range n.Pairs {
		if n.Pairs[idx].Key == key {
			n.Pairs[idx].Value = value
			return
		}
	}
	pair := Pair{Key: key, Value: value}
	if value != nil {
		pair.Line, pair.Column = value.Line, value.Column
	}
	n.Pairs = append(n.Pairs, pair)
}

// Delete removes key from the mapping, returning the removed value.
func (n *Node) Delete(key string) *Node {
	if !n.IsMapping() {
		return nil
	}
	for idx, pair := range n.Pairs {
		if pair.Key == key {
			n.Pairs = append(n.Pairs[:idx], n.Pairs[idx+1:]...)
			return pair.Value
		}
	}
	return nil
}

// Keys lists mapping keys in source order.
func (n *Node) Keys() []string {
	if !n.IsMapping() {
		return nil
	}
	keys := make([]string, len(n.Pairs))
	for idx, pair := range n.Pairs {
		keys[idx] = pair.Key
	}
	return keys
}

// String returns the scalar value when it is a Go string.
func (n *Node) String() (string, bool) {
	if !n.IsScalar() {
		return "", false
	}
	str, ok := n.Value.(string)
	return str, ok
}

// Text renders any scalar as text. Non-scalars render as the empty string.
func (n *Node) Text() string {
	if !n.IsScalar() {
		return ""
	}
	switch value := n.Value.(type) {
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case uint64:
		return strconv.FormatUint(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	default:
		return ""
	}
}

// Clone returns a deep copy of n so callers can mutate the result without
// aliasing the original tree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Kind: n.Kind, Value: n.Value, Line: n.Line, Column: n.Column, Origin: n.Origin}
	if len(n.Items) > 0 {
		out.Items = make([]*Node, len(n.Items))
		for idx, item := range n.Items {
			out.Items[idx] = item.Clone()
		}
	}
	if len(n.Pairs) > 0 {
		out.Pairs = make([]Pair, len(n.Pairs))
		for idx, pair := range n.Pairs {
			pair.Value = pair.Value.Clone()
			out.Pairs[idx] = pair
		}
	}
	return out
}

// Interface converts the node into plain Go values (map[string]any, []any
// and scalars). Mapping order is lost in the conversion.
func (n *Node) Interface() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case MappingKind:
		out := make(map[string]any, len(n.Pairs))
		for _, pair := range n.Pairs {
			out[pair.Key] = pair.Value.Interface()
		}
		return out
	case SequenceKind:
		out := make([]any, len(n.Items))
		for idx, item := range n.Items {
			out[idx] = item.Interface()
		}
		return out
	case ScalarKind:
		return n.Value
	default:
		return nil
	}
}
