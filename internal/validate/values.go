package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-formschema/internal/yamltree"
	"github.com/goliatone/go-formschema/pkg/schema"
)

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func indexPath(parent string, idx int) string {
	return fmt.Sprintf("%s[%d]", parent, idx)
}

func position(n *yamltree.Node) *schema.Position {
	if n == nil {
		return nil
	}
	return &schema.Position{Line: n.Line, Column: n.Column}
}

// text returns the trimmed text of a scalar, or "" for anything else.
func text(n *yamltree.Node) string {
	return strings.TrimSpace(n.Text())
}

// str reads an optional scalar, reporting non-scalar values.
func (v *validator) str(n *yamltree.Node, path string) string {
	if n.IsNull() {
		return ""
	}
	if !n.IsScalar() {
		v.add(schema.ErrInvalidType, fmt.Sprintf("%s must be a scalar, got a %s", path, n.Kind), path, n)
		return ""
	}
	return text(n)
}

func (v *validator) boolean(n *yamltree.Node, path string, fallback bool) bool {
	if n.IsNull() {
		return fallback
	}
	if n.IsScalar() {
		switch value := n.Value.(type) {
		case bool:
			return value
		case string:
			if parsed, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
				return parsed
			}
		}
	}
	v.add(schema.ErrInvalidValue, fmt.Sprintf("%s must be true or false", path), path, n)
	return fallback
}

func (v *validator) integer(n *yamltree.Node, path string) (int, bool) {
	if n.IsNull() {
		return 0, false
	}
	if n.IsScalar() {
		switch value := n.Value.(type) {
		case int64:
			return int(value), true
		case uint64:
			if value <= math.MaxInt {
				return int(value), true
			}
		case float64:
			if value == math.Trunc(value) && value >= math.MinInt && value < math.MaxInt {
				return int(value), true
			}
		case string:
			if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				return parsed, true
			}
		}
	}
	v.add(schema.ErrInvalidValue, fmt.Sprintf("%s must be an integer", path), path, n)
	return 0, false
}

func (v *validator) optionalInt(n *yamltree.Node, path string) *int {
	value, ok := v.integer(n, path)
	if !ok {
		return nil
	}
	return &value
}

func (v *validator) number(n *yamltree.Node, path string) *float64 {
	if n.IsNull() {
		return nil
	}
	if n.IsScalar() {
		var out float64
		switch value := n.Value.(type) {
		case int64:
			out = float64(value)
			return &out
		case uint64:
			out = float64(value)
			return &out
		case float64:
			out = value
			return &out
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
				return &parsed
			}
		}
	}
	v.add(schema.ErrInvalidValue, fmt.Sprintf("%s must be a number", path), path, n)
	return nil
}

// stringList accepts a single scalar or a sequence of scalars.
func (v *validator) stringList(n *yamltree.Node, path string) []string {
	if n.IsNull() {
		return nil
	}
	if n.IsScalar() {
		return []string{text(n)}
	}
	if !n.IsSequence() {
		v.add(schema.ErrInvalidType, fmt.Sprintf("%s must be a list of names", path), path, n)
		return nil
	}
	out := make([]string, 0, len(n.Items))
	for idx, item := range n.Items {
		if !item.IsScalar() {
			itemPath := indexPath(path, idx)
			v.add(schema.ErrInvalidType, fmt.Sprintf("%s must be a name", itemPath), itemPath, item)
			continue
		}
		out = append(out, text(item))
	}
	return out
}

// attributes collects the keys of a mapping not consumed by typed parsing.
func attributes(n *yamltree.Node, consumed map[string]struct{}) map[string]any {
	var out map[string]any
	for _, pair := range n.Pairs {
		if _, ok := consumed[pair.Key]; ok {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[pair.Key] = pair.Value.Interface()
	}
	return out
}

// reader tracks which keys of a mapping have been read.
type reader struct {
	node     *yamltree.Node
	consumed map[string]struct{}
}

func newReader(n *yamltree.Node) *reader {
	return &reader{node: n, consumed: make(map[string]struct{}, len(n.Pairs))}
}

func (r *reader) take(key string) *yamltree.Node {
	r.consumed[key] = struct{}{}
	return r.node.Get(key)
}

func (r *reader) rest() map[string]any {
	return attributes(r.node, r.consumed)
}
