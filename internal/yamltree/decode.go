package yamltree

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxNodes bounds alias expansion so a small document cannot fan out into an
// unbounded tree.
const maxNodes = 1 << 20

var lineMarker = regexp.MustCompile(`^line (\d+): `)

// DecodeError reports malformed YAML. Line and Column are 0-indexed and set to
// -1 when yaml.v3 does not report a location.
type DecodeError struct {
	Message string
	Line    int
	Column  int
}

func (e *DecodeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line < 0 {
		return "yaml: " + e.Message
	}
	return fmt.Sprintf("yaml: %d:%d: %s", e.Line+1, e.Column+1, e.Message)
}

// HasPosition reports whether the error carries a source location.
func (e *DecodeError) HasPosition() bool {
	return e != nil && e.Line >= 0
}

// Decode parses source into a generic tree. An empty document yields a nil
// node and no error.
func Decode(source string) (*Node, *DecodeError) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(source), &doc); err != nil {
		return nil, syntaxError(source, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	conv := &converter{}
	return conv.convert(doc.Content[0])
}

type converter struct {
	count int
}

func (c *converter) convert(n *yaml.Node) (*Node, *DecodeError) {
	c.count++
	if c.count > maxNodes {
		return nil, &DecodeError{
			Message: "document expands to too many nodes",
			Line:    n.Line - 1,
			Column:  n.Column - 1,
		}
	}

	line, column := n.Line-1, n.Column-1
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return NewScalar(nil, line, column), nil
		}
		out, err := c.convert(n.Alias)
		if err != nil {
			return nil, err
		}
		// Report the alias site, not the anchor, for the top-level node.
		out.Line, out.Column = line, column
		return out, nil
	case yaml.SequenceNode:
		out := NewSequence(line, column)
		out.Items = make([]*Node, 0, len(n.Content))
		for _, child := range n.Content {
			item, err := c.convert(child)
			if err != nil {
				return nil, err
			}
			out.Items = append(out.Items, item)
		}
		return out, nil
	case yaml.MappingNode:
		return c.mapping(n)
	case yaml.ScalarNode:
		return NewScalar(scalarValue(n), line, column), nil
	default:
		return NewScalar(nil, line, column), nil
	}
}

func (c *converter) mapping(n *yaml.Node) (*Node, *DecodeError) {
	out := NewMapping(n.Line-1, n.Column-1)
	explicit := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if isMergeKey(key) {
			continue
		}
		if key.Kind != yaml.ScalarNode {
			return nil, &DecodeError{
				Message: "mapping keys must be scalars",
				Line:    key.Line - 1,
				Column:  key.Column - 1,
			}
		}
		if first, dup := explicit[key.Value]; dup {
			return nil, &DecodeError{
				Message: fmt.Sprintf("duplicate key %q (first defined at line %d, column %d)", key.Value, first.Line, first.Column),
				Line:    key.Line - 1,
				Column:  key.Column - 1,
			}
		}
		explicit[key.Value] = key
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if isMergeKey(key) {
			if err := c.merge(out, value, explicit); err != nil {
				return nil, err
			}
			continue
		}
		child, err := c.convert(value)
		if err != nil {
			return nil, err
		}
		out.Pairs = append(out.Pairs, Pair{
			Key:    key.Value,
			Value:  child,
			Line:   key.Line - 1,
			Column: key.Column - 1,
		})
	}
	return out, nil
}

func (c *converter) merge(out *Node, value *yaml.Node, explicit map[string]*yaml.Node) *DecodeError {
	sources := []*yaml.Node{value}
	if value.Kind == yaml.SequenceNode {
		sources = value.Content
	}
	for _, source := range sources {
		merged, err := c.convert(source)
		if err != nil {
			return err
		}
		if !merged.IsMapping() {
			return &DecodeError{
				Message: "merge key requires a mapping or a sequence of mappings",
				Line:    source.Line - 1,
				Column:  source.Column - 1,
			}
		}
		for _, pair := range merged.Pairs {
			if _, ok := explicit[pair.Key]; ok || out.Has(pair.Key) {
				continue
			}
			out.Pairs = append(out.Pairs, pair)
		}
	}
	return nil
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Value == "<<" && (n.Tag == "!!merge" || n.Tag == "")
}

func scalarValue(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return u
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return f
		}
	}
	return n.Value
}

func syntaxError(source string, err error) *DecodeError {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	out := &DecodeError{Message: msg, Line: -1, Column: -1}

	match := lineMarker.FindStringSubmatch(msg)
	if match == nil {
		return out
	}
	lineNo, convErr := strconv.Atoi(match[1])
	if convErr != nil || lineNo < 1 {
		return out
	}
	out.Message = strings.TrimPrefix(msg, match[0])
	out.Line = lineNo - 1
	out.Column = firstTokenColumn(source, out.Line)
	return out
}

// firstTokenColumn returns the 0-indexed column of the first non-space
// character on line, which is where yaml.v3 problems are anchored when it
// only reports a line number. A tab in the indentation is itself the token,
// since YAML forbids tabs there.
func firstTokenColumn(source string, line int) int {
	lines := strings.Split(source, "\n")
	if line < 0 || line >= len(lines) {
		return 0
	}
	text := strings.TrimRight(lines[line], "\r")
	for idx, r := range text {
		if r != ' ' {
			return idx
		}
	}
	return 0
}
