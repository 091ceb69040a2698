package normalize

import (
	"strings"

	"github.com/goliatone/go-formschema/internal/yamltree"
)

const (
	defaultPageSize          = 10
	defaultEmptyStateMessage = "No data available"
)

var defaultSearchMarkers = []string{"keyword_search", "keyword", "keywords", "search"}

// Options tunes the defaults applied while synthesising data tables.
type Options struct {
	// PageSize is the page size of synthesised tables. Zero selects 10.
	PageSize int
	// EmptyStateMessage is shown by synthesised tables without rows.
	EmptyStateMessage string
	// SearchMarkers are filter entries that toggle the keyword search box
	// instead of producing a filter field. Entries compare by slug.
	SearchMarkers []string
}

// DefaultOptions returns the options used when callers supply none.
func DefaultOptions() Options {
	return Options{
		PageSize:          defaultPageSize,
		EmptyStateMessage: defaultEmptyStateMessage,
		SearchMarkers:     append([]string(nil), defaultSearchMarkers...),
	}
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = defaultPageSize
	}
	if strings.TrimSpace(o.EmptyStateMessage) == "" {
		o.EmptyStateMessage = defaultEmptyStateMessage
	}
	if len(o.SearchMarkers) == 0 {
		o.SearchMarkers = defaultSearchMarkers
	}
	return o
}

// Normalize converts the alternate document dialects into the canonical
// mapping-based shape and returns the result as a new tree; root is never
// modified. Shapes it does not recognise are passed through untouched so the
// validator can report them. Normalising a normalised tree is a no-op.
func Normalize(root *yamltree.Node, opts Options) *yamltree.Node {
	out := root.Clone()
	if !out.IsMapping() {
		return out
	}

	n := newNormalizer(opts.withDefaults())
	n.view(out)
	n.components(out)
	n.validations(out)
	return out
}

type normalizer struct {
	opts    Options
	markers map[string]struct{}
}

func newNormalizer(opts Options) *normalizer {
	markers := make(map[string]struct{}, len(opts.SearchMarkers))
	for _, marker := range opts.SearchMarkers {
		if slug := Slugify(marker); slug != "" {
			markers[slug] = struct{}{}
		}
	}
	return &normalizer{opts: opts, markers: markers}
}

func (n *normalizer) view(root *yamltree.Node) {
	view := root.Get("view")
	if view.IsSequence() {
		if keyed, ok := keyBy(view, []string{"name"}, nil); ok {
			root.Set("view", keyed)
			view = keyed
		}
	}
	if !view.IsMapping() {
		return
	}
	for _, pair := range view.Pairs {
		n.screen(pair.Key, pair.Value)
	}
}

func (n *normalizer) screen(name string, screen *yamltree.Node) {
	if !screen.IsMapping() {
		return
	}
	n.sections(screen)
	n.displayFields(name, screen)
	n.fieldList(screen.Get("fields"))
	n.actions(screen.Get("actions"))
	n.wizard(screen)
}

func (n *normalizer) wizard(screen *yamltree.Node) {
	wizard := screen.Get("wizard")
	if wizard.IsSequence() {
		wrapped := yamltree.NewMapping(wizard.Line, wizard.Column)
		wrapped.Set("steps", wizard)
		screen.Set("wizard", wrapped)
		wizard = wrapped
	}
	if !wizard.IsMapping() {
		return
	}
	steps := wizard.Get("steps")
	if !steps.IsSequence() {
		return
	}
	for _, step := range steps.Items {
		if step.IsMapping() {
			n.fieldList(step.Get("fields"))
		}
	}
}

func (n *normalizer) components(root *yamltree.Node) {
	components := root.Get("common_components")
	if components.IsSequence() {
		if keyed, ok := keyBy(components, []string{"component_name", "name"}, nil); ok {
			root.Set("common_components", keyed)
			components = keyed
		}
	}
	if !components.IsMapping() {
		return
	}
	for _, pair := range components.Pairs {
		if pair.Value.IsMapping() {
			n.fieldList(pair.Value.Get("fields"))
		}
	}
}

func (n *normalizer) validations(root *yamltree.Node) {
	validations := root.Get("validations")
	if validations.IsSequence() {
		keep := map[string]struct{}{"field": {}}
		if keyed, ok := keyBy(validations, []string{"field", "name"}, keep); ok {
			root.Set("validations", keyed)
			validations = keyed
		}
	}
	if !validations.IsMapping() {
		return
	}
	for idx, pair := range validations.Pairs {
		value := pair.Value
		if value.IsScalar() {
			wrapped := yamltree.NewMapping(value.Line, value.Column)
			wrapped.Set("message", value)
			validations.Pairs[idx].Value = wrapped
			continue
		}
		if !value.IsMapping() {
			continue
		}
		if rule := value.Get("rule"); rule.IsScalar() {
			value.Delete("rule")
			if !value.Has("message") {
				value.Set("message", rule)
			}
		}
	}
}

// keyBy converts a sequence of mappings into a mapping keyed by the first
// present key in keys. The key entry is removed from each value unless it is
// listed in keep. Sequences with non-mapping items, missing or duplicate keys
// are reported as not convertible.
func keyBy(seq *yamltree.Node, keys []string, keep map[string]struct{}) (*yamltree.Node, bool) {
	names := make([]string, len(seq.Items))
	used := make([]string, len(seq.Items))
	seen := make(map[string]struct{}, len(seq.Items))
	for idx, item := range seq.Items {
		name, key := entryName(item, keys)
		if name == "" {
			return nil, false
		}
		if _, dup := seen[name]; dup {
			return nil, false
		}
		seen[name] = struct{}{}
		names[idx], used[idx] = name, key
	}

	out := yamltree.NewMapping(seq.Line, seq.Column)
	for idx, item := range seq.Items {
		if _, ok := keep[used[idx]]; !ok {
			item.Delete(used[idx])
		}
		out.Pairs = append(out.Pairs, yamltree.Pair{
			Key:    names[idx],
			Value:  item,
			Line:   item.Line,
			Column: item.Column,
		})
	}
	return out, true
}

// entryName returns the trimmed text of the first non-blank scalar found
// under keys, and the key it came from.
func entryName(item *yamltree.Node, keys []string) (string, string) {
	if !item.IsMapping() {
		return "", ""
	}
	for _, key := range keys {
		if value := item.Get(key); value.IsScalar() {
			if text := strings.TrimSpace(value.Text()); text != "" {
				return text, key
			}
		}
	}
	return "", ""
}

func scalarAt(value any, at *yamltree.Node) *yamltree.Node {
	return yamltree.NewScalar(value, at.Line, at.Column)
}
