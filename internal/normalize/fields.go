package normalize

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/goliatone/go-formschema/internal/yamltree"
)

// sections renames the array dialect's section keys and hoists field
// definitions into the screen's own field list, leaving id references behind.
func (n *normalizer) sections(screen *yamltree.Node) {
	sections := screen.Get("sections")
	if !sections.IsSequence() {
		return
	}
	target := screen.Get("fields")
	canHoist := target.IsNull() || target.IsSequence()

	var hoisted []*yamltree.Node
	for sectionIdx, section := range sections.Items {
		if !section.IsMapping() {
			continue
		}
		if name := section.Delete("section_name"); name != nil && !section.Has("title") {
			section.Set("title", name)
		}
		origins := make(map[*yamltree.Node]string)
		for _, key := range []string{"fields", "input_fields"} {
			if list := section.Get(key); list.IsSequence() {
				for idx, item := range list.Items {
					origins[item] = fmt.Sprintf("sections[%d].%s[%d]", sectionIdx, key, idx)
				}
			}
		}
		if input := section.Delete("input_fields"); input != nil {
			if existing := section.Get("fields"); existing.IsSequence() && input.IsSequence() {
				existing.Items = append(existing.Items, input.Items...)
			} else if !section.Has("fields") {
				section.Set("fields", input)
			}
		}

		fields := section.Get("fields")
		if !fields.IsSequence() {
			continue
		}
		n.fieldList(fields)
		if !canHoist {
			continue
		}

		refs := yamltree.NewSequence(fields.Line, fields.Column)
		for _, item := range fields.Items {
			if !item.IsMapping() {
				refs.Items = append(refs.Items, item)
				continue
			}
			if item.Origin == "" {
				item.Origin = origins[item]
			}
			hoisted = append(hoisted, item)
			if id := item.Get("id"); id.IsScalar() {
				refs.Items = append(refs.Items, scalarAt(id.Text(), item))
			}
		}
		section.Set("fields", refs)
	}

	if len(hoisted) == 0 {
		return
	}
	if target.IsNull() {
		target = yamltree.NewSequence(sections.Line, sections.Column)
		screen.Set("fields", target)
	}
	target.Items = append(target.Items, hoisted...)
}

// tableKeys move from a display_fields screen onto the synthesised table.
var tableKeys = []string{"filters", "selection", "row_actions", "data", "pagination", "empty_state"}

// displayFields turns the display_fields shorthand into a single data_table
// field when the screen declares no fields or sections of its own.
func (n *normalizer) displayFields(name string, screen *yamltree.Node) {
	columns := screen.Get("display_fields")
	if !columns.IsSequence() {
		return
	}
	if hasItems(screen.Get("fields")) || hasItems(screen.Get("sections")) {
		return
	}
	screen.Delete("display_fields")

	table := yamltree.NewMapping(columns.Line, columns.Column)
	table.Set("id", scalarAt(Slugify(name)+"_table", columns))
	table.Set("type", scalarAt("data_table", columns))
	if title := screen.Get("title"); title.IsScalar() {
		table.Set("label", scalarAt(title.Text(), title))
	}
	table.Set("columns", columns)
	for _, key := range tableKeys {
		if value := screen.Delete(key); value != nil {
			table.Set(key, value)
		}
	}
	if !table.Has("filters") {
		table.Set("filters", yamltree.NewSequence(columns.Line, columns.Column))
	}
	if !table.Has("pagination") {
		pagination := yamltree.NewMapping(columns.Line, columns.Column)
		pagination.Set("enabled", scalarAt(true, columns))
		pagination.Set("page_size", scalarAt(int64(n.opts.PageSize), columns))
		table.Set("pagination", pagination)
	}
	if !table.Has("empty_state") {
		empty := yamltree.NewMapping(columns.Line, columns.Column)
		empty.Set("message", scalarAt(n.opts.EmptyStateMessage, columns))
		table.Set("empty_state", empty)
	}

	screen.Set("fields", yamltree.NewSequence(columns.Line, columns.Column, table))
}

func hasItems(n *yamltree.Node) bool {
	return n.IsSequence() && len(n.Items) > 0
}

func (n *normalizer) fieldList(fields *yamltree.Node) {
	if !fields.IsSequence() {
		return
	}
	for _, item := range fields.Items {
		if item.IsMapping() {
			n.field(item)
		}
	}
}

func (n *normalizer) field(field *yamltree.Node) {
	if name := field.Delete("field_name"); name != nil {
		if !field.Has("id") {
			field.Set("id", name.Clone())
		}
		if !field.Has("label") {
			field.Set("label", name.Clone())
		}
	}
	if kind := field.Delete("field_type"); kind != nil && !field.Has("type") {
		field.Set("type", kind)
	}
	if options := field.Get("options"); options != nil {
		if converted := optionList(options); converted != nil {
			field.Set("options", converted)
		}
	}

	switch field.Get("type").Text() {
	case "repeater":
		if !field.Has("item_fields") && field.Get("fields").IsSequence() {
			field.Set("item_fields", field.Delete("fields"))
		}
		n.fieldList(field.Get("item_fields"))
	case "data_table":
		n.table(field)
	}
}

// optionList canonicalises bare strings and value/label maps into
// {value, label} pairs. It returns nil when the shape is not recognised.
func optionList(options *yamltree.Node) *yamltree.Node {
	switch options.Kind {
	case yamltree.SequenceKind:
		out := yamltree.NewSequence(options.Line, options.Column)
		for _, item := range options.Items {
			out.Items = append(out.Items, option(item))
		}
		return out
	case yamltree.MappingKind:
		out := yamltree.NewSequence(options.Line, options.Column)
		for _, pair := range options.Pairs {
			entry := yamltree.NewMapping(pair.Line, pair.Column)
			entry.Set("value", yamltree.NewScalar(pair.Key, pair.Line, pair.Column))
			label := pair.Key
			if pair.Value.IsScalar() {
				label = pair.Value.Text()
			}
			entry.Set("label", yamltree.NewScalar(label, pair.Line, pair.Column))
			out.Items = append(out.Items, entry)
		}
		return out
	default:
		return nil
	}
}

func option(item *yamltree.Node) *yamltree.Node {
	if item.IsScalar() {
		entry := yamltree.NewMapping(item.Line, item.Column)
		entry.Set("value", item)
		entry.Set("label", scalarAt(item.Text(), item))
		return entry
	}
	if !item.IsMapping() {
		return item
	}
	value, label := item.Get("value"), item.Get("label")
	if value == nil && label.IsScalar() {
		item.Set("value", label.Clone())
	}
	if label == nil && value.IsScalar() {
		item.Set("label", scalarAt(value.Text(), value))
	}
	return item
}

func (n *normalizer) table(field *yamltree.Node) {
	if columns := field.Get("columns"); columns.IsSequence() {
		keys := newDerivedKeys("column", columns.Items)
		for idx, item := range columns.Items {
			columns.Items[idx] = column(item, idx, keys)
		}
	}
	if filters := field.Get("filters"); filters != nil {
		field.Set("filters", n.filters(filters))
	}
	n.actions(field.Get("row_actions"))
}

func column(item *yamltree.Node, idx int, keys *derivedKeys) *yamltree.Node {
	if item.IsScalar() {
		label := item.Text()
		entry := yamltree.NewMapping(item.Line, item.Column)
		entry.Set("id", scalarAt(keys.next(label, idx), item))
		entry.Set("label", scalarAt(label, item))
		return entry
	}
	if item.IsMapping() && !item.Has("id") {
		if label := item.Get("label"); label.IsScalar() {
			item.Set("id", scalarAt(keys.next(label.Text(), idx), label))
		}
	}
	return item
}

// filters expands a filter list: search markers switch on show_search and
// every other bare entry becomes a filter field.
func (n *normalizer) filters(filters *yamltree.Node) *yamltree.Node {
	var entries *yamltree.Node
	var out *yamltree.Node
	switch {
	case filters.IsSequence():
		entries = filters
		out = yamltree.NewMapping(filters.Line, filters.Column)
		out.Set("show_search", scalarAt(false, filters))
	case filters.IsMapping():
		entries = filters.Get("fields")
		out = filters
		if !out.Has("show_search") {
			out.Set("show_search", scalarAt(false, filters))
		}
	default:
		return filters
	}
	if !entries.IsSequence() {
		return out
	}

	fields := yamltree.NewSequence(entries.Line, entries.Column)
	keys := newDerivedKeys("filter", entries.Items)
	for _, item := range entries.Items {
		if item.IsScalar() {
			label := strings.TrimSpace(item.Text())
			if n.isSearchMarker(label) {
				out.Set("show_search", scalarAt(true, item))
				continue
			}
			entry := yamltree.NewMapping(item.Line, item.Column)
			entry.Set("id", scalarAt(keys.next(label, len(fields.Items)), item))
			entry.Set("label", scalarAt(label, item))
			fields.Items = append(fields.Items, entry)
			continue
		}
		fields.Items = append(fields.Items, item)
	}
	n.fieldList(fields)
	out.Set("fields", fields)
	return out
}

func (n *normalizer) isSearchMarker(label string) bool {
	_, ok := n.markers[Slugify(label)]
	return ok
}

// actions converts bare string actions positionally: the first becomes the
// primary submit action, every later one a secondary reset action. Actions
// without an id get one derived from their label.
func (n *normalizer) actions(actions *yamltree.Node) {
	if !actions.IsSequence() {
		return
	}
	keys := newDerivedKeys("action", actions.Items)
	for idx, item := range actions.Items {
		if item.IsMapping() && !item.Has("id") {
			if label := item.Get("label"); label.IsScalar() {
				item.Set("id", scalarAt(keys.next(label.Text(), idx), label))
			}
			continue
		}
		if !item.IsScalar() {
			continue
		}
		label := strings.TrimSpace(item.Text())
		kind, style := "submit", "primary"
		if idx > 0 {
			kind, style = "reset", "secondary"
		}
		entry := yamltree.NewMapping(item.Line, item.Column)
		entry.Set("id", scalarAt(keys.next(label, idx), item))
		entry.Set("label", scalarAt(label, item))
		entry.Set("type", scalarAt(kind, item))
		entry.Set("style", scalarAt(style, item))
		actions.Items[idx] = entry
	}
}

// derivedKeys hands out ids for shorthand list entries. Ids the author wrote
// are reserved up front; derived ids are never empty and never repeat
// within the list.
type derivedKeys struct {
	prefix string
	taken  map[string]struct{}
}

func newDerivedKeys(prefix string, items []*yamltree.Node) *derivedKeys {
	keys := &derivedKeys{prefix: prefix, taken: make(map[string]struct{})}
	for _, item := range items {
		if id := item.Get("id"); id.IsScalar() {
			keys.taken[id.Text()] = struct{}{}
		}
	}
	return keys
}

// next derives an id from label: its slug, else the trimmed label, else
// prefix_<position>. Collisions get a _2, _3, ... suffix.
func (k *derivedKeys) next(label string, idx int) string {
	base := Slugify(label)
	if base == "" {
		base = strings.TrimSpace(label)
	}
	if base == "" {
		base = fmt.Sprintf("%s_%d", k.prefix, idx+1)
	}
	key := base
	for n := 2; k.has(key); n++ {
		key = fmt.Sprintf("%s_%d", base, n)
	}
	k.taken[key] = struct{}{}
	return key
}

func (k *derivedKeys) has(key string) bool {
	_, ok := k.taken[key]
	return ok
}

// Slugify derives a machine key from display text: lower case letters and
// digits joined by single underscores.
func Slugify(text string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.TrimSpace(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pending = true
	}
	return b.String()
}
