package validate

import (
	"fmt"

	"github.com/goliatone/go-formschema/internal/yamltree"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// TypeCatalog answers which field types must declare options.
type TypeCatalog interface {
	RequiresOptions(t schema.FieldType) bool
}

// Config controls validation policy.
type Config struct {
	// Types decides which field types need options. When nil the built-in
	// option types (select, radio_group, multi_select, checkbox_group) apply.
	Types TypeCatalog
	// SanitizeIcons strips icon markup down to a safe SVG subset.
	SanitizeIcons bool
}

type builtinTypes struct{}

func (builtinTypes) RequiresOptions(t schema.FieldType) bool { return t.RequiresOptions() }

type validator struct {
	cfg  Config
	errs schema.ParseErrors
}

// Validate walks a normalised tree and builds the typed schema. Every problem
// is accumulated; when any is found the schema is discarded and only the
// errors are returned.
func Validate(root *yamltree.Node, cfg Config) (*schema.Schema, schema.ParseErrors) {
	if cfg.Types == nil {
		cfg.Types = builtinTypes{}
	}
	v := &validator{cfg: cfg}
	out := v.document(root)
	if len(v.errs) > 0 {
		return nil, v.errs
	}
	return out, nil
}

func (v *validator) add(kind schema.ErrorType, message, path string, at *yamltree.Node) {
	v.errs = append(v.errs, schema.ParseError{
		Type:    kind,
		Message: message,
		Path:    path,
		Pos:     position(at),
	})
}

func (v *validator) document(root *yamltree.Node) *schema.Schema {
	if root.IsNull() {
		v.add(schema.ErrMissingViewSection, `document is empty; a "view" section is required`, "", root)
		return nil
	}
	if !root.IsMapping() {
		v.add(schema.ErrInvalidType, fmt.Sprintf("document root must be a mapping, got a %s", root.Kind), "", root)
		return nil
	}

	out := &schema.Schema{}
	out.Screens = v.view(root)
	out.CommonComponents = v.components(root.Get("common_components"), "common_components")
	out.Validations = v.validations(root.Get("validations"), "validations")
	return out
}

func (v *validator) view(root *yamltree.Node) []schema.Screen {
	view := root.Get("view")
	switch {
	case view.IsNull():
		v.add(schema.ErrMissingViewSection, `missing required "view" section`, "view", orNode(view, root))
		return nil
	case view.IsSequence():
		v.viewSequence(view)
		return nil
	case !view.IsMapping():
		v.add(schema.ErrInvalidViewSection, `"view" must map screen names to screens`, "view", view)
		return nil
	case len(view.Pairs) == 0:
		v.add(schema.ErrMissingViewSection, `"view" must declare at least one screen`, "view", view)
		return nil
	}

	screens := make([]schema.Screen, 0, len(view.Pairs))
	for _, pair := range view.Pairs {
		if screen, ok := v.screen(pair.Key, pair.Value, joinPath("view", pair.Key)); ok {
			screens = append(screens, screen)
		}
	}
	return screens
}

// viewSequence explains why an array-style view could not be keyed by name.
func (v *validator) viewSequence(view *yamltree.Node) {
	seen := make(map[string]string, len(view.Items))
	for idx, item := range view.Items {
		path := indexPath("view", idx)
		if !item.IsMapping() {
			v.add(schema.ErrInvalidViewSection, fmt.Sprintf("screen at %s must be a mapping", path), path, item)
			continue
		}
		name := text(item.Get("name"))
		if name == "" {
			v.add(schema.ErrMissingRequiredField, fmt.Sprintf(`screen at %s is missing required "name"`, path), path, item)
			continue
		}
		if first, dup := seen[name]; dup {
			v.add(schema.ErrInvalidViewSection, fmt.Sprintf("screen name %q at %s duplicates %s", name, path, first), path, item)
			continue
		}
		seen[name] = path
	}
	if len(view.Items) == 0 {
		v.add(schema.ErrMissingViewSection, `"view" must declare at least one screen`, "view", view)
	}
}

func (v *validator) screen(name string, node *yamltree.Node, path string) (schema.Screen, bool) {
	if !node.IsMapping() {
		v.add(schema.ErrInvalidType, fmt.Sprintf("screen %q must be a mapping", name), path, node)
		return schema.Screen{}, false
	}

	out := schema.Screen{Name: name}
	out.Title = v.str(node.Get("title"), joinPath(path, "title"))
	if out.Title == "" {
		v.add(schema.ErrMissingRequiredField, fmt.Sprintf(`screen %q is missing required "title"`, name), path, node)
	}
	out.Description = v.str(node.Get("description"), joinPath(path, "description"))
	out.Layout = v.layout(node.Get("layout"), joinPath(path, "layout"))
	out.Fields = v.fields(node.Get("fields"), joinPath(path, "fields"))
	out.Sections = v.sections(node.Get("sections"), joinPath(path, "sections"), out.Fields)
	out.Actions = v.actions(node.Get("actions"), joinPath(path, "actions"))
	out.Wizard = v.wizard(node.Get("wizard"), joinPath(path, "wizard"))
	return out, true
}

func (v *validator) layout(node *yamltree.Node, path string) *schema.Layout {
	if node.IsNull() {
		return nil
	}
	if !node.IsMapping() {
		v.add(schema.ErrInvalidType, fmt.Sprintf("%s must be a mapping", path), path, node)
		return nil
	}
	out := &schema.Layout{Gap: v.str(node.Get("gap"), joinPath(path, "gap"))}
	if columns, ok := v.integer(node.Get("columns"), joinPath(path, "columns")); ok {
		if columns < 1 {
			v.add(schema.ErrInvalidValue, fmt.Sprintf("%s.columns must be at least 1", path), joinPath(path, "columns"), node.Get("columns"))
		}
		out.Columns = columns
	}
	return out
}

func (v *validator) components(node *yamltree.Node, path string) []schema.ComponentDef {
	if node.IsNull() {
		return nil
	}
	if node.IsSequence() {
		v.unkeyedSequence(node, path, "component", "component_name")
		return nil
	}
	if !node.IsMapping() {
		v.add(schema.ErrInvalidType, fmt.Sprintf("%s must map component names to components", path), path, node)
		return nil
	}

	out := make([]schema.ComponentDef, 0, len(node.Pairs))
	for _, pair := range node.Pairs {
		itemPath := joinPath(path, pair.Key)
		def := schema.ComponentDef{Name: pair.Key}
		value := pair.Value
		switch {
		case value.IsNull():
		case value.IsMapping():
			def.Description = v.str(value.Get("description"), joinPath(itemPath, "description"))
			def.Fields = v.fields(value.Get("fields"), joinPath(itemPath, "fields"))
			def.UsedIn = v.stringList(value.Get("used_in"), joinPath(itemPath, "used_in"))
		default:
			v.add(schema.ErrInvalidType, fmt.Sprintf("component %q must be a mapping", pair.Key), itemPath, value)
			continue
		}
		out = append(out, def)
	}
	return out
}

func (v *validator) validations(node *yamltree.Node, path string) []schema.ValidationRule {
	if node.IsNull() {
		return nil
	}
	if node.IsSequence() {
		v.unkeyedSequence(node, path, "validation", "field")
		return nil
	}
	if !node.IsMapping() {
		v.add(schema.ErrInvalidType, fmt.Sprintf("%s must map names to validation rules", path), path, node)
		return nil
	}

	out := make([]schema.ValidationRule, 0, len(node.Pairs))
	for _, pair := range node.Pairs {
		itemPath := joinPath(path, pair.Key)
		value := pair.Value
		if !value.IsMapping() {
			v.add(schema.ErrInvalidType, fmt.Sprintf("validation %q must be a mapping or a message", pair.Key), itemPath, value)
			continue
		}
		rule := schema.ValidationRule{
			Name:    pair.Key,
			Field:   v.str(value.Get("field"), joinPath(itemPath, "field")),
			Message: v.str(value.Get("message"), joinPath(itemPath, "message")),
			Pattern: v.str(value.Get("pattern"), joinPath(itemPath, "pattern")),
		}
		if rules := value.Get("rules"); !rules.IsNull() {
			if !rules.IsMapping() {
				v.add(schema.ErrInvalidType, fmt.Sprintf("%s.rules must be a mapping", itemPath), joinPath(itemPath, "rules"), rules)
			} else {
				rule.Rules, _ = rules.Interface().(map[string]any)
				if rule.Pattern == "" {
					rule.Pattern = text(rules.Get("pattern"))
				}
			}
		}
		out = append(out, rule)
	}
	return out
}

// unkeyedSequence reports why a list of components or validations could not
// be keyed into a mapping.
func (v *validator) unkeyedSequence(node *yamltree.Node, path, noun, key string) {
	seen := make(map[string]string, len(node.Items))
	for idx, item := range node.Items {
		itemPath := indexPath(path, idx)
		if !item.IsMapping() {
			v.add(schema.ErrInvalidType, fmt.Sprintf("%s at %s must be a mapping", noun, itemPath), itemPath, item)
			continue
		}
		name := text(item.Get(key))
		if name == "" {
			name = text(item.Get("name"))
		}
		if name == "" {
			v.add(schema.ErrMissingRequiredField, fmt.Sprintf("%s at %s is missing required %q", noun, itemPath, key), itemPath, item)
			continue
		}
		if first, dup := seen[name]; dup {
			v.add(schema.ErrInvalidValue, fmt.Sprintf("%s %q at %s duplicates %s", noun, name, itemPath, first), itemPath, item)
			continue
		}
		seen[name] = itemPath
	}
}

func orNode(n, fallback *yamltree.Node) *yamltree.Node {
	if n != nil {
		return n
	}
	return fallback
}
