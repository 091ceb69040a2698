package validate

import (
	"fmt"

	"github.com/goliatone/go-formschema/internal/normalize"
	"github.com/goliatone/go-formschema/internal/yamltree"
	"github.com/goliatone/go-formschema/pkg/schema"
)

const defaultConfirmPrompt = "Are you sure?"

// sections resolves section field lists. Entries are either id references
// into the screen's own fields or inline field definitions.
func (v *validator) sections(node *yamltree.Node, path string, screenFields []schema.Field) []schema.Section {
	if node.IsNull() {
		return nil
	}
	if !node.IsSequence() {
		v.add(schema.ErrInvalidType, fmt.Sprintf("%s must be a list of sections", path), path, node)
		return nil
	}

	out := make([]schema.Section, 0, len(node.Items))
	for idx, item := range node.Items {
		itemPath := indexPath(path, idx)
		if !item.IsMapping() {
			v.add(schema.ErrInvalidType, fmt.Sprintf("section at %s must be a mapping", itemPath), itemPath, item)
			continue
		}
		section := schema.Section{
			Title:       v.str(item.Get("title"), joinPath(itemPath, "title")),
			Icon:        v.icon(v.str(item.Get("icon"), joinPath(itemPath, "icon"))),
			Description: v.str(item.Get("description"), joinPath(itemPath, "description")),
		}
		section.Fields = v.sectionFields(item.Get("fields"), joinPath(itemPath, "fields"), screenFields)
		out = append(out, section)
	}
	return out
}

func (v *validator) sectionFields(node *yamltree.Node, path string, screenFields []schema.Field) []schema.Field {
	if node.IsNull() {
		return nil
	}
	if !node.IsSequence() {
		v.add(schema.ErrInvalidType, fmt.Sprintf("%s must be a list of fields", path), path, node)
		return nil
	}

	out := make([]schema.Field, 0, len(node.Items))
	inline := yamltree.NewSequence(node.Line, node.Column)
	for idx, item := range node.Items {
		itemPath := indexPath(path, idx)
		if !item.IsScalar() {
			inline.Items = append(inline.Items, item)
			continue
		}
		id := text(item)
		field, ok := lookupField(screenFields, id)
		if !ok {
			v.add(schema.ErrUnknownFieldReference, fmt.Sprintf("section field %q at %s does not match any field of the screen", id, itemPath), itemPath, item)
			continue
		}
		out = append(out, field)
	}
	if len(inline.Items) > 0 {
		out = append(out, v.fields(inline, path)...)
	}
	return out
}

func lookupField(fields []schema.Field, id string) (schema.Field, bool) {
	for _, field := range fields {
		if field.ID == id {
			return field, true
		}
	}
	return schema.Field{}, false
}

// actions validates an action list. Missing styles and types are inferred
// from position: the first action is the primary submit, later ones are
// secondary.
func (v *validator) actions(node *yamltree.Node, path string) []schema.Action {
	if node.IsNull() {
		return nil
	}
	if !node.IsSequence() {
		v.add(schema.ErrInvalidType, fmt.Sprintf("%s must be a list of actions", path), path, node)
		return nil
	}

	out := make([]schema.Action, 0, len(node.Items))
	seen := make(map[string]string, len(node.Items))
	for idx, item := range node.Items {
		itemPath := indexPath(path, idx)
		action, ok := v.action(item, idx, itemPath)
		if !ok {
			continue
		}
		if action.ID != "" {
			if first, dup := seen[action.ID]; dup {
				v.add(schema.ErrInvalidAction, fmt.Sprintf("action id %q at %s duplicates %s", action.ID, itemPath, first), itemPath, item)
			} else {
				seen[action.ID] = itemPath
			}
		}
		out = append(out, action)
	}
	return out
}

func (v *validator) action(node *yamltree.Node, idx int, path string) (schema.Action, bool) {
	if !node.IsMapping() {
		v.add(schema.ErrInvalidAction, fmt.Sprintf("action at %s must be a label or a mapping", path), path, node)
		return schema.Action{}, false
	}

	out := schema.Action{
		ID:      v.str(node.Get("id"), joinPath(path, "id")),
		Type:    schema.ActionType(v.str(node.Get("type"), joinPath(path, "type"))),
		Label:   v.str(node.Get("label"), joinPath(path, "label")),
		Style:   schema.ActionStyle(v.str(node.Get("style"), joinPath(path, "style"))),
		To:      v.str(node.Get("to"), joinPath(path, "to")),
		Handler: v.str(node.Get("handler"), joinPath(path, "handler")),
		Confirm: v.confirm(node.Get("confirm"), joinPath(path, "confirm")),
		Icon:    v.icon(v.str(node.Get("icon"), joinPath(path, "icon"))),
	}
	if out.Label == "" {
		v.add(schema.ErrMissingRequiredField, fmt.Sprintf(`action at %s is missing required "label"`, path), path, node)
	}
	if out.ID == "" {
		out.ID = normalize.Slugify(out.Label)
	}

	if out.Type == "" {
		out.Type = inferActionType(out, idx)
	} else if !out.Type.Valid() {
		v.add(schema.ErrInvalidAction, fmt.Sprintf("action at %s has unknown type %q", path, out.Type), joinPath(path, "type"), node.Get("type"))
	}
	if out.Type == schema.ActionNavigate && out.To == "" {
		v.add(schema.ErrInvalidAction, fmt.Sprintf(`navigate action at %s requires a "to" target`, path), path, node)
	}

	if out.Style == "" {
		out.Style = schema.StyleSecondary
		if idx == 0 {
			out.Style = schema.StylePrimary
		}
	} else if !out.Style.Valid() {
		v.add(schema.ErrInvalidAction, fmt.Sprintf("action at %s has unknown style %q", path, out.Style), joinPath(path, "style"), node.Get("style"))
	}
	return out, true
}

func inferActionType(action schema.Action, idx int) schema.ActionType {
	switch {
	case action.To != "":
		return schema.ActionNavigate
	case action.Handler != "":
		return schema.ActionCustom
	case idx == 0:
		return schema.ActionSubmit
	default:
		return schema.ActionReset
	}
}

// confirm accepts a prompt string, or true for the default prompt.
func (v *validator) confirm(node *yamltree.Node, path string) string {
	if node.IsScalar() {
		if enabled, ok := node.Value.(bool); ok {
			if enabled {
				return defaultConfirmPrompt
			}
			return ""
		}
	}
	return v.str(node, path)
}

func (v *validator) wizard(node *yamltree.Node, path string) *schema.Wizard {
	if node.IsNull() {
		return nil
	}
	if !node.IsMapping() {
		v.add(schema.ErrInvalidType, fmt.Sprintf("%s must be a mapping", path), path, node)
		return nil
	}

	out := &schema.Wizard{
		ShowProgress: v.boolean(node.Get("show_progress"), joinPath(path, "show_progress"), true),
		AllowBack:    v.boolean(node.Get("allow_back"), joinPath(path, "allow_back"), true),
	}

	stepsPath := joinPath(path, "steps")
	steps := node.Get("steps")
	switch {
	case steps.IsNull() || (steps.IsSequence() && len(steps.Items) == 0):
		v.add(schema.ErrMissingRequiredField, fmt.Sprintf(`wizard at %s must declare at least one step in "steps"`, path), stepsPath, orNode(steps, node))
		return out
	case !steps.IsSequence():
		v.add(schema.ErrInvalidType, fmt.Sprintf("%s must be a list of steps", stepsPath), stepsPath, steps)
		return out
	}

	seen := make(map[string]string, len(steps.Items))
	for idx, item := range steps.Items {
		itemPath := indexPath(stepsPath, idx)
		if !item.IsMapping() {
			v.add(schema.ErrInvalidType, fmt.Sprintf("step at %s must be a mapping", itemPath), itemPath, item)
			continue
		}
		step := schema.Step{
			ID:          v.str(item.Get("id"), joinPath(itemPath, "id")),
			Title:       v.str(item.Get("title"), joinPath(itemPath, "title")),
			Description: v.str(item.Get("description"), joinPath(itemPath, "description")),
			Fields:      v.fields(item.Get("fields"), joinPath(itemPath, "fields")),
		}
		if step.ID == "" {
			v.add(schema.ErrMissingRequiredField, fmt.Sprintf(`step at %s is missing required "id"`, itemPath), itemPath, item)
		} else if first, dup := seen[step.ID]; dup {
			v.add(schema.ErrInvalidValue, fmt.Sprintf("step id %q at %s duplicates %s", step.ID, itemPath, first), itemPath, item)
		} else {
			seen[step.ID] = itemPath
		}
		out.Steps = append(out.Steps, step)
	}
	return out
}
