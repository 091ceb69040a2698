package validate

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formschema/internal/yamltree"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// sharedFieldKeys are read for every field regardless of its type.
var sharedFieldKeys = []string{
	"id", "type", "label", "required", "placeholder", "description",
	"help_text", "default", "disabled", "readonly", "validation",
}

// fields validates an ordered field list, enforcing sibling id uniqueness.
func (v *validator) fields(node *yamltree.Node, path string) []schema.Field {
	if node.IsNull() {
		return nil
	}
	if !node.IsSequence() {
		v.add(schema.ErrInvalidType, fmt.Sprintf("%s must be a list of fields", path), path, node)
		return nil
	}

	out := make([]schema.Field, 0, len(node.Items))
	seen := make(map[string]string, len(node.Items))
	for idx, item := range node.Items {
		itemPath := fieldPath(path, idx, item)
		field, ok := v.field(item, itemPath)
		if !ok {
			continue
		}
		if field.ID != "" {
			if first, dup := seen[field.ID]; dup {
				v.add(schema.ErrDuplicateFieldID, fmt.Sprintf("field id %q at %s duplicates %s", field.ID, itemPath, first), itemPath, item)
			} else {
				seen[field.ID] = itemPath
			}
		}
		out = append(out, field)
	}
	return out
}

// fieldPath names a list entry. Fields hoisted out of a section keep the
// section path they were written under.
func fieldPath(list string, idx int, item *yamltree.Node) string {
	if item != nil && item.Origin != "" {
		if owner, ok := strings.CutSuffix(list, ".fields"); ok {
			return joinPath(owner, item.Origin)
		}
	}
	return indexPath(list, idx)
}

func (v *validator) field(node *yamltree.Node, path string) (schema.Field, bool) {
	if !node.IsMapping() {
		v.add(schema.ErrInvalidType, fmt.Sprintf("field at %s must be a mapping", path), path, node)
		return schema.Field{}, false
	}

	r := newReader(node)
	for _, key := range sharedFieldKeys {
		r.take(key)
	}

	out := schema.Field{
		ID:          v.str(node.Get("id"), joinPath(path, "id")),
		Type:        schema.FieldType(v.str(node.Get("type"), joinPath(path, "type"))),
		Label:       v.str(node.Get("label"), joinPath(path, "label")),
		Required:    v.boolean(node.Get("required"), joinPath(path, "required"), false),
		Placeholder: v.str(node.Get("placeholder"), joinPath(path, "placeholder")),
		Description: v.str(node.Get("description"), joinPath(path, "description")),
		HelpText:    v.str(node.Get("help_text"), joinPath(path, "help_text")),
		Default:     node.Get("default").Interface(),
		Disabled:    v.boolean(node.Get("disabled"), joinPath(path, "disabled"), false),
		Readonly:    v.boolean(node.Get("readonly"), joinPath(path, "readonly"), false),
		Validation:  v.str(node.Get("validation"), joinPath(path, "validation")),
	}
	if out.ID == "" {
		v.add(schema.ErrMissingRequiredField, fmt.Sprintf(`field at %s is missing required "id"`, path), path, node)
	}
	if out.Type == "" {
		out.Type = schema.FieldTypeText
	}

	if options := r.take("options"); options != nil || v.cfg.Types.RequiresOptions(out.Type) {
		out.Options = v.options(options, joinPath(path, "options"))
		if v.cfg.Types.RequiresOptions(out.Type) && len(out.Options) == 0 {
			v.add(schema.ErrInvalidOptionList,
				fmt.Sprintf(`%s field at %s requires a non-empty "options" list`, out.Type, path),
				path, orNode(options, node))
		}
	}

	switch out.Type {
	case schema.FieldTypeNumber:
		out.Number = v.numberConfig(r, path)
	case schema.FieldTypeTextarea:
		if rows, ok := v.integer(r.take("rows"), joinPath(path, "rows")); ok {
			out.Rows = rows
		}
	case schema.FieldTypeFileUpload, schema.FieldTypeImageUploader:
		out.Upload = v.uploadConfig(r, path)
	case schema.FieldTypeDatePicker, schema.FieldTypeTimePicker, schema.FieldTypeDurationPicker:
		out.Picker = &schema.PickerConfig{
			Format: v.str(r.take("format"), joinPath(path, "format")),
			Min:    v.str(r.take("min"), joinPath(path, "min")),
			Max:    v.str(r.take("max"), joinPath(path, "max")),
		}
	case schema.FieldTypeRepeater:
		out.Repeater = v.repeaterConfig(r, path)
	case schema.FieldTypeDataTable:
		out.Table = v.dataTable(r, path)
	}

	out.Attributes = r.rest()
	return out, true
}

// options reads {value, label} pairs. Normalisation has already expanded
// bare strings, so anything else here is malformed.
func (v *validator) options(node *yamltree.Node, path string) []schema.Option {
	if node.IsNull() {
		return nil
	}
	if !node.IsSequence() {
		v.add(schema.ErrInvalidOptionList, fmt.Sprintf(`"options" at %s must be a list`, path), path, node)
		return nil
	}
	out := make([]schema.Option, 0, len(node.Items))
	for idx, item := range node.Items {
		itemPath := indexPath(path, idx)
		value := item.Get("value")
		if !item.IsMapping() || value.IsNull() {
			v.add(schema.ErrInvalidOptionList, fmt.Sprintf("option at %s must carry a value and a label", itemPath), itemPath, item)
			continue
		}
		label := v.str(item.Get("label"), joinPath(itemPath, "label"))
		if label == "" {
			label = text(value)
		}
		out = append(out, schema.Option{Value: value.Interface(), Label: label})
	}
	return out
}

func (v *validator) numberConfig(r *reader, path string) *schema.NumberConfig {
	out := &schema.NumberConfig{
		Min:  v.number(r.take("min"), joinPath(path, "min")),
		Max:  v.number(r.take("max"), joinPath(path, "max")),
		Step: v.number(r.take("step"), joinPath(path, "step")),
	}
	if out.Min != nil && out.Max != nil && *out.Min > *out.Max {
		v.add(schema.ErrInvalidValue, fmt.Sprintf("%s has min greater than max", path), joinPath(path, "min"), r.node.Get("min"))
	}
	return out
}

func (v *validator) uploadConfig(r *reader, path string) *schema.UploadConfig {
	out := &schema.UploadConfig{
		Accept:   v.acceptList(r.take("accept"), joinPath(path, "accept")),
		Multiple: v.boolean(r.take("multiple"), joinPath(path, "multiple"), false),
		MaxSize:  v.str(r.take("max_size"), joinPath(path, "max_size")),
	}
	if maxFiles, ok := v.integer(r.take("max_files"), joinPath(path, "max_files")); ok {
		out.MaxFiles = maxFiles
	}
	return out
}

// acceptList joins a list of accepted MIME types or extensions into the
// comma separated form used by the accept attribute.
func (v *validator) acceptList(node *yamltree.Node, path string) string {
	if !node.IsSequence() {
		return v.str(node, path)
	}
	joined := ""
	for idx, item := range v.stringList(node, path) {
		if idx > 0 {
			joined += ","
		}
		joined += item
	}
	return joined
}

func (v *validator) repeaterConfig(r *reader, path string) *schema.RepeaterConfig {
	out := &schema.RepeaterConfig{
		ItemFields: v.fields(r.take("item_fields"), joinPath(path, "item_fields")),
		MinItems:   v.optionalInt(r.take("min_items"), joinPath(path, "min_items")),
		MaxItems:   v.optionalInt(r.take("max_items"), joinPath(path, "max_items")),
		AddLabel:   v.str(r.take("add_label"), joinPath(path, "add_label")),
	}
	if out.MinItems != nil && *out.MinItems < 0 {
		v.add(schema.ErrInvalidValue, fmt.Sprintf("%s.min_items must not be negative", path), joinPath(path, "min_items"), r.node.Get("min_items"))
	}
	if out.MinItems != nil && out.MaxItems != nil && *out.MinItems > *out.MaxItems {
		v.add(schema.ErrInvalidValue, fmt.Sprintf("%s has min_items greater than max_items", path), joinPath(path, "min_items"), r.node.Get("min_items"))
	}
	return out
}
