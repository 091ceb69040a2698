package fieldtypes

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// Spec describes how the validator treats a field type.
type Spec struct {
	Type schema.FieldType
	// RequiresOptions makes a missing or empty options list a validation error.
	RequiresOptions bool
	Description     string
}

// Registry holds the field types the parser recognises. Types that are not
// registered are still accepted and passed through untouched; registration
// only adds constraints such as the options requirement. The zero value is
// empty and usable.
type Registry struct {
	mu    sync.RWMutex
	specs map[schema.FieldType]Spec
}

// NewRegistry constructs a registry with the built-in field types registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds or replaces a field type. Blank type names are ignored.
func (r *Registry) Register(spec Spec) {
	if r == nil {
		return
	}
	name := schema.FieldType(strings.TrimSpace(string(spec.Type)))
	if name == "" {
		return
	}
	spec.Type = name

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.specs == nil {
		r.specs = make(map[schema.FieldType]Spec)
	}
	r.specs[name] = spec
}

// Lookup returns the spec registered for t.
func (r *Registry) Lookup(t schema.FieldType) (Spec, bool) {
	if r == nil {
		return Spec{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.specs[t]
	return spec, ok
}

// Known reports whether t has been registered.
func (r *Registry) Known(t schema.FieldType) bool {
	_, ok := r.Lookup(t)
	return ok
}

// RequiresOptions reports whether fields of type t must carry options.
func (r *Registry) RequiresOptions(t schema.FieldType) bool {
	spec, ok := r.Lookup(t)
	return ok && spec.RequiresOptions
}

// Types lists the registered type names in lexical order.
func (r *Registry) Types() []schema.FieldType {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	out := make([]schema.FieldType, 0, len(r.specs))
	for name := range r.specs {
		out = append(out, name)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns an independent copy so callers can extend a registry without
// affecting parsers that already hold the original.
func (r *Registry) Clone() *Registry {
	out := &Registry{}
	if r == nil {
		return out
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out.specs = make(map[schema.FieldType]Spec, len(r.specs))
	for name, spec := range r.specs {
		out.specs[name] = spec
	}
	return out
}

func (r *Registry) registerBuiltins() {
	builtins := []Spec{
		{Type: schema.FieldTypeText, Description: "single line text input"},
		{Type: schema.FieldTypeNumber, Description: "numeric input with optional bounds"},
		{Type: schema.FieldTypeTextarea, Description: "multi-line text input"},
		{Type: schema.FieldTypeCheckbox, Description: "single boolean checkbox"},
		{Type: schema.FieldTypeSelect, RequiresOptions: true, Description: "single choice drop-down"},
		{Type: schema.FieldTypeCheckboxGroup, RequiresOptions: true, Description: "multiple choice checkboxes"},
		{Type: schema.FieldTypeRadioGroup, RequiresOptions: true, Description: "single choice radio panel"},
		{Type: schema.FieldTypeMultiSelect, RequiresOptions: true, Description: "multiple choice drop-down"},
		{Type: schema.FieldTypeFileUpload, Description: "file upload"},
		{Type: schema.FieldTypeImageUploader, Description: "image upload with preview"},
		{Type: schema.FieldTypeRepeater, Description: "repeatable group of item fields"},
		{Type: schema.FieldTypeDataTable, Description: "tabular data with paging and filters"},
		{Type: schema.FieldTypeDatePicker, Description: "calendar date picker"},
		{Type: schema.FieldTypeTimePicker, Description: "time of day picker"},
		{Type: schema.FieldTypeDurationPicker, Description: "duration picker"},
	}
	for _, spec := range builtins {
		r.Register(spec)
	}
}
