package fieldtypes

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/schema"
)

func TestRegistry_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name            string
		fieldType       schema.FieldType
		known           bool
		requiresOptions bool
	}{
		{name: "text", fieldType: schema.FieldTypeText, known: true},
		{name: "select", fieldType: schema.FieldTypeSelect, known: true, requiresOptions: true},
		{name: "radio group", fieldType: schema.FieldTypeRadioGroup, known: true, requiresOptions: true},
		{name: "multi select", fieldType: schema.FieldTypeMultiSelect, known: true, requiresOptions: true},
		{name: "checkbox group", fieldType: schema.FieldTypeCheckboxGroup, known: true, requiresOptions: true},
		{name: "checkbox", fieldType: schema.FieldTypeCheckbox, known: true},
		{name: "repeater", fieldType: schema.FieldTypeRepeater, known: true},
		{name: "unknown", fieldType: "signature_pad"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := reg.Known(tc.fieldType); got != tc.known {
				t.Fatalf("known(%s): want %v got %v", tc.fieldType, tc.known, got)
			}
			if got := reg.RequiresOptions(tc.fieldType); got != tc.requiresOptions {
				t.Fatalf("requiresOptions(%s): want %v got %v", tc.fieldType, tc.requiresOptions, got)
			}
		})
	}

	if got := len(reg.Types()); got != 15 {
		t.Fatalf("expected 15 builtin types, got %d", got)
	}
}

func TestRegistry_RegisterCustomType(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Spec{Type: " tag_picker ", RequiresOptions: true})
	reg.Register(Spec{Type: "   "})

	if !reg.RequiresOptions("tag_picker") {
		t.Fatalf("custom type should require options")
	}
	if got := len(reg.Types()); got != 16 {
		t.Fatalf("blank registration should be ignored, got %d types", got)
	}
}

func TestRegistry_CloneIsIndependent(t *testing.T) {
	base := NewRegistry()
	clone := base.Clone()
	clone.Register(Spec{Type: "rating"})

	if base.Known("rating") {
		t.Fatalf("registering on a clone leaked into the original")
	}
	if !clone.Known(schema.FieldTypeSelect) {
		t.Fatalf("clone lost builtin types")
	}
}

func TestRegistry_ZeroValueAndNil(t *testing.T) {
	var empty Registry
	empty.Register(Spec{Type: "rating"})
	if diff := cmp.Diff([]schema.FieldType{"rating"}, empty.Types()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}

	var missing *Registry
	if missing.Known(schema.FieldTypeText) {
		t.Fatalf("nil registry should know nothing")
	}
	if missing.Clone() == nil {
		t.Fatalf("clone of nil registry should be usable")
	}
}
