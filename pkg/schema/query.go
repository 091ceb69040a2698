package schema

// ScreenNames returns screen names in document order.
func ScreenNames(s *Schema) []string {
	if s == nil || len(s.Screens) == 0 {
		return nil
	}
	names := make([]string, len(s.Screens))
	for idx, screen := range s.Screens {
		names[idx] = screen.Name
	}
	return names
}

// LookupScreen returns the screen registered under name.
func LookupScreen(s *Schema, name string) (*Screen, bool) {
	if s == nil {
		return nil, false
	}
	for idx := range s.Screens {
		if s.Screens[idx].Name == name {
			return &s.Screens[idx], true
		}
	}
	return nil, false
}

// FindFieldByID searches fields depth-first, descending into repeater item
// fields. The first match wins.
func FindFieldByID(fields []Field, id string) (*Field, bool) {
	for idx := range fields {
		field := &fields[idx]
		if field.ID == id {
			return field, true
		}
		if field.Repeater != nil {
			if nested, ok := FindFieldByID(field.Repeater.ItemFields, id); ok {
				return nested, true
			}
		}
	}
	return nil, false
}

// Screen returns the named screen.
func (s *Schema) Screen(name string) (*Screen, bool) {
	return LookupScreen(s, name)
}

// ScreenNames returns screen names in document order.
func (s *Schema) ScreenNames() []string {
	return ScreenNames(s)
}

// Component returns the named common component.
func (s *Schema) Component(name string) (*ComponentDef, bool) {
	if s == nil {
		return nil, false
	}
	for idx := range s.CommonComponents {
		if s.CommonComponents[idx].Name == name {
			return &s.CommonComponents[idx], true
		}
	}
	return nil, false
}

// Validation returns the named validation rule.
func (s *Schema) Validation(name string) (*ValidationRule, bool) {
	if s == nil {
		return nil, false
	}
	for idx := range s.Validations {
		if s.Validations[idx].Name == name {
			return &s.Validations[idx], true
		}
	}
	return nil, false
}

// FindField searches the screen's fields, section fields and wizard steps.
func (sc *Screen) FindField(id string) (*Field, bool) {
	if sc == nil {
		return nil, false
	}
	if field, ok := FindFieldByID(sc.Fields, id); ok {
		return field, true
	}
	if sc.Wizard != nil {
		for idx := range sc.Wizard.Steps {
			if field, ok := FindFieldByID(sc.Wizard.Steps[idx].Fields, id); ok {
				return field, true
			}
		}
	}
	return nil, false
}

// RequiresOptions reports whether fields of type t must declare options.
func (t FieldType) RequiresOptions() bool {
	switch t {
	case FieldTypeSelect, FieldTypeRadioGroup, FieldTypeMultiSelect, FieldTypeCheckboxGroup:
		return true
	default:
		return false
	}
}

// Known reports whether t is one of the built-in field types.
func (t FieldType) Known() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeSelect, FieldTypeTextarea,
		FieldTypeCheckbox, FieldTypeCheckboxGroup, FieldTypeRadioGroup,
		FieldTypeMultiSelect, FieldTypeFileUpload, FieldTypeImageUploader,
		FieldTypeRepeater, FieldTypeDataTable, FieldTypeDatePicker,
		FieldTypeTimePicker, FieldTypeDurationPicker:
		return true
	default:
		return false
	}
}
