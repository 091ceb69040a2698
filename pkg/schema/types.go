package schema

// FieldType discriminates Field variants. Values outside the built-in set are
// preserved verbatim so documents can target newer renderers.
type FieldType string

const (
	FieldTypeText           FieldType = "text"
	FieldTypeNumber         FieldType = "number"
	FieldTypeSelect         FieldType = "select"
	FieldTypeTextarea       FieldType = "textarea"
	FieldTypeCheckbox       FieldType = "checkbox"
	FieldTypeCheckboxGroup  FieldType = "checkbox_group"
	FieldTypeRadioGroup     FieldType = "radio_group"
	FieldTypeMultiSelect    FieldType = "multi_select"
	FieldTypeFileUpload     FieldType = "file_upload"
	FieldTypeImageUploader  FieldType = "image_uploader"
	FieldTypeRepeater       FieldType = "repeater"
	FieldTypeDataTable      FieldType = "data_table"
	FieldTypeDatePicker     FieldType = "date_picker"
	FieldTypeTimePicker     FieldType = "time_picker"
	FieldTypeDurationPicker FieldType = "duration_picker"
)

// ActionType enumerates the supported action behaviours.
type ActionType string

const (
	ActionSubmit   ActionType = "submit"
	ActionReset    ActionType = "reset"
	ActionNavigate ActionType = "navigate"
	ActionCustom   ActionType = "custom"
)

// Valid reports whether t is one of the supported action types.
func (t ActionType) Valid() bool {
	switch t {
	case ActionSubmit, ActionReset, ActionNavigate, ActionCustom:
		return true
	default:
		return false
	}
}

// ActionStyle controls how an action is presented.
type ActionStyle string

const (
	StylePrimary   ActionStyle = "primary"
	StyleSecondary ActionStyle = "secondary"
	StyleLink      ActionStyle = "link"
)

// Valid reports whether s is one of the supported styles.
func (s ActionStyle) Valid() bool {
	switch s {
	case StylePrimary, StyleSecondary, StyleLink:
		return true
	default:
		return false
	}
}

// SelectionMode configures row selection on data tables.
type SelectionMode string

const (
	SelectionNone     SelectionMode = "none"
	SelectionSingle   SelectionMode = "single"
	SelectionMultiple SelectionMode = "multiple"
)

// Schema is the validated, canonical form of a document. Screens, components
// and validation rules keep their source order. A Schema is never mutated
// after Parse returns it.
type Schema struct {
	Screens          []Screen         `json:"screens"`
	CommonComponents []ComponentDef   `json:"common_components,omitempty"`
	Validations      []ValidationRule `json:"validations,omitempty"`
}

// Screen is one named view of the document.
type Screen struct {
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Layout      *Layout   `json:"layout,omitempty"`
	Fields      []Field   `json:"fields,omitempty"`
	Actions     []Action  `json:"actions,omitempty"`
	Sections    []Section `json:"sections,omitempty"`
	Wizard      *Wizard   `json:"wizard,omitempty"`
}

// Layout defines the grid a screen renders into.
type Layout struct {
	Columns int    `json:"columns,omitempty"`
	Gap     string `json:"gap,omitempty"`
}

// Section groups a subset of a screen's fields under a heading.
type Section struct {
	Title       string  `json:"title"`
	Icon        string  `json:"icon,omitempty"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
}

// Option is a single choice of a select-like field.
type Option struct {
	Value any    `json:"value"`
	Label string `json:"label"`
}

// Field models an input or display unit. Type selects which of the variant
// payloads is populated; unknown types carry their extra keys in Attributes.
type Field struct {
	ID          string    `json:"id"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label,omitempty"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	Description string    `json:"description,omitempty"`
	HelpText    string    `json:"help_text,omitempty"`
	Default     any       `json:"default,omitempty"`
	Disabled    bool      `json:"disabled,omitempty"`
	Readonly    bool      `json:"readonly,omitempty"`
	Validation  string    `json:"validation,omitempty"`

	Options  []Option        `json:"options,omitempty"`
	Number   *NumberConfig   `json:"number,omitempty"`
	Rows     int             `json:"rows,omitempty"`
	Upload   *UploadConfig   `json:"upload,omitempty"`
	Picker   *PickerConfig   `json:"picker,omitempty"`
	Repeater *RepeaterConfig `json:"repeater,omitempty"`
	Table    *DataTable      `json:"table,omitempty"`

	Attributes map[string]any `json:"attributes,omitempty"`
}

// NumberConfig holds numeric bounds for number fields.
type NumberConfig struct {
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Step *float64 `json:"step,omitempty"`
}

// UploadConfig configures file_upload and image_uploader fields.
type UploadConfig struct {
	Accept   string `json:"accept,omitempty"`
	Multiple bool   `json:"multiple,omitempty"`
	MaxSize  string `json:"max_size,omitempty"`
	MaxFiles int    `json:"max_files,omitempty"`
}

// PickerConfig configures date, time and duration pickers.
type PickerConfig struct {
	Format string `json:"format,omitempty"`
	Min    string `json:"min,omitempty"`
	Max    string `json:"max,omitempty"`
}

// RepeaterConfig describes a repeatable group of nested fields.
type RepeaterConfig struct {
	ItemFields []Field `json:"item_fields"`
	MinItems   *int    `json:"min_items,omitempty"`
	MaxItems   *int    `json:"max_items,omitempty"`
	AddLabel   string  `json:"add_label,omitempty"`
}

// DataTable configures a tabular data field.
type DataTable struct {
	Columns    []Column         `json:"columns"`
	Data       []map[string]any `json:"data,omitempty"`
	Selection  SelectionMode    `json:"selection,omitempty"`
	Pagination *Pagination      `json:"pagination,omitempty"`
	Filters    *Filters         `json:"filters,omitempty"`
	RowActions []Action         `json:"row_actions,omitempty"`
	EmptyState *EmptyState      `json:"empty_state,omitempty"`
}

// Column is one data table column.
type Column struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable,omitempty"`
	Format   string `json:"format,omitempty"`
}

// Pagination configures data table paging.
type Pagination struct {
	Enabled  bool `json:"enabled"`
	PageSize int  `json:"page_size,omitempty"`
}

// Filters configures data table filtering. ShowSearch enables the keyword
// search box; Fields holds the remaining filter inputs.
type Filters struct {
	ShowSearch bool    `json:"show_search"`
	Fields     []Field `json:"fields,omitempty"`
}

// EmptyState is shown when a data table has no rows.
type EmptyState struct {
	Message string `json:"message"`
	Icon    string `json:"icon,omitempty"`
}

// Action is a button or link attached to a screen or table row.
type Action struct {
	ID      string      `json:"id"`
	Type    ActionType  `json:"type"`
	Label   string      `json:"label"`
	Style   ActionStyle `json:"style"`
	To      string      `json:"to,omitempty"`
	Handler string      `json:"handler,omitempty"`
	Confirm string      `json:"confirm,omitempty"`
	Icon    string      `json:"icon,omitempty"`
}

// Wizard is a multi-step screen variant.
type Wizard struct {
	Steps        []Step `json:"steps"`
	ShowProgress bool   `json:"show_progress"`
	AllowBack    bool   `json:"allow_back"`
}

// Step is a single wizard page.
type Step struct {
	ID          string  `json:"id"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
}

// ComponentDef is a reusable group of fields shared across screens.
type ComponentDef struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Fields      []Field  `json:"fields,omitempty"`
	UsedIn      []string `json:"used_in,omitempty"`
}

// ValidationRule is a named validation message, optionally bound to a field
// and carrying structured rules such as a regex pattern.
type ValidationRule struct {
	Name    string         `json:"name"`
	Field   string         `json:"field,omitempty"`
	Message string         `json:"message,omitempty"`
	Pattern string         `json:"pattern,omitempty"`
	Rules   map[string]any `json:"rules,omitempty"`
}
