package validate

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/internal/normalize"
	"github.com/goliatone/go-formschema/internal/yamltree"
	"github.com/goliatone/go-formschema/pkg/schema"
)

func check(t *testing.T, src string, cfg Config) (*schema.Schema, schema.ParseErrors) {
	t.Helper()
	root, err := yamltree.Decode(src)
	if err != nil {
		t.Fatalf("decode: %s", err.Message)
	}
	return Validate(normalize.Normalize(root, normalize.DefaultOptions()), cfg)
}

func mustValidate(t *testing.T, src string) *schema.Schema {
	t.Helper()
	out, errs := check(t, src, Config{SanitizeIcons: true})
	if len(errs) > 0 {
		t.Fatalf("unexpected errors:\n%s", schema.FormatParseErrors(errs))
	}
	return out
}

func kinds(errs schema.ParseErrors) []schema.ErrorType {
	out := make([]schema.ErrorType, len(errs))
	for idx, err := range errs {
		out[idx] = err.Type
	}
	return out
}

func TestValidate_DocumentShape(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want schema.ErrorType
	}{
		{"missing view", "title: nothing\n", schema.ErrMissingViewSection},
		{"empty view", "view: {}\n", schema.ErrMissingViewSection},
		{"null view", "view:\n", schema.ErrMissingViewSection},
		{"scalar view", "view: login\n", schema.ErrInvalidViewSection},
		{"sequence root", "- view\n", schema.ErrInvalidType},
		{"scalar root", "just text\n", schema.ErrInvalidType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, errs := check(t, tc.src, Config{})
			if out != nil {
				t.Fatalf("expected no schema")
			}
			if diff := cmp.Diff([]schema.ErrorType{tc.want}, kinds(errs)); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_NilRoot(t *testing.T) {
	_, errs := Validate(nil, Config{})
	if len(errs) != 1 || errs[0].Type != schema.ErrMissingViewSection {
		t.Fatalf("unexpected errors %v", errs)
	}
	if errs[0].Pos != nil {
		t.Fatalf("nil root has no position")
	}
}

func TestValidate_ArrayViewProblems(t *testing.T) {
	_, errs := check(t, "view:\n  - title: No name\n  - just a string\n", Config{})
	want := []schema.ErrorType{schema.ErrMissingRequiredField, schema.ErrInvalidViewSection}
	if diff := cmp.Diff(want, kinds(errs)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if errs[0].Path != "view[0]" || errs[1].Path != "view[1]" {
		t.Fatalf("unexpected paths %q %q", errs[0].Path, errs[1].Path)
	}
}

func TestValidate_ScreenTitleRequired(t *testing.T) {
	_, errs := check(t, "view:\n  login:\n    fields: []\n", Config{})
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	err := errs[0]
	if err.Type != schema.ErrMissingRequiredField || err.Path != "view.login" {
		t.Fatalf("unexpected error %#v", err)
	}
	if !strings.Contains(err.Message, "title") {
		t.Fatalf("message should name the missing key: %q", err.Message)
	}
}

func TestValidate_FieldIDRequiredWithPosition(t *testing.T) {
	src := "view:\n  login:\n    title: Login\n    fields:\n      - type: text\n        label: Email\n"
	_, errs := check(t, src, Config{})
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	err := errs[0]
	if err.Path != "view.login.fields[0]" {
		t.Fatalf("unexpected path %q", err.Path)
	}
	if err.Pos == nil || err.Pos.Line != 4 || err.Pos.Column != 8 {
		t.Fatalf("expected position 4:8, got %#v", err.Pos)
	}
}

func TestValidate_DuplicateFieldIDs(t *testing.T) {
	src := `
view:
  f:
    title: F
    fields:
      - id: email
      - id: name
      - id: email
`
	_, errs := check(t, src, Config{})
	if diff := cmp.Diff([]schema.ErrorType{schema.ErrDuplicateFieldID}, kinds(errs)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if errs[0].Path != "view.f.fields[2]" || !strings.Contains(errs[0].Message, "view.f.fields[0]") {
		t.Fatalf("duplicate should point at both fields: %#v", errs[0])
	}
}

func TestValidate_SameIDAcrossScreensAllowed(t *testing.T) {
	mustValidate(t, `
view:
  a:
    title: A
    fields: [{id: email}]
  b:
    title: B
    fields: [{id: email}]
`)
}

func TestValidate_OptionListRequired(t *testing.T) {
	src := `
view:
  f:
    title: F
    fields:
      - id: a
        type: select
      - id: b
        type: radio_group
        options: []
      - id: c
        type: multi_select
        options: "oops"
`
	_, errs := check(t, src, Config{})
	for _, err := range errs {
		if err.Type != schema.ErrInvalidOptionList {
			t.Fatalf("unexpected error %#v", err)
		}
		if !strings.Contains(err.Message, "options") {
			t.Fatalf("message should mention options: %q", err.Message)
		}
	}
	if len(errs) != 4 {
		t.Fatalf("expected four option errors, got %d:\n%s", len(errs), schema.FormatParseErrors(errs))
	}
}

type catalog map[schema.FieldType]bool

func (c catalog) RequiresOptions(t schema.FieldType) bool { return c[t] }

func TestValidate_CustomTypeCatalog(t *testing.T) {
	src := "view:\n  f:\n    title: F\n    fields:\n      - id: stars\n        type: rating\n"
	_, errs := check(t, src, Config{Types: catalog{"rating": true}})
	if diff := cmp.Diff([]schema.ErrorType{schema.ErrInvalidOptionList}, kinds(errs)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_UnknownTypePreserved(t *testing.T) {
	out := mustValidate(t, `
view:
  f:
    title: F
    fields:
      - id: color
        type: invalid_type
        label: Color
        swatches: [red, blue]
`)
	field := out.Screens[0].Fields[0]
	if field.Type != "invalid_type" {
		t.Fatalf("unknown type should be preserved, got %q", field.Type)
	}
	want := map[string]any{"swatches": []any{"red", "blue"}}
	if diff := cmp.Diff(want, field.Attributes); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_TypeSpecificConfig(t *testing.T) {
	out := mustValidate(t, `
view:
  f:
    title: F
    fields:
      - id: qty
        type: number
        min: 1
        max: 10.5
        step: 1
      - id: bio
        type: textarea
        rows: 4
      - id: docs
        type: file_upload
        accept: [".pdf", image/png]
        multiple: true
        max_files: 3
      - id: start
        type: date_picker
        format: YYYY-MM-DD
        min: 2024-01-01
      - id: contacts
        type: repeater
        min_items: 1
        max_items: 3
        add_label: Add contact
        item_fields:
          - id: phone
      - id: agree
`)
	fields := out.Screens[0].Fields

	if n := fields[0].Number; n == nil || *n.Min != 1 || *n.Max != 10.5 || *n.Step != 1 {
		t.Fatalf("unexpected number config %#v", n)
	}
	if fields[1].Rows != 4 {
		t.Fatalf("unexpected rows %d", fields[1].Rows)
	}
	wantUpload := &schema.UploadConfig{Accept: ".pdf,image/png", Multiple: true, MaxFiles: 3}
	if diff := cmp.Diff(wantUpload, fields[2].Upload); diff != "" {
		t.Fatalf("upload mismatch (-want +got):\n%s", diff)
	}
	wantPicker := &schema.PickerConfig{Format: "YYYY-MM-DD", Min: "2024-01-01"}
	if diff := cmp.Diff(wantPicker, fields[3].Picker); diff != "" {
		t.Fatalf("picker mismatch (-want +got):\n%s", diff)
	}
	rep := fields[4].Repeater
	if rep == nil || *rep.MinItems != 1 || *rep.MaxItems != 3 || rep.AddLabel != "Add contact" || len(rep.ItemFields) != 1 {
		t.Fatalf("unexpected repeater %#v", rep)
	}
	if fields[5].Type != schema.FieldTypeText {
		t.Fatalf("missing type should default to text, got %q", fields[5].Type)
	}
}

func TestValidate_RangeErrors(t *testing.T) {
	src := `
view:
  f:
    title: F
    layout:
      columns: 0
    fields:
      - id: qty
        type: number
        min: 5
        max: 1
      - id: items
        type: repeater
        min_items: 4
        max_items: 2
      - id: flag
        type: checkbox
        required: maybe
`
	_, errs := check(t, src, Config{})
	want := []schema.ErrorType{
		schema.ErrInvalidValue,
		schema.ErrInvalidValue,
		schema.ErrInvalidValue,
		schema.ErrInvalidValue,
	}
	if diff := cmp.Diff(want, kinds(errs)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_OutOfRangeFloatIsNotAnInteger(t *testing.T) {
	for _, raw := range []string{"1e300", "-1e300", "2.5"} {
		_, errs := check(t, "view:\n  f:\n    title: F\n    layout:\n      columns: "+raw+"\n", Config{})
		if len(errs) != 1 {
			t.Fatalf("%s: expected one error, got %d", raw, len(errs))
		}
		if !strings.Contains(errs[0].Message, "must be an integer") {
			t.Fatalf("%s: unexpected message %q", raw, errs[0].Message)
		}
	}
}

func TestIconPolicyKeepsListedAttributesOnly(t *testing.T) {
	policy := newIconPolicy(svgAllowList)
	got := policy.Sanitize(`<svg viewBox="0 0 4 4"><g id="a" onclick="x()"><circle cx="1" r="2" onmouseover="y()"/></g><foreignObject>z</foreignObject></svg>`)
	for _, keep := range []string{`id="a"`, `cx="1"`, `r="2"`, "<circle"} {
		if !strings.Contains(got, keep) {
			t.Fatalf("expected %s to survive: %s", keep, got)
		}
	}
	for _, drop := range []string{"onclick", "onmouseover", "foreignObject"} {
		if strings.Contains(strings.ToLower(got), strings.ToLower(drop)) {
			t.Fatalf("expected %s to be stripped: %s", drop, got)
		}
	}
}

func TestValidate_Sections(t *testing.T) {
	out := mustValidate(t, `
view:
  profile:
    title: Profile
    fields:
      - id: email
    sections:
      - title: Basics
        fields: [email]
      - section_name: Extra
        input_fields:
          - field_name: nickname
`)
	screen := out.Screens[0]
	if len(screen.Fields) != 2 {
		t.Fatalf("expected hoisted field, got %d fields", len(screen.Fields))
	}
	if got := screen.Sections[1].Fields[0].ID; got != "nickname" {
		t.Fatalf("unexpected section field %q", got)
	}
	if screen.Sections[1].Title != "Extra" {
		t.Fatalf("unexpected section title %q", screen.Sections[1].Title)
	}
}

func TestValidate_UnknownSectionReference(t *testing.T) {
	src := "view:\n  p:\n    title: P\n    fields: [{id: a}]\n    sections:\n      - title: S\n        fields: [a, b]\n"
	_, errs := check(t, src, Config{})
	if diff := cmp.Diff([]schema.ErrorType{schema.ErrUnknownFieldReference}, kinds(errs)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if errs[0].Path != "view.p.sections[0].fields[1]" {
		t.Fatalf("unexpected path %q", errs[0].Path)
	}
}

func TestValidate_HoistedFieldErrorsKeepSectionPath(t *testing.T) {
	src := `
view:
  p:
    title: P
    sections:
      - section_name: Basics
        input_fields:
          - field_name: nickname
          - type: text
      - title: More
        fields:
          - id: nickname
`
	_, errs := check(t, src, Config{})
	want := []string{"view.p.sections[0].input_fields[1]", "view.p.sections[1].fields[0]"}
	var got []string
	for _, err := range errs {
		got = append(got, err.Path)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("error paths mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]schema.ErrorType{schema.ErrMissingRequiredField, schema.ErrDuplicateFieldID}, kinds(errs)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if errs[0].Pos == nil || errs[0].Pos.Line != 8 {
		t.Fatalf("expected position on line 8, got %#v", errs[0].Pos)
	}
}

func TestValidate_Actions(t *testing.T) {
	out := mustValidate(t, `
view:
  f:
    title: F
    actions:
      - label: Save
        confirm: true
      - label: Back
        to: /home
      - label: Export
        handler: exportCsv
        style: link
`)
	want := []schema.Action{
		{ID: "save", Type: schema.ActionSubmit, Label: "Save", Style: schema.StylePrimary, Confirm: "Are you sure?"},
		{ID: "back", Type: schema.ActionNavigate, Label: "Back", Style: schema.StyleSecondary, To: "/home"},
		{ID: "export", Type: schema.ActionCustom, Label: "Export", Style: schema.StyleLink, Handler: "exportCsv"},
	}
	if diff := cmp.Diff(want, out.Screens[0].Actions); diff != "" {
		t.Fatalf("actions mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_InvalidActions(t *testing.T) {
	src := `
view:
  f:
    title: F
    actions:
      - label: Go
        type: navigate
      - label: Odd
        type: launch
      - label: Loud
        style: neon
      - [nested]
`
	_, errs := check(t, src, Config{})
	want := []schema.ErrorType{
		schema.ErrInvalidAction,
		schema.ErrInvalidAction,
		schema.ErrInvalidAction,
		schema.ErrInvalidAction,
	}
	if diff := cmp.Diff(want, kinds(errs)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_DataTable(t *testing.T) {
	out := mustValidate(t, `
view:
  users:
    title: Users
    display_fields: [Name, Email]
    selection: true
    data:
      - name: Ada
        email: ada@example.com
    row_actions: [Edit]
`)
	table := out.Screens[0].Fields[0].Table
	if table == nil {
		t.Fatalf("expected data table")
	}
	if table.Selection != schema.SelectionMultiple {
		t.Fatalf("unexpected selection %q", table.Selection)
	}
	if diff := cmp.Diff(&schema.Pagination{Enabled: true, PageSize: 10}, table.Pagination); diff != "" {
		t.Fatalf("pagination mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(&schema.Filters{ShowSearch: false, Fields: []schema.Field{}}, table.Filters); diff != "" {
		t.Fatalf("filters mismatch (-want +got):\n%s", diff)
	}
	if len(table.Data) != 1 || table.Data[0]["name"] != "Ada" {
		t.Fatalf("unexpected rows %#v", table.Data)
	}
	if len(table.RowActions) != 1 || table.RowActions[0].Type != schema.ActionSubmit {
		t.Fatalf("unexpected row actions %#v", table.RowActions)
	}
	if table.EmptyState == nil || table.EmptyState.Message != "No data available" {
		t.Fatalf("unexpected empty state %#v", table.EmptyState)
	}
}

func TestValidate_DataTableProblems(t *testing.T) {
	src := `
view:
  t:
    title: T
    fields:
      - id: grid
        type: data_table
        columns:
          - id: name
            label: Name
          - id: name
          - sortable: true
        selection: some
        pagination:
          page_size: 0
`
	_, errs := check(t, src, Config{})
	want := []schema.ErrorType{
		schema.ErrDuplicateFieldID,
		schema.ErrMissingRequiredField,
		schema.ErrInvalidValue,
		schema.ErrInvalidValue,
	}
	if diff := cmp.Diff(want, kinds(errs)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_Wizard(t *testing.T) {
	out := mustValidate(t, `
view:
  onboarding:
    title: Onboarding
    wizard:
      allow_back: false
      steps:
        - id: account
          title: Account
          fields:
            - id: email
        - id: plan
          fields:
            - id: tier
              type: radio_group
              options: [Free, Pro]
`)
	wizard := out.Screens[0].Wizard
	if wizard == nil || !wizard.ShowProgress || wizard.AllowBack {
		t.Fatalf("unexpected wizard flags %#v", wizard)
	}
	if len(wizard.Steps) != 2 || len(wizard.Steps[1].Fields[0].Options) != 2 {
		t.Fatalf("unexpected steps %#v", wizard.Steps)
	}
}

func TestValidate_WizardProblems(t *testing.T) {
	_, errs := check(t, "view:\n  w:\n    title: W\n    wizard:\n      steps: []\n", Config{})
	if diff := cmp.Diff([]schema.ErrorType{schema.ErrMissingRequiredField}, kinds(errs)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	src := "view:\n  w:\n    title: W\n    wizard:\n      - title: No id\n      - id: a\n      - id: a\n"
	_, errs = check(t, src, Config{})
	want := []schema.ErrorType{schema.ErrMissingRequiredField, schema.ErrInvalidValue}
	if diff := cmp.Diff(want, kinds(errs)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_ComponentsAndValidations(t *testing.T) {
	out := mustValidate(t, `
view:
  f:
    title: F
common_components:
  - component_name: address
    description: Postal address
    used_in: [checkout, profile]
    fields:
      - field_name: street
validations:
  email: Invalid email
  zip:
    rules:
      pattern: "^[0-9]{5}$"
      required: true
`)
	comp, ok := out.Component("address")
	if !ok || comp.Description != "Postal address" || len(comp.Fields) != 1 {
		t.Fatalf("unexpected component %#v", comp)
	}
	if diff := cmp.Diff([]string{"checkout", "profile"}, comp.UsedIn); diff != "" {
		t.Fatalf("used_in mismatch (-want +got):\n%s", diff)
	}
	email, _ := out.Validation("email")
	if email.Message != "Invalid email" {
		t.Fatalf("unexpected message %q", email.Message)
	}
	zip, _ := out.Validation("zip")
	if zip.Pattern != "^[0-9]{5}$" || zip.Rules["required"] != true {
		t.Fatalf("unexpected rule %#v", zip)
	}
}

func TestValidate_UnkeyedComponentList(t *testing.T) {
	_, errs := check(t, "view:\n  f:\n    title: F\ncommon_components:\n  - description: nameless\n", Config{})
	if diff := cmp.Diff([]schema.ErrorType{schema.ErrMissingRequiredField}, kinds(errs)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if errs[0].Path != "common_components[0]" {
		t.Fatalf("unexpected path %q", errs[0].Path)
	}
}

func TestValidate_AccumulatesAcrossScreens(t *testing.T) {
	src := `
view:
  a:
    fields:
      - type: text
  b:
    title: B
    fields:
      - id: x
        type: select
`
	out, errs := check(t, src, Config{})
	if out != nil {
		t.Fatalf("failed validation must not return a schema")
	}
	want := []schema.ErrorType{
		schema.ErrMissingRequiredField,
		schema.ErrMissingRequiredField,
		schema.ErrInvalidOptionList,
	}
	if diff := cmp.Diff(want, kinds(errs)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_IconSanitising(t *testing.T) {
	src := `
view:
  f:
    title: F
    sections:
      - title: S
        icon: '<svg viewBox="0 0 1 1" onload="x()"><script>alert(1)</script><path d="M0 0"/></svg>'
      - title: T
        icon: user-circle
`
	out, errs := check(t, src, Config{SanitizeIcons: true})
	if len(errs) > 0 {
		t.Fatalf("unexpected errors:\n%s", schema.FormatParseErrors(errs))
	}
	icon := out.Screens[0].Sections[0].Icon
	for _, banned := range []string{"script", "onload", "alert"} {
		if strings.Contains(icon, banned) {
			t.Fatalf("sanitised icon still contains %q: %s", banned, icon)
		}
	}
	if !strings.Contains(icon, "<svg") || !strings.Contains(icon, "<path") {
		t.Fatalf("safe markup should survive: %s", icon)
	}
	if got := out.Screens[0].Sections[1].Icon; got != "user-circle" {
		t.Fatalf("plain icon names are untouched, got %q", got)
	}

	raw, _ := check(t, src, Config{})
	if !strings.Contains(raw.Screens[0].Sections[0].Icon, "script") {
		t.Fatalf("sanitising disabled should keep markup verbatim")
	}
}
