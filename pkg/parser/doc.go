// Package parser is the entry point that turns a YAML form document into a
// validated schema.Schema. Parsing runs three passes: the raw YAML is decoded
// into a position-aware tree, the normaliser folds the accepted dialects
// (array-style view, bare string actions, display_fields shorthand,
// field_name keyed sections) into one canonical shape, and the validator
// builds the typed schema while accumulating every problem it finds.
//
// Parse never panics on user input. A failed parse returns the complete
// schema.ParseErrors list, which schema.FormatParseErrors renders for
// display. Configuration follows the functional option pattern:
//
//	p := parser.New(
//		parser.WithPageSize(25),
//		parser.WithSearchMarkers("Keyword Search"),
//	)
//	result := p.Parse(source)
package parser
