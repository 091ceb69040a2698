// Package formschema parses YAML form definitions into a validated, typed
// schema. The root package re-exports the common entry points; the pkg/
// packages hold the parser, the schema types, the field type registry and the
// file loader.
//
//	result := formschema.Parse(source)
//	if !result.Success {
//		fmt.Println(formschema.FormatParseErrors(result.Errors))
//		return
//	}
//	for _, name := range formschema.ScreenNames(result.Data) {
//		screen := formschema.GetScreen(result.Data, name)
//		fmt.Println(screen.Title)
//	}
package formschema
