package formschema

import (
	"io/fs"

	"github.com/goliatone/go-formschema/pkg/loader"
	"github.com/goliatone/go-formschema/pkg/parser"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// Schema aliases schema.Schema so callers can stay on the root package.
type Schema = schema.Schema

// Screen aliases schema.Screen.
type Screen = schema.Screen

// Field aliases schema.Field.
type Field = schema.Field

// ParseError aliases schema.ParseError.
type ParseError = schema.ParseError

// Result aliases parser.Result.
type Result = parser.Result

// Option aliases parser.Option for configuring NewParser and Parse.
type Option = parser.Option

// NewParser exposes the parser constructor from the top-level module.
func NewParser(options ...Option) *parser.Parser {
	return parser.New(options...)
}

// Parse decodes, normalises and validates a YAML form document. Without
// options the shared default parser is used.
func Parse(source string, options ...Option) Result {
	if len(options) == 0 {
		return parser.Parse(source)
	}
	return parser.New(options...).Parse(source)
}

// FormatParseErrors renders errors one per line with 1-indexed positions.
func FormatParseErrors(errs []ParseError) string {
	return schema.FormatParseErrors(errs)
}

// ScreenNames returns the screen names of s in document order.
func ScreenNames(s *Schema) []string {
	return schema.ScreenNames(s)
}

// GetScreen returns the named screen, or nil when absent.
func GetScreen(s *Schema, name string) *Screen {
	screen, ok := schema.LookupScreen(s, name)
	if !ok {
		return nil
	}
	return screen
}

// FindFieldByID searches fields depth-first through repeater item fields and
// returns nil when no field matches.
func FindFieldByID(fields []Field, id string) *Field {
	field, ok := schema.FindFieldByID(fields, id)
	if !ok {
		return nil
	}
	return field
}

// LoadFS parses every YAML document under fsys.
func LoadFS(fsys fs.FS, options ...Option) (*loader.Store, error) {
	return loader.LoadFS(fsys, options...)
}
