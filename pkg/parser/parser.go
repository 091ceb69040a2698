package parser

import (
	"strings"

	"github.com/goliatone/go-formschema/internal/normalize"
	"github.com/goliatone/go-formschema/internal/validate"
	"github.com/goliatone/go-formschema/internal/yamltree"
	"github.com/goliatone/go-formschema/pkg/fieldtypes"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// Result is the outcome of a parse: either a schema or the full error list.
type Result struct {
	Success bool
	Data    *schema.Schema
	Errors  schema.ParseErrors
}

// Err adapts a failed result to the error interface. It returns nil on
// success.
func (r Result) Err() error {
	if r.Success || len(r.Errors) == 0 {
		return nil
	}
	return r.Errors
}

// Option customises the parser configuration.
type Option func(*Parser)

// WithPageSize sets the page size given to data tables synthesised from
// display_fields screens.
func WithPageSize(size int) Option {
	return func(p *Parser) {
		if size > 0 {
			p.normalize.PageSize = size
		}
	}
}

// WithEmptyStateMessage overrides the message of synthesised data tables.
func WithEmptyStateMessage(message string) Option {
	return func(p *Parser) {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			p.normalize.EmptyStateMessage = trimmed
		}
	}
}

// WithSearchMarkers replaces the filter entries that toggle keyword search.
func WithSearchMarkers(markers ...string) Option {
	return func(p *Parser) {
		if len(markers) == 0 {
			return
		}
		p.normalize.SearchMarkers = append([]string(nil), markers...)
	}
}

// WithFieldTypes supplies the field type registry consulted for option
// requirements. The registry is copied, so later registrations do not affect
// this parser.
func WithFieldTypes(registry *fieldtypes.Registry) Option {
	return func(p *Parser) {
		if registry != nil {
			p.types = registry.Clone()
		}
	}
}

// WithIconSanitizer toggles sanitising of inline SVG icon markup.
func WithIconSanitizer(enabled bool) Option {
	return func(p *Parser) {
		p.sanitizeIcons = enabled
	}
}

// Parser turns YAML form documents into validated schemas. A Parser is
// immutable once constructed and safe for concurrent use.
type Parser struct {
	normalize     normalize.Options
	types         *fieldtypes.Registry
	sanitizeIcons bool
}

// New constructs a Parser applying any provided options on top of the
// defaults: built-in field types, icon sanitising, page size 10.
func New(options ...Option) *Parser {
	p := &Parser{
		normalize:     normalize.DefaultOptions(),
		types:         fieldtypes.NewRegistry(),
		sanitizeIcons: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

var defaultParser = New()

// Parse parses source with the default configuration.
func Parse(source string) Result {
	return defaultParser.Parse(source)
}

// Parse decodes, normalises and validates source. YAML syntax errors stop
// the pipeline with a single error; validation problems are reported
// together.
func (p *Parser) Parse(source string) Result {
	root, decodeErr := yamltree.Decode(source)
	if decodeErr != nil {
		return Result{Errors: schema.ParseErrors{syntaxError(decodeErr)}}
	}

	normalized := normalize.Normalize(root, p.normalize)
	out, errs := validate.Validate(normalized, validate.Config{
		Types:         p.types,
		SanitizeIcons: p.sanitizeIcons,
	})
	if len(errs) > 0 {
		return Result{Errors: errs}
	}
	return Result{Success: true, Data: out}
}

// ParseDocument parses a loaded document.
func (p *Parser) ParseDocument(doc schema.Document) Result {
	return p.Parse(string(doc.Raw()))
}

// KnownType reports whether the parser's registry recognises t.
func (p *Parser) KnownType(t schema.FieldType) bool {
	return p.types.Known(t)
}

func syntaxError(err *yamltree.DecodeError) schema.ParseError {
	out := schema.ParseError{
		Type:    schema.ErrYAMLSyntax,
		Message: "invalid YAML: " + err.Message,
	}
	if err.HasPosition() {
		out.Pos = &schema.Position{Line: err.Line, Column: err.Column}
	}
	return out
}
