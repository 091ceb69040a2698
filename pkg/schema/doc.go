// Package schema defines the canonical form schema produced by the parser:
// screens with their fields, sections, actions and wizards, plus shared
// components and named validation rules. Field is a tagged union keyed by
// Type; built-in types populate their typed payload (Options, Repeater,
// Table, ...) while unknown types are kept verbatim with their extra keys in
// Attributes.
//
// The package also carries the consumer-facing helpers: ParseError and
// FormatParseErrors for reporting, and ScreenNames, LookupScreen and
// FindFieldByID for read-only queries. Values returned by the parser are
// never mutated after construction and are safe to share between goroutines.
package schema
