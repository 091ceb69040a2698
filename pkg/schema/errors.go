package schema

import (
	"fmt"
	"strings"
)

// ErrorType classifies a ParseError.
type ErrorType string

const (
	ErrYAMLSyntax            ErrorType = "YAML_SYNTAX_ERROR"
	ErrMissingViewSection    ErrorType = "MISSING_VIEW_SECTION"
	ErrInvalidViewSection    ErrorType = "INVALID_VIEW_SECTION"
	ErrMissingRequiredField  ErrorType = "MISSING_REQUIRED_FIELD"
	ErrInvalidOptionList     ErrorType = "INVALID_OPTION_LIST"
	ErrInvalidType           ErrorType = "INVALID_TYPE"
	ErrInvalidValue          ErrorType = "INVALID_VALUE"
	ErrDuplicateFieldID      ErrorType = "DUPLICATE_FIELD_ID"
	ErrInvalidAction         ErrorType = "INVALID_ACTION"
	ErrUnknownFieldReference ErrorType = "UNKNOWN_FIELD_REFERENCE"
)

// Position is a 0-indexed source location.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// ParseError is a single, locatable problem found while parsing a document.
// Path uses dot/bracket notation into the source tree (view.login.fields[0]).
type ParseError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Path    string    `json:"path,omitempty"`
	Pos     *Position `json:"position,omitempty"`
}

func (e ParseError) Error() string {
	return formatParseError(e)
}

// ParseErrors is the accumulated error list of a failed parse, in the order
// problems were found.
type ParseErrors []ParseError

func (errs ParseErrors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Error()
	}
	parts := make([]string, len(errs))
	for idx, err := range errs {
		parts[idx] = err.Error()
	}
	return fmt.Sprintf("%d parse errors: %s", len(errs), strings.Join(parts, "; "))
}

// Has reports whether any error carries the given type.
func (errs ParseErrors) Has(kind ErrorType) bool {
	for _, err := range errs {
		if err.Type == kind {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the list.
func (errs ParseErrors) Clone() ParseErrors {
	if errs == nil {
		return nil
	}
	out := make(ParseErrors, len(errs))
	for idx, err := range errs {
		if err.Pos != nil {
			pos := *err.Pos
			err.Pos = &pos
		}
		out[idx] = err
	}
	return out
}
